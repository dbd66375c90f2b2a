package protocol

import (
	"strconv"

	"github.com/zeusync/strikeback/internal/core/race"
	"github.com/zeusync/strikeback/internal/core/systems/physics"
)

// Wire tokens that replace the thrust value.
const (
	BoostToken  = "BOOST"
	ShieldToken = "SHIELD"
)

// Thrust limits accepted by the game.
const (
	MinThrust = 0
	MaxThrust = 120
)

// Command is the wire form of one pod's move for a turn.
type Command struct {
	Target physics.Vector
	Thrust int
	Boost  bool
	Shield bool
}

// String renders the command as "x y thrust", "x y BOOST" or "x y SHIELD".
// Shield wins over boost.
func (c Command) String() string {
	power := strconv.Itoa(clampThrust(c.Thrust))
	switch {
	case c.Shield:
		power = ShieldToken
	case c.Boost:
		power = BoostToken
	}
	return strconv.Itoa(c.Target.X) + " " + strconv.Itoa(c.Target.Y) + " " + power
}

func clampThrust(t int) int {
	if t < MinThrust {
		return MinThrust
	}
	if t > MaxThrust {
		return MaxThrust
	}
	return t
}

// Turn is one turn of telemetry: the controlled pods first, then the opponents.
type Turn struct {
	Mine   [2]race.Telemetry
	Theirs [2]race.Telemetry
}
