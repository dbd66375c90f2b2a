package npc

import (
	"github.com/zeusync/strikeback/internal/core/prediction"
	"github.com/zeusync/strikeback/internal/core/protocol"
	"github.com/zeusync/strikeback/internal/core/race"
	"github.com/zeusync/strikeback/internal/core/systems/physics"
)

// Kind is the reason behind an action; it fixes the thrust.
type Kind int

const (
	BrakeForRotation Kind = iota
	BrakeForArrival
	BrakeForCollision
	TryCollisionBoost
	TryCollisionShield
	Boost
	Accelerate
)

func (k Kind) String() string {
	switch k {
	case BrakeForRotation:
		return "brake_for_rotation"
	case BrakeForArrival:
		return "brake_for_arrival"
	case BrakeForCollision:
		return "brake_for_collision"
	case TryCollisionBoost:
		return "try_collision_boost"
	case TryCollisionShield:
		return "try_collision_shield"
	case Boost:
		return "boost"
	case Accelerate:
		return "accelerate"
	default:
		return "unknown"
	}
}

// Action is one pod's decision for the current turn.
type Action struct {
	Kind   Kind
	Target physics.Vector
	Shield bool
	// Inertia asks for the target to be rotated against the pod's drift.
	Inertia bool
}

// Acceleration is the thrust the action applies in predictions.
func (a Action) Acceleration() int {
	if a.Shield {
		return 0
	}
	switch a.Kind {
	case Accelerate:
		return prediction.FullThrust
	case Boost, TryCollisionBoost:
		return prediction.BoostThrust
	default:
		return 0
	}
}

// Predict simulates one turn of s under the action.
func (a Action) Predict(s physics.State) physics.State {
	return physics.Predict(s, a.Target, a.Acceleration(), a.Inertia)
}

// Aim is the point actually sent to the game.
func (a Action) Aim(s physics.State) physics.Vector {
	if a.Inertia {
		return physics.ApplyInertia(s, a.Target)
	}
	return a.Target
}

// Command converts the action for pod into its wire form. A boost request
// from a pod that already spent its boost falls back to maximum thrust.
func (a Action) Command(pod *race.Pod) protocol.Command {
	cmd := protocol.Command{Target: a.Aim(pod.State), Shield: a.Shield}
	switch a.Kind {
	case Boost, TryCollisionBoost:
		if pod.BoostUsed {
			cmd.Thrust = protocol.MaxThrust
		} else {
			cmd.Boost = true
		}
	default:
		cmd.Thrust = a.Acceleration()
	}
	return cmd
}
