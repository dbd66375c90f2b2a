package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/strikeback/internal/core/protocol"
	"github.com/zeusync/strikeback/internal/core/race"
	"github.com/zeusync/strikeback/internal/core/systems/physics"
)

func testTrack() race.Track {
	return race.Track{Laps: 1, Checkpoints: []physics.Vector{
		physics.Vec(8000, 2000),
		physics.Vec(12000, 7000),
		physics.Vec(3000, 6000),
	}}
}

// parked places every pod far from the track and from each other.
func parked(t *testing.T) *Referee {
	t.Helper()
	r := NewReferee(testTrack())
	spots := [4]point{{5000, 5000}, {1000, 1000}, {15000, 1000}, {1000, 8000}}
	for i := range r.pods {
		r.pods[i] = body{pos: spots[i], aligned: true, next: 1}
	}
	return r
}

func hold(r *Referee, side int) [2]protocol.Command {
	var cmds [2]protocol.Command
	for i := range cmds {
		p := r.pods[side*2+i].pos
		cmds[i] = protocol.Command{Target: physics.Vec(int(p.x), int(p.y))}
	}
	return cmds
}

func TestRefereeStartingGrid(t *testing.T) {
	r := NewReferee(testTrack())
	require.Len(t, r.course, 4, "one lap plus the finish line")

	turn := r.Telemetry(0)
	assert.Equal(t, 1, turn.Mine[0].Next)
	assert.Equal(t, -1, turn.Mine[0].Heading)
	for _, tel := range append(turn.Mine[:], turn.Theirs[:]...) {
		assert.InDelta(t, 0, tel.Position.Dist(physics.Vec(8000, 2000)), 2200)
	}

	mirrored := r.Telemetry(1)
	assert.Equal(t, turn.Mine, mirrored.Theirs)
	assert.Equal(t, turn.Theirs, mirrored.Mine)
}

func TestRefereeFriction(t *testing.T) {
	r := parked(t)
	r.pods[0].vel = point{200, -101}

	out := r.Step(500)
	assert.False(t, out.Done)
	assert.Equal(t, point{5200, 4899}, r.pods[0].pos)
	assert.Equal(t, point{170, -85}, r.pods[0].vel)
	assert.Equal(t, 1, r.Turn())
}

func TestRefereeRotationClamp(t *testing.T) {
	r := parked(t)
	cmds := hold(r, 0)
	cmds[0].Target = physics.Vec(4000, 5000)

	r.Apply(0, cmds)
	assert.InDelta(t, MaxRotation*degToRad, r.pods[0].angle, 1e-9)
	assert.Equal(t, 18, r.Telemetry(0).Mine[0].Heading)
}

func TestRefereeFirstTurnFacesTarget(t *testing.T) {
	r := parked(t)
	r.pods[0].aligned = false
	cmds := hold(r, 0)
	cmds[0].Target = physics.Vec(5000, 6000)

	r.Apply(0, cmds)
	assert.Equal(t, 90, r.Telemetry(0).Mine[0].Heading)
}

func TestRefereeCheckpointProgress(t *testing.T) {
	r := parked(t)
	r.pods[0].pos = point{11300, 7000}
	r.pods[0].vel = point{300, 0}
	r.timeout[0] = 5

	out := r.Step(500)
	require.False(t, out.Done)
	assert.Equal(t, 2, r.pods[0].next)
	assert.Equal(t, 2, r.Telemetry(0).Mine[0].Next)
	assert.Equal(t, race.TurnsToCheckpoint-1, r.timeout[0])
}

func TestRefereeFinishLine(t *testing.T) {
	r := parked(t)
	r.pods[2].pos = point{7300, 2000}
	r.pods[2].vel = point{300, 0}
	r.pods[2].next = len(r.course) - 1

	out := r.Step(500)
	assert.Equal(t, Outcome{Done: true, Winner: 1, Reason: ReasonFinished}, out)
}

func TestRefereeTimeout(t *testing.T) {
	r := NewReferee(testTrack())
	var out Outcome
	for i := 0; i < race.TurnsToCheckpoint-1; i++ {
		out = r.Step(500)
		require.False(t, out.Done, "turn %d", i+1)
	}
	out = r.Step(500)
	assert.Equal(t, Outcome{Done: true, Winner: 1, Reason: ReasonTimeout}, out)
}

func TestRefereeTurnLimit(t *testing.T) {
	r := parked(t)
	r.pods[3].next = 2

	out := r.Step(1)
	assert.Equal(t, Outcome{Done: true, Winner: 1, Reason: ReasonTurns}, out)
}

func TestRefereeBounce(t *testing.T) {
	r := parked(t)
	r.pods[0].vel = point{400, 0}
	r.pods[2].pos = point{6000, 5000}
	r.pods[2].vel = point{-400, 0}

	r.Step(500)
	assert.Equal(t, point{4800, 5000}, r.pods[0].pos)
	assert.Equal(t, point{6200, 5000}, r.pods[2].pos)
	assert.Equal(t, point{-340, 0}, r.pods[0].vel)
	assert.Equal(t, point{340, 0}, r.pods[2].vel)
}

func TestRefereeShieldedPodIsHeavier(t *testing.T) {
	r := parked(t)
	r.pods[0].vel = point{400, 0}
	r.pods[0].shield = ShieldTurns
	r.pods[2].pos = point{6000, 5000}
	r.pods[2].vel = point{-400, 0}

	r.Step(500)
	assert.Positive(t, r.pods[2].vel.x, "light pod is thrown back")
	assert.Positive(t, r.pods[0].vel.x, "shielded pod keeps its heading")
}

func TestRefereeBoostAndShield(t *testing.T) {
	r := parked(t)
	cmds := hold(r, 0)
	cmds[0] = protocol.Command{Target: physics.Vec(9000, 5000), Boost: true}

	r.Apply(0, cmds)
	assert.InDelta(t, BoostPower, r.pods[0].vel.x, 1e-9)
	r.Apply(0, cmds)
	assert.InDelta(t, BoostPower+SpentBoostPower, r.pods[0].vel.x, 1e-9)

	r = parked(t)
	cmds = hold(r, 0)
	cmds[0] = protocol.Command{Target: physics.Vec(9000, 5000), Shield: true, Thrust: 100}
	r.Apply(0, cmds)
	assert.Equal(t, point{}, r.pods[0].vel)
	r.Step(500)
	assert.Equal(t, ShieldTurns-1, r.pods[0].shield)

	cmds[0] = protocol.Command{Target: physics.Vec(9000, 5000), Thrust: 100}
	r.Apply(0, cmds)
	assert.Equal(t, point{}, r.pods[0].vel, "no thrust while the shield is up")
}

func TestCollideTiming(t *testing.T) {
	assert.Zero(t, collide(point{0, 0}, point{}, point{500, 0}, point{}, podRadiusSq))
	assert.Equal(t, -1.0, collide(point{0, 0}, point{-100, 0}, point{1000, 0}, point{}, podRadiusSq))
	assert.InDelta(t, 0.25, collide(point{0, 0}, point{400, 0}, point{1000, 0}, point{-400, 0}, podRadiusSq), 1e-9)
	assert.Equal(t, -1.0, collide(point{0, 0}, point{50, 0}, point{1000, 0}, point{}, podRadiusSq), "too slow to meet this turn")
}
