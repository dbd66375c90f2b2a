package prediction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/strikeback/internal/core/race"
	"github.com/zeusync/strikeback/internal/core/systems/physics"
)

func testTrack() race.Track {
	return race.Track{
		Laps: 3,
		Checkpoints: []physics.Vector{
			physics.Vec(1000, 1000),
			physics.Vec(9000, 1000),
			physics.Vec(9000, 7000),
		},
	}
}

func TestPreferRules(t *testing.T) {
	cases := []struct {
		name string
		est  DriftEstimate
		want bool
	}{
		{"drift misses", DriftEstimate{Drift: Rollout{}, NoDrift: Rollout{Crosses: true}}, false},
		{"only drift crosses", DriftEstimate{Drift: Rollout{Crosses: true, FinalDistance: 9000}, NoDrift: Rollout{FinalDistance: 10}}, true},
		{"both cross, drift closer", DriftEstimate{Drift: Rollout{Crosses: true, FinalDistance: 3000}, NoDrift: Rollout{Crosses: true, FinalDistance: 3500}}, true},
		{"both cross, drift farther", DriftEstimate{Drift: Rollout{Crosses: true, FinalDistance: 3600}, NoDrift: Rollout{Crosses: true, FinalDistance: 3500}}, false},
		{"both cross, equal", DriftEstimate{Drift: Rollout{Crosses: true, FinalDistance: 3500}, NoDrift: Rollout{Crosses: true, FinalDistance: 3500}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.est.Prefer())
		})
	}
}

func TestEvaluateDriftFarFromCheckpoint(t *testing.T) {
	tr := testTrack()
	pod := &race.Pod{Next: 1, State: physics.State{Position: physics.Vec(4000, 1000)}}

	est := EvaluateDrift(tr, pod, FullThrust)
	assert.False(t, est.Drift.Crosses)
	assert.False(t, est.NoDrift.Crosses)
	assert.False(t, TryDrift(tr, pod, FullThrust))
	assert.False(t, TryDrift(tr, pod, 0))
}

func TestEvaluateDriftCoastingIntoCheckpoint(t *testing.T) {
	tr := testTrack()
	pod := &race.Pod{Next: 1, State: physics.State{
		Position: physics.Vec(8300, 1000),
		Velocity: physics.Vec(600, 0),
	}}

	est := EvaluateDrift(tr, pod, 0)
	require.True(t, est.Drift.Crosses)
	require.True(t, est.NoDrift.Crosses)
	assert.Equal(t, 1, est.Drift.Turns)
	assert.Equal(t, 1, est.NoDrift.Turns)
}

func TestTryDriftNeverOnFinalLeg(t *testing.T) {
	tr := testTrack()
	tr.Checkpoints[0] = physics.Vec(8900, 4000)
	pod := &race.Pod{Next: 0, Lap: tr.Laps, State: physics.State{
		Position: physics.Vec(8200, 4000),
		Velocity: physics.Vec(600, 0),
	}}

	require.True(t, pod.FinalLeg(tr))
	require.True(t, EvaluateDrift(tr, pod, 0).Drift.Crosses)
	assert.False(t, TryDrift(tr, pod, 0))
	assert.False(t, TryDrift(tr, pod, FullThrust))
}

func TestCollisionVelocityHeadOn(t *testing.T) {
	v, ok := CollisionVelocity(physics.Vec(0, 0), physics.Vec(300, 0), false, physics.Vec(800, 0), physics.Vec(-300, 0), false)
	require.True(t, ok)
	assert.Equal(t, physics.Vec(-300, 0), v)
}

func TestCollisionVelocityShieldKeepsMomentum(t *testing.T) {
	v, ok := CollisionVelocity(physics.Vec(0, 0), physics.Vec(300, 0), true, physics.Vec(800, 0), physics.Vec(-300, 0), false)
	require.True(t, ok)
	assert.Positive(t, v.X)
	assert.Less(t, v.X, 300)
}

func TestCollisionVelocityCoincident(t *testing.T) {
	_, ok := CollisionVelocity(physics.Vec(5, 5), physics.Vec(300, 0), false, physics.Vec(5, 5), physics.Vec(-300, 0), false)
	assert.False(t, ok)
}

func TestWillCollide(t *testing.T) {
	a := physics.State{Position: physics.Vec(0, 0), Velocity: physics.Vec(200, 0)}
	b := physics.State{Position: physics.Vec(1000, 0), Velocity: physics.Vec(-200, 0), Heading: 180}
	assert.True(t, WillCollide(a, physics.Vec(5000, 0), 0, b, physics.Vec(-5000, 0), 0))

	b.Position = physics.Vec(5000, 0)
	assert.False(t, WillCollide(a, physics.Vec(5000, 0), 0, b, physics.Vec(-5000, 0), 0))
}

func TestCoastKeepsThrustOff(t *testing.T) {
	s := physics.State{Position: physics.Vec(0, 0), Velocity: physics.Vec(200, 0)}
	next := Coast(s, physics.Vec(0, 9000))
	assert.Equal(t, physics.Vec(200, 0), next.Position)
	assert.Equal(t, physics.Vec(170, 0), next.Velocity)
}

func TestTurnEstimates(t *testing.T) {
	assert.Equal(t, Infinite, TurnsToReach(1000, 0))
	assert.Equal(t, 4, TurnsToReach(1000, 250))
	assert.Equal(t, Infinite, TurnsToAlign(45, 0))
	assert.Equal(t, 4, TurnsToAlign(-45, 10))
}
