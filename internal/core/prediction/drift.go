package prediction

import (
	"github.com/zeusync/strikeback/internal/core/race"
	"github.com/zeusync/strikeback/internal/core/systems/physics"
)

const (
	// DriftWindow is how many turns a drift roll-out looks ahead.
	DriftWindow = 6
	// FullThrust is the thrust assumed for every roll-out step after the first.
	FullThrust = 100
	// BoostThrust is the acceleration used when predicting a boosted turn.
	BoostThrust = 120
)

// Rollout is the outcome of one simulated trajectory.
type Rollout struct {
	// Crosses is true when the current checkpoint is reached inside the window.
	Crosses bool
	// Turns is the 1-based turn of the first crossing, or 0.
	Turns int
	// FinalDistance is the distance to the checkpoint after the current one
	// at the end of the window.
	FinalDistance float64
}

// DriftEstimate compares steering at the following checkpoint now against
// spending one more turn on the current one.
type DriftEstimate struct {
	Drift   Rollout
	NoDrift Rollout
}

// Prefer reports whether drifting wins: it must reach the checkpoint, and
// either the alternative does not or drifting ends closer to the next one.
func (e DriftEstimate) Prefer() bool {
	if !e.Drift.Crosses {
		return false
	}
	return !e.NoDrift.Crosses || e.Drift.FinalDistance < e.NoDrift.FinalDistance
}

// EvaluateDrift simulates both trajectories for pod. The first step uses
// acceleration, the remaining ones FullThrust.
func EvaluateDrift(track race.Track, pod *race.Pod, acceleration int) DriftEstimate {
	current := pod.Target(track)
	following := pod.TargetAfter(track)

	drift := rollout(pod.State, current, following, func(int) physics.Vector { return following }, acceleration)
	noDrift := rollout(pod.State, current, following, func(step int) physics.Vector {
		if step == 0 {
			return current
		}
		return following
	}, acceleration)

	return DriftEstimate{Drift: drift, NoDrift: noDrift}
}

// TryDrift reports whether pod should already steer at the checkpoint after
// its current one. The finish line is never drifted.
func TryDrift(track race.Track, pod *race.Pod, acceleration int) bool {
	if pod.FinalLeg(track) {
		return false
	}
	return EvaluateDrift(track, pod, acceleration).Prefer()
}

func rollout(s physics.State, current, following physics.Vector, aim func(step int) physics.Vector, acceleration int) Rollout {
	var r Rollout
	for step := 0; step < DriftWindow; step++ {
		thrust := FullThrust
		if step == 0 {
			thrust = acceleration
		}
		s = physics.Predict(s, aim(step), thrust, true)
		if !r.Crosses && s.Position.Dist(current) < race.CheckpointRadius {
			r.Crosses = true
			r.Turns = step + 1
		}
	}
	r.FinalDistance = s.Position.Dist(following)
	return r
}
