package npc

import (
	"github.com/zeusync/strikeback/internal/core/prediction"
	"github.com/zeusync/strikeback/internal/core/race"
	"github.com/zeusync/strikeback/internal/core/systems/physics"
)

// Policy thresholds, in degrees unless noted.
const (
	RotationBrakeAngle = 90
	BoostMinDistance   = 3000
	ShadowAngle        = 45
	LookAheadAngle     = 25
	// StalledTurns is how close to the timeout a secondary pod stops
	// harassing and races for its own checkpoint.
	StalledTurns = race.TurnsToCheckpoint / 6
)

// Decide picks the action for controlled pod i. The leading pod races; the
// other one harasses the leading opponent. Either may be overridden into a
// shielded brake when a collision would throw it backwards.
func Decide(c race.Context, i int) Action {
	pod := c.Mine[i]
	var a Action
	if pod.Leading {
		a = Lead(c.Track, pod)
	} else {
		a = Secondary(c, pod)
	}
	return shieldOverride(c, pod, a)
}

// Lead races pod toward its checkpoint.
func Lead(track race.Track, pod *race.Pod) Action {
	target := pod.Target(track)
	angle := pod.State.AngleTo(target)

	switch {
	case physics.AbsInt(angle) > RotationBrakeAngle:
		return Action{Kind: BrakeForRotation, Target: target}
	case prediction.TryDrift(track, pod, 0):
		return Action{Kind: BrakeForArrival, Target: pod.TargetAfter(track), Inertia: true}
	case !pod.BoostUsed && angle == 0 && pod.Distance > BoostMinDistance:
		return Action{Kind: Boost, Target: target, Inertia: true}
	case prediction.TryDrift(track, pod, prediction.FullThrust):
		return Action{Kind: Accelerate, Target: pod.TargetAfter(track), Inertia: true}
	default:
		return Action{Kind: Accelerate, Target: target, Inertia: true}
	}
}

// Secondary shadows the leading opponent, or races like a leader when its
// own checkpoint timer runs low.
func Secondary(c race.Context, pod *race.Pod) Action {
	if pod.TurnsLeft < StalledTurns {
		return Lead(c.Track, pod)
	}

	target := interceptPoint(c.Track, pod, c.LeadingOpponent())
	if physics.AbsInt(pod.State.AngleTo(target)) > RotationBrakeAngle {
		return Action{Kind: BrakeForRotation, Target: target}
	}
	return Action{Kind: Accelerate, Target: target, Inertia: true}
}

// interceptPoint picks where to meet opp: its next position when pod sits
// ahead of it on its line, otherwise its checkpoint or the one after.
func interceptPoint(track race.Track, pod, opp *race.Pod) physics.Vector {
	me := pod.State.Position
	oppPos := opp.State.Position
	oppCp := opp.Target(track)

	if physics.AbsInt(me.Sub(oppPos).AngleBetween(oppCp.Sub(oppPos))) < ShadowAngle {
		return physics.Predict(opp.State, oppCp, prediction.FullThrust, false).Position
	}

	oppNext := opp.TargetAfter(track)
	if physics.AbsInt(me.Sub(oppCp).AngleBetween(oppNext.Sub(oppCp))) > LookAheadAngle {
		return oppNext
	}
	return oppCp
}

func shieldOverride(c race.Context, pod *race.Pod, a Action) Action {
	own := a.Predict(pod.State)
	for _, opp := range c.Theirs {
		next := prediction.Coast(opp.State, opp.Target(c.Track))
		if !prediction.Touching(own.Position, next.Position) {
			continue
		}
		after, ok := prediction.CollisionVelocity(pod.State.Position, own.Velocity, a.Shield, opp.State.Position, next.Velocity, false)
		if !ok {
			continue
		}
		if physics.AbsInt(after.AngleBetween(own.Velocity)) > RotationBrakeAngle {
			return Action{Kind: BrakeForCollision, Target: a.Target, Shield: true}
		}
	}
	return a
}
