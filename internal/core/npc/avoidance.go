package npc

import (
	"github.com/zeusync/strikeback/internal/core/prediction"
	"github.com/zeusync/strikeback/internal/core/race"
	"github.com/zeusync/strikeback/internal/core/systems/physics"
)

// AvoidanceHorizon is how many turns ahead teammates are checked for contact.
const AvoidanceHorizon = 8

// AvoidTeammate keeps the secondary pod from ramming the leader. Both chosen
// actions are replayed for up to AvoidanceHorizon turns. At the first turn
// the pods touch, the secondary either brakes or steers along the leader's
// current velocity. The second return value reports whether it changed.
func AvoidTeammate(c race.Context, actions [2]Action) ([2]Action, bool) {
	leader := c.Leader()
	second := 1 - leader

	ls := c.Mine[leader].State
	ss := c.Mine[second].State
	for step := 0; step < AvoidanceHorizon; step++ {
		ls = actions[leader].Predict(ls)
		ss = actions[second].Predict(ss)
		if !prediction.Touching(ls.Position, ss.Position) {
			continue
		}

		toLeader := ls.Position.Sub(ss.Position)
		if physics.AbsInt(ss.Velocity.AngleBetween(toLeader)) > RotationBrakeAngle {
			actions[second] = Action{Kind: BrakeForCollision, Target: actions[second].Target}
		} else {
			aside := c.Mine[second].State.Position.Add(c.Mine[leader].State.Velocity)
			actions[second] = Action{Kind: Accelerate, Target: aside}
		}
		return actions, true
	}
	return actions, false
}
