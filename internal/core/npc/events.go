package npc

// Race events published by an Agent on its bus.
const (
	EventCheckpointReached = "race.checkpoint_reached"
	EventLapCompleted      = "race.lap_completed"
	EventBoostFired        = "pilot.boost_fired"
	EventShieldRaised      = "pilot.shield_raised"
	EventTeammateAvoided   = "pilot.teammate_avoided"
)

// PodEvent is the payload of every race event. Pod indexes the turn input:
// 0 and 1 are controlled, 2 and 3 are opponents.
type PodEvent struct {
	Turn int
	Pod  int
	Lap  int
	Next int
}

// Controlled reports whether the event concerns one of the agent's own pods.
func (e PodEvent) Controlled() bool { return e.Pod < 2 }
