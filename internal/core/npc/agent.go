package npc

import (
	"context"

	"github.com/zeusync/strikeback/internal/core/events/bus"
	"github.com/zeusync/strikeback/internal/core/observability/log"
	"github.com/zeusync/strikeback/internal/core/prediction"
	"github.com/zeusync/strikeback/internal/core/protocol"
	"github.com/zeusync/strikeback/internal/core/race"
	"github.com/zeusync/strikeback/internal/core/systems/physics"
)

// Agent drives two pods through one race. It owns the race state of all four
// pods and turns each turn of telemetry into two commands.
type Agent struct {
	name   string
	track  race.Track
	pods   [4]race.Pod
	events bus.EventBus
	logger log.Log
	turn   int

	// checkpointAngle is each controlled pod's last angle to its checkpoint.
	checkpointAngle [2]int
}

// NewAgent creates an agent for track. name is used as the event source.
func NewAgent(name string, track race.Track, events bus.EventBus, logger log.Log) *Agent {
	if events == nil {
		events = bus.New()
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Agent{
		name:   name,
		track:  track,
		events: events,
		logger: logger.With(log.String("agent", name)),
	}
}

// Turn is the number of turns stepped so far.
func (a *Agent) Turn() int { return a.turn }

// Context is the current race snapshot. The pods are shared with the agent.
func (a *Agent) Context() race.Context {
	return race.Context{
		Track:  a.track,
		Mine:   [2]*race.Pod{&a.pods[0], &a.pods[1]},
		Theirs: [2]*race.Pod{&a.pods[2], &a.pods[3]},
	}
}

// Step runs one turn: ingest telemetry, rank each side, decide for both
// controlled pods, keep them off each other and emit their commands.
func (a *Agent) Step(ctx context.Context, turn protocol.Turn) ([2]protocol.Command, error) {
	var cmds [2]protocol.Command
	if err := ctx.Err(); err != nil {
		return cmds, err
	}
	a.turn++

	// 1) sensors
	var events []bus.Event
	telemetry := [4]race.Telemetry{turn.Mine[0], turn.Mine[1], turn.Theirs[0], turn.Theirs[1]}
	for i := range a.pods {
		progress := a.pods[i].Update(telemetry[i], a.track)
		events = append(events, a.progressEvents(i, progress)...)
	}
	race.MarkLeader(&a.pods[0], &a.pods[1])
	race.MarkLeader(&a.pods[2], &a.pods[3])

	// 2) decisions
	c := a.Context()
	var actions [2]Action
	for i := range actions {
		actions[i] = Decide(c, i)
	}
	actions, avoided := AvoidTeammate(c, actions)
	if avoided {
		second := 1 - c.Leader()
		events = append(events, a.event(EventTeammateAvoided, second))
	}

	// 3) commands and memory
	for i, act := range actions {
		pod := c.Mine[i]
		cmd := act.Command(pod)
		switch {
		case cmd.Shield:
			events = append(events, a.event(EventShieldRaised, i))
		case cmd.Boost:
			pod.BoostUsed = true
			events = append(events, a.event(EventBoostFired, i))
		}
		a.logDecision(i, pod, act, cmd)
		pod.Remember(act.Target)
		cmds[i] = cmd
	}

	if err := a.events.PublishBatch(events...); err != nil {
		a.logger.Warn("race event handler failed", log.Int("turn", a.turn), log.Error(err))
	}
	return cmds, nil
}

func (a *Agent) progressEvents(i int, p race.Progress) []bus.Event {
	var out []bus.Event
	if p.ReachedCheckpoint {
		out = append(out, a.event(EventCheckpointReached, i))
	}
	if p.CompletedLap {
		out = append(out, a.event(EventLapCompleted, i))
		a.logger.Info("lap completed",
			log.Int("turn", a.turn),
			log.Int("pod", i),
			log.Int("lap", a.pods[i].Lap),
		)
	}
	return out
}

func (a *Agent) event(typ string, i int) bus.Event {
	p := &a.pods[i]
	return bus.NewEvent(typ, a.name, PodEvent{Turn: a.turn, Pod: i, Lap: p.Lap, Next: p.Next})
}

func (a *Agent) logDecision(i int, pod *race.Pod, act Action, cmd protocol.Command) {
	angle := pod.State.AngleTo(act.Target)
	align := a.turnsToAlign(i, pod)
	a.logger.Debug("decision",
		log.Int("turn", a.turn),
		log.Int("pod", i),
		log.Bool("leading", pod.Leading),
		log.String("action", act.Kind.String()),
		log.String("command", cmd.String()),
		log.Int("angle", angle),
		log.Float64("distance", pod.Distance),
		log.Int("turns_left", pod.TurnsLeft),
		log.Int("eta", prediction.TurnsToReach(pod.Distance, pod.State.Velocity.Length())),
		log.Int("align", align),
	)
}

// turnsToAlign estimates how many turns pod i needs to face its checkpoint,
// from how much that angle closed since the previous turn.
func (a *Agent) turnsToAlign(i int, pod *race.Pod) int {
	angle := pod.State.AngleTo(pod.Target(a.track))
	rate := 0
	if a.turn > 1 {
		rate = physics.NormalizeDegrees(a.checkpointAngle[i] - angle)
	}
	a.checkpointAngle[i] = angle
	return prediction.TurnsToAlign(angle, rate)
}
