package arena

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"github.com/zeusync/strikeback/internal/core/events/bus"
	"github.com/zeusync/strikeback/internal/core/npc"
	"github.com/zeusync/strikeback/internal/core/observability/log"
	"github.com/zeusync/strikeback/internal/core/protocol"
	"github.com/zeusync/strikeback/internal/core/race"
	"github.com/zeusync/strikeback/internal/core/systems/physics"
)

// SideStats counts what one side's pilot did during a match, as reported on
// the match bus.
type SideStats struct {
	Boosts      int `yaml:"boosts"`
	Shields     int `yaml:"shields"`
	Checkpoints int `yaml:"checkpoints"`
	Avoidances  int `yaml:"avoidances"`
}

// BusStats is the match bus traffic.
type BusStats struct {
	Published uint64 `yaml:"published"`
	Delivered uint64 `yaml:"delivered"`
	Errors    uint64 `yaml:"errors"`
}

// Result is the outcome of one match.
type Result struct {
	ID          string       `yaml:"id"`
	Map         string       `yaml:"map"`
	Fingerprint uint64       `yaml:"fingerprint"`
	Winner      int          `yaml:"winner"`
	Reason      string       `yaml:"reason"`
	Turns       int          `yaml:"turns"`
	Sides       [2]SideStats `yaml:"sides"`
	Bus         BusStats     `yaml:"bus"`
}

// Match is one race between two agents on a referee.
type Match struct {
	ID       uuid.UUID
	mapName  string
	layout   race.Track
	track    race.Track
	maxTurns int
	logger   log.Log
}

// NewMatch prepares a match on m. Checkpoints are moved by up to jitter
// units using rng.
func NewMatch(m Map, laps, maxTurns, jitter int, rng *rand.Rand, logger log.Log) *Match {
	if logger == nil {
		logger = log.NewNop()
	}
	layout := m.Track(laps)
	track := race.Track{Laps: laps, Checkpoints: make([]physics.Vector, layout.Len())}
	for i, cp := range layout.Checkpoints {
		if jitter > 0 {
			cp = cp.Add(physics.Vec(rng.Intn(2*jitter+1)-jitter, rng.Intn(2*jitter+1)-jitter))
		}
		track.Checkpoints[i] = cp
	}

	id := uuid.New()
	return &Match{
		ID:       id,
		mapName:  m.Name,
		layout:   layout,
		track:    track,
		maxTurns: maxTurns,
		logger:   logger.With(log.String("match", id.String()), log.String("map", m.Name)),
	}
}

// Track is the jittered track the match is raced on.
func (m *Match) Track() race.Track { return m.track }

// Run plays the match to the end.
func (m *Match) Run(ctx context.Context) (Result, error) {
	events := bus.New()
	counter := newStatsCounter()
	subs, err := counter.attach(events)
	if err != nil {
		return Result{}, err
	}
	obs := &handlerFailures{logger: m.logger}
	events.AddObserver(obs)
	defer func() {
		events.RemoveObserver(obs)
		for _, s := range subs {
			_ = events.Unsubscribe(s)
		}
	}()

	var agents [2]*npc.Agent
	for side := range agents {
		agents[side] = npc.NewAgent(sideName(side), m.track, events, m.logger)
	}
	ref := NewReferee(m.track)

	for {
		// Both sides see the same snapshot before either move is applied.
		turns := [2]protocol.Turn{ref.Telemetry(0), ref.Telemetry(1)}
		var moves [2][2]protocol.Command
		for side, a := range agents {
			cmds, err := a.Step(ctx, turns[side])
			if err != nil {
				return Result{}, fmt.Errorf("match %s turn %d side %d: %w", m.ID, ref.Turn()+1, side, err)
			}
			moves[side] = cmds
		}
		for side, cmds := range moves {
			ref.Apply(side, cmds)
		}

		out := ref.Step(m.maxTurns)
		if !out.Done {
			continue
		}
		res := Result{
			ID:          m.ID.String(),
			Map:         m.mapName,
			Fingerprint: m.layout.Fingerprint(),
			Winner:      out.Winner,
			Reason:      out.Reason,
			Turns:       ref.Turn(),
			Sides:       counter.snapshot(),
			Bus:         busStats(events.GetMetrics()),
		}
		m.logger.Info("match finished",
			log.Int("winner", res.Winner),
			log.String("reason", res.Reason),
			log.Int("turns", res.Turns),
		)
		return res, nil
	}
}

func sideName(side int) string { return fmt.Sprintf("side%d", side) }

func busStats(m bus.EventBusMetrics) BusStats {
	return BusStats{Published: m.Published, Delivered: m.DeliveredHandlers, Errors: m.Errors}
}

// handlerFailures turns on bus metrics and logs failed deliveries.
type handlerFailures struct {
	logger log.Log
}

func (h *handlerFailures) OnPublish(string, bus.Event) {}

func (h *handlerFailures) OnDelivered(eventType string, handlers int, err error, _ int64) {
	if err != nil {
		h.logger.Warn("match event delivery failed",
			log.String("event", eventType),
			log.Int("handlers", handlers),
			log.Error(err),
		)
	}
}

// statsCounter tallies controlled-pod events per publishing side.
type statsCounter struct {
	mu    sync.Mutex
	sides [2]SideStats
}

func newStatsCounter() *statsCounter { return &statsCounter{} }

func (c *statsCounter) attach(events bus.EventBus) ([]bus.Subscription, error) {
	handlers := map[string]func(*SideStats){
		npc.EventBoostFired:        func(s *SideStats) { s.Boosts++ },
		npc.EventShieldRaised:      func(s *SideStats) { s.Shields++ },
		npc.EventCheckpointReached: func(s *SideStats) { s.Checkpoints++ },
		npc.EventTeammateAvoided:   func(s *SideStats) { s.Avoidances++ },
	}
	var subs []bus.Subscription
	for typ, apply := range handlers {
		sub, err := events.Subscribe(typ, func(e bus.Event) error {
			pe, ok := e.Data().(npc.PodEvent)
			if !ok {
				return fmt.Errorf("%s: unexpected payload %T", e.Type(), e.Data())
			}
			if !pe.Controlled() {
				return nil
			}
			side := 0
			if e.Source() == sideName(1) {
				side = 1
			}
			c.mu.Lock()
			apply(&c.sides[side])
			c.mu.Unlock()
			return nil
		})
		if err != nil {
			return subs, err
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func (c *statsCounter) snapshot() [2]SideStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sides
}
