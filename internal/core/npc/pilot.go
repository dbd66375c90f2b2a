package npc

import (
	"context"
	"io"

	"github.com/pkg/errors"

	"github.com/zeusync/strikeback/internal/core/events/bus"
	"github.com/zeusync/strikeback/internal/core/observability/log"
	"github.com/zeusync/strikeback/internal/core/protocol"
)

// Pilot plays one game over the text protocol.
type Pilot struct {
	events bus.EventBus
	logger log.Log
}

func NewPilot(events bus.EventBus, logger log.Log) *Pilot {
	return &Pilot{events: events, logger: logger}
}

// Run reads the track header and then answers turns until the input ends.
// A clean end of input returns nil.
func (p *Pilot) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	r := protocol.NewReader(in)
	w := protocol.NewWriter(out)

	track, err := r.ReadTrack()
	if errors.Is(err, protocol.ErrStreamExhausted) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "read track")
	}
	p.logger.Info("race started",
		log.Int("laps", track.Laps),
		log.Int("checkpoints", track.Len()),
		log.Uint64("fingerprint", track.Fingerprint()),
	)

	agent := NewAgent("pilot", track, p.events, p.logger)
	for {
		turn, err := r.ReadTurn()
		if errors.Is(err, protocol.ErrStreamExhausted) {
			p.logger.Info("input ended", log.Int("turns", agent.Turn()))
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "read turn %d", agent.Turn()+1)
		}

		cmds, err := agent.Step(ctx, turn)
		if err != nil {
			return errors.Wrapf(err, "turn %d", agent.Turn())
		}
		if err := w.WriteTurn(cmds[:]...); err != nil {
			return err
		}
	}
}
