//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/strikeback/internal/core/events/bus"
	"github.com/zeusync/strikeback/internal/core/npc"
	"github.com/zeusync/strikeback/internal/core/observability/log"
)

var pilotSet = wire.NewSet(
	log.NewWithOutput,
	wire.Bind(new(log.Log), new(*log.Logger)),
	bus.Provide,
	npc.NewPilot,
	wire.Struct(new(PilotApp), "*"),
)

func InitializePilot(level log.Level, output string) *PilotApp {
	wire.Build(pilotSet)
	return nil
}
