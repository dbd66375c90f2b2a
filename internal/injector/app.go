package injector

import (
	"github.com/zeusync/strikeback/internal/core/npc"
	"github.com/zeusync/strikeback/internal/core/observability/log"
)

// PilotApp is the wired pilot together with the logger it writes to.
type PilotApp struct {
	Pilot  *npc.Pilot
	Logger *log.Logger
}
