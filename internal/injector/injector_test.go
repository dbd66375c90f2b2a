package injector

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/strikeback/internal/core/observability/log"
)

func TestInitializePilotSharesLogger(t *testing.T) {
	app := InitializePilot(log.LevelError, "stderr")
	require.NotNil(t, app.Pilot)
	require.NotNil(t, app.Logger)
	assert.Equal(t, log.LevelError, app.Logger.GetLevel())

	var out bytes.Buffer
	assert.NoError(t, app.Pilot.Run(context.Background(), strings.NewReader(""), &out))
	assert.Empty(t, out.String())
}
