package cli

import (
	"github.com/xhanalabs/xl/internal/observability"
	"github.com/xhanalabs/xl/pkg/models"
	"go.uber.org/zap"
)

// Service instances, set during app initialization in app.go.
var (
	Config  *models.Config
	History observability.HistoryLog
	Logger  = zap.NewNop()
)

// Setup wires the services above before any command runs. It receives the
// value of --config and is installed by main.
var Setup func(configFile string) error

// Teardown releases what Setup opened. Setup may leave it nil.
var Teardown func()
