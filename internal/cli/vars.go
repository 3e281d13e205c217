package cli

import (
	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/taskboard/internal/core"
	"github.com/valter-silva-au/taskboard/internal/observability"
)

// Service instances, set during app initialization in app.go.
var (
	Controller  *core.Controller
	Logger      *log.Logger
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
)

// Session settings, set during app initialization in app.go.
var (
	// BoardPath is the resolved location of the board file.
	BoardPath string
	// LogFile receives diagnostics while the interactive board owns the
	// terminal.
	LogFile string
	// LoadWarning is the recovered failure from loading the board, if any.
	LoadWarning error
)
