// Package internal provides the App struct that wires the task board
// components together and initializes the CLI layer.
package internal

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/taskboard/internal/cli"
	"github.com/valter-silva-au/taskboard/internal/core"
	"github.com/valter-silva-au/taskboard/internal/observability"
	"github.com/valter-silva-au/taskboard/internal/storage"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// App holds the service dependencies of the task board.
type App struct {
	BasePath string
	Config   *models.GlobalConfig

	// Configuration
	ConfigMgr core.ConfigurationManager

	// Diagnostics
	Logger *log.Logger

	// Storage layer
	Store storage.BoardStore

	// Core services
	Board      *core.Board
	Controller *core.Controller

	// Observability
	EventLog    observability.EventLog
	AlertEngine observability.AlertEngine
	MetricsCalc observability.MetricsCalculator
}

// NewApp loads the configuration and the board found under basePath and
// wires every component. A board file that could not be read is replaced by
// the seed board; that failure is logged and kept in cli.LoadWarning rather
// than returned.
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, cfgErr := app.ConfigMgr.LoadGlobalConfig()
	if cfgErr != nil {
		cfg = core.DefaultGlobalConfig()
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		return nil, err
	}
	app.Config = cfg

	// --- Diagnostics ---
	app.Logger = observability.NewLogger(os.Stderr, cfg.Log)
	if cfgErr != nil {
		// Non-fatal: run with defaults.
		app.Logger.Warn("using default configuration", "err", cfgErr)
	}

	// --- Observability ---
	eventLog, err := observability.NewJSONLEventLog(resolvePath(basePath, cfg.EventsLog))
	if err != nil {
		// Non-fatal: the board works without history, metrics or alerts.
		app.Logger.Warn("event log disabled", "err", err)
	} else {
		app.EventLog = eventLog
	}

	// --- Storage layer ---
	opts := core.BoardOptions{
		DateFormat:    cfg.Board.DateFormat,
		DefaultEffort: cfg.Board.DefaultEffort,
	}
	boardPath := resolvePath(basePath, cfg.Board.File)
	app.Store = storage.NewBoardStore(boardPath, func() models.Board {
		return core.DefaultBoard(opts)
	})

	// --- Core services ---
	var events core.EventLogger
	if app.EventLog != nil {
		events = &eventLogAdapter{log: app.EventLog}
	}
	app.Board = core.NewBoard(app.Store, events, opts)

	var loadWarning error
	if err := app.Board.Load(); err != nil {
		loadWarning = err
		app.Logger.Warn("board file replaced", "path", boardPath, "err", err)
	}
	app.Controller = core.NewController(app.Board, app.Logger)

	if app.EventLog != nil {
		app.MetricsCalc = observability.NewMetricsCalculator(app.EventLog, app.Board)
		app.AlertEngine = observability.NewAlertEngine(app.EventLog, app.Board, observability.ThresholdsFromConfig(cfg.Alerts))
	}

	// --- Wire CLI package-level variables ---
	cli.Controller = app.Controller
	cli.Logger = app.Logger
	cli.EventLog = app.EventLog
	cli.MetricsCalc = app.MetricsCalc
	cli.AlertEngine = app.AlertEngine
	cli.BoardPath = boardPath
	cli.LogFile = resolvePath(basePath, cfg.Log.File)
	cli.LoadWarning = loadWarning

	return app, nil
}

// Close releases resources held by the App, such as the event log file
// handle. It is safe to call Close on an App whose EventLog is nil.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the directory holding .tbconfig and the board.
// TB_HOME wins; otherwise the nearest ancestor of the working directory
// containing a .tbconfig file, falling back to the working directory.
func ResolveBasePath() string {
	if home := os.Getenv("TB_HOME"); home != "" {
		return home
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	for dir := cwd; ; {
		for _, name := range []string{core.ConfigFileName, core.ConfigFileName + ".yaml", core.ConfigFileName + ".yml"} {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return cwd
}

// resolvePath anchors a configured relative path at the base path.
func resolvePath(basePath, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(basePath, p)
}

// --- Adapters ---

// eventLogAdapter adapts observability.EventLog to core.EventLogger.
type eventLogAdapter struct {
	log observability.EventLog
}

func (a *eventLogAdapter) LogEvent(eventType string, data map[string]any) error {
	return a.log.Write(observability.Event{
		Time:    time.Now().UTC(),
		Level:   "INFO",
		Type:    eventType,
		Message: eventType,
		Data:    data,
	})
}
