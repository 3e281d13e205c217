// Package core contains the business logic of the task board: the Board
// aggregate with its mutation protocol, the interaction controller that
// turns UI intents into board operations, and configuration loading.
package core

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/valter-silva-au/taskboard/pkg/models"
)

// ConfigFileName is the name (without extension) of the board config file.
const ConfigFileName = ".tbconfig"

// ConfigurationManager defines the interface for loading and validating
// configuration from the .tbconfig file.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
	ValidateConfig(cfg *models.GlobalConfig) error
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading YAML configuration files.
type viperConfigManager struct {
	// basePath is the root directory where .tbconfig resides.
	basePath string
}

// NewConfigurationManager creates a new ConfigurationManager that reads
// configuration files relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultGlobalConfig returns a GlobalConfig populated with sensible defaults.
func DefaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		Board: models.BoardConfig{
			File:          "board.json",
			DateFormat:    "02.01.06",
			DefaultEffort: "0h:0m",
		},
		EventsLog: ".tb_events.jsonl",
		Log: models.LogConfig{
			Level:  "info",
			Format: "text",
			File:   ".tb.log",
		},
		Alerts: models.AlertConfig{
			WIPLimit:   5,
			MaxPlanned: 15,
			StaleDays:  7,
		},
	}
}

// LoadGlobalConfig reads the .tbconfig file from the base path using Viper.
// If the file does not exist, defaults are returned.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	v := viper.New()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("board.file", cfg.Board.File)
	v.SetDefault("board.date_format", cfg.Board.DateFormat)
	v.SetDefault("board.default_effort", cfg.Board.DefaultEffort)
	v.SetDefault("events_file", cfg.EventsLog)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("alerts.wip_limit", cfg.Alerts.WIPLimit)
	v.SetDefault("alerts.max_planned", cfg.Alerts.MaxPlanned)
	v.SetDefault("alerts.stale_days", cfg.Alerts.StaleDays)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", ConfigFileName, err)
	}

	cfg.Board.File = v.GetString("board.file")
	cfg.Board.DateFormat = v.GetString("board.date_format")
	// An explicitly empty effort is allowed.
	cfg.Board.DefaultEffort = v.GetString("board.default_effort")
	cfg.EventsLog = v.GetString("events_file")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.Log.File = v.GetString("log.file")
	cfg.Alerts.WIPLimit = v.GetInt("alerts.wip_limit")
	cfg.Alerts.MaxPlanned = v.GetInt("alerts.max_planned")
	cfg.Alerts.StaleDays = v.GetInt("alerts.stale_days")

	return cfg, nil
}

var (
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"text": true, "json": true, "logfmt": true}
	validBoardExts  = map[string]bool{".json": true, ".yaml": true, ".yml": true}
)

// ValidateConfig checks the configuration for invalid values and returns a
// single error listing every problem found.
func (cm *viperConfigManager) ValidateConfig(cfg *models.GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if cfg.Board.File == "" {
		errs = append(errs, "board.file must not be empty")
	} else if ext := strings.ToLower(filepath.Ext(cfg.Board.File)); !validBoardExts[ext] {
		errs = append(errs, fmt.Sprintf("board.file %q must end in .json, .yaml or .yml", cfg.Board.File))
	}

	if cfg.Board.DateFormat == "" {
		errs = append(errs, "board.date_format must not be empty")
	} else if time.Date(1999, 12, 31, 23, 59, 58, 0, time.UTC).Format(cfg.Board.DateFormat) == cfg.Board.DateFormat {
		// A layout with no date tokens renders to itself.
		errs = append(errs, fmt.Sprintf("board.date_format %q contains no date fields", cfg.Board.DateFormat))
	}

	if cfg.Log.Level != "" && !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level %q is invalid, must be one of: debug, info, warn, error", cfg.Log.Level))
	}
	if cfg.Log.Format != "" && !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		errs = append(errs, fmt.Sprintf("log.format %q is invalid, must be one of: text, json, logfmt", cfg.Log.Format))
	}

	if cfg.Alerts.WIPLimit < 0 {
		errs = append(errs, fmt.Sprintf("alerts.wip_limit must be non-negative, got %d", cfg.Alerts.WIPLimit))
	}
	if cfg.Alerts.MaxPlanned < 0 {
		errs = append(errs, fmt.Sprintf("alerts.max_planned must be non-negative, got %d", cfg.Alerts.MaxPlanned))
	}
	if cfg.Alerts.StaleDays < 0 {
		errs = append(errs, fmt.Sprintf("alerts.stale_days must be non-negative, got %d", cfg.Alerts.StaleDays))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
