package models

// BoardConfig holds the board file location and the defaults used when a
// new task is drafted.
type BoardConfig struct {
	File          string `yaml:"file" mapstructure:"file"`
	DateFormat    string `yaml:"date_format" mapstructure:"date_format"`
	DefaultEffort string `yaml:"default_effort" mapstructure:"default_effort"`
}

// LogConfig controls the diagnostics logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	File   string `yaml:"file" mapstructure:"file"`
}

// AlertConfig holds the board alert thresholds. Zero disables a check.
type AlertConfig struct {
	WIPLimit   int `yaml:"wip_limit" mapstructure:"wip_limit"`
	MaxPlanned int `yaml:"max_planned" mapstructure:"max_planned"`
	StaleDays  int `yaml:"stale_days" mapstructure:"stale_days"`
}

// GlobalConfig holds system-wide settings read from .tbconfig via Viper.
type GlobalConfig struct {
	Board     BoardConfig `yaml:"board" mapstructure:"board"`
	EventsLog string      `yaml:"events_file" mapstructure:"events_file"`
	Log       LogConfig   `yaml:"log" mapstructure:"log"`
	Alerts    AlertConfig `yaml:"alerts" mapstructure:"alerts"`
}
