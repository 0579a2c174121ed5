package models

import (
	"os"
	"strings"
	"time"
)

// Environment variables read at startup. Values from a .env file in the
// working directory are loaded first by main.
const (
	EnvToken        = "BOTSEND_TOKEN"
	EnvChannelID    = "BOTSEND_CHANNEL_ID"
	EnvLogFile      = "BOTSEND_LOG_FILE"
	EnvCrashLog     = "BOTSEND_CRASH_LOG"
	EnvReadyTimeout = "BOTSEND_READY_TIMEOUT"
	EnvStartDir     = "BOTSEND_START_DIR"
)

type Config struct {
	Token           string        `json:"-"`
	ChannelID       string        `json:"channel_id"`
	LogFile         string        `json:"log_file"`
	CrashLogFile    string        `json:"crash_log_file"`
	StartDir        string        `json:"start_dir"`
	Verbose         bool          `json:"verbose"`
	TUI             bool          `json:"tui"`
	ReadyTimeout    time.Duration `json:"ready_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	ChannelHintTTL  time.Duration `json:"channel_hint_ttl"`
}

// DefaultConfig leaves ReadyTimeout at zero: the ready wait is unbounded
// unless the user asks for a limit.
var DefaultConfig = Config{
	LogFile:         "botsend.log",
	CrashLogFile:    "error_log.txt",
	StartDir:        ".",
	Verbose:         false,
	TUI:             true,
	ReadyTimeout:    0,
	ShutdownTimeout: 10 * time.Second,
	ChannelHintTTL:  12 * time.Hour,
}

// ConfigFromEnv starts from DefaultConfig and overlays the BOTSEND_*
// environment variables. A malformed duration returns a ConfigError.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig
	cfg.Token = strings.TrimSpace(os.Getenv(EnvToken))
	cfg.ChannelID = strings.TrimSpace(os.Getenv(EnvChannelID))
	cfg.LogFile = getenvDefault(EnvLogFile, cfg.LogFile)
	cfg.CrashLogFile = getenvDefault(EnvCrashLog, cfg.CrashLogFile)
	cfg.StartDir = getenvDefault(EnvStartDir, cfg.StartDir)

	if v := os.Getenv(EnvReadyTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, &ConfigError{Field: "ready_timeout", Message: "invalid duration " + v}
		}
		cfg.ReadyTimeout = d
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.ReadyTimeout < 0 {
		return &ConfigError{Field: "ready_timeout", Message: "must not be negative"}
	}

	if c.LogFile == "" {
		c.LogFile = DefaultConfig.LogFile
	}

	if c.CrashLogFile == "" {
		c.CrashLogFile = DefaultConfig.CrashLogFile
	}

	if c.StartDir == "" {
		c.StartDir = DefaultConfig.StartDir
	}

	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultConfig.ShutdownTimeout
	}

	if c.ChannelHintTTL <= 0 {
		c.ChannelHintTTL = DefaultConfig.ChannelHintTTL
	}

	return nil
}

type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
