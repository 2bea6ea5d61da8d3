package env

import (
	"fmt"
	"os"

	"rabbits_den/internal/config"
)

const (
	logLevelEnvName  = "LOG_LEVEL"
	logFormatEnvName = "LOG_FORMAT"
	logOutputEnvName = "LOG_OUTPUT"
	logDirEnvName    = "LOG_DIR"
)

type logConfig struct {
	level  string
	format string
	output string
	dir    string
}

func NewLogConfig() (config.LogConfig, error) {
	cfg := &logConfig{
		level:  getenvDefault(logLevelEnvName, "info"),
		format: getenvDefault(logFormatEnvName, "console"),
		output: getenvDefault(logOutputEnvName, "stdout"),
		dir:    getenvDefault(logDirEnvName, "logs"),
	}

	switch cfg.format {
	case "console", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.format)
	}
	switch cfg.output {
	case "stdout", "file", "both":
	default:
		return nil, fmt.Errorf("invalid log output %q", cfg.output)
	}

	return cfg, nil
}

func getenvDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func (c *logConfig) Level() string { return c.level }

func (c *logConfig) Format() string { return c.format }

func (c *logConfig) Output() string { return c.output }

func (c *logConfig) Dir() string { return c.dir }
