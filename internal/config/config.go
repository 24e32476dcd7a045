// Package config defines the service configuration and loads it from
// command line flags, environment variables and an optional config file.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables: --log-level is SQLDEMO_LOG_LEVEL.
const EnvPrefix = "SQLDEMO"

// Config holds the service configuration.
type Config struct {
	Bind               string
	MetricsAddr        string
	LogLevel           string
	LogFormat          string
	LogQueries         bool
	SlowQueryThreshold time.Duration
	ShutdownTimeout    time.Duration
	Tracing            bool
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Bind:               ":3000",
		LogLevel:           "INFO",
		LogFormat:          "text",
		SlowQueryThreshold: 200 * time.Millisecond,
		ShutdownTimeout:    5 * time.Second,
	}
}

// Flags registers a flag for every field on fs, with the field's current
// value as default.
func (c *Config) Flags(fs *pflag.FlagSet) {
	fs.StringVar(&c.Bind, "bind", c.Bind, "Address to serve HTTP on.")
	fs.StringVar(&c.MetricsAddr, "metrics-addr", c.MetricsAddr, "Address to serve prometheus /metrics on. Disabled when empty.")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: DEBUG, INFO, WARN or ERROR.")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "Log format: text or json.")
	fs.BoolVar(&c.LogQueries, "log-queries", c.LogQueries, "Log every SQL statement at debug level.")
	fs.DurationVar(&c.SlowQueryThreshold, "slow-query-threshold", c.SlowQueryThreshold, "Statements slower than this are logged as warnings.")
	fs.DurationVar(&c.ShutdownTimeout, "shutdown-timeout", c.ShutdownTimeout, "Time allowed for in-flight requests on shutdown.")
	fs.BoolVar(&c.Tracing, "tracing", c.Tracing, "Report statements to the global OpenTelemetry tracer and meter.")
}

// Load applies configuration to the flags in fs from, in priority order,
// the command line, the environment and the file named by the "config"
// flag (TOML or YAML, picked by extension). Since each flag points at a
// Config field, the fields end up holding the merged values.
func Load(v *viper.Viper, fs *pflag.FlagSet) error {
	if err := v.BindPFlags(fs); err != nil {
		return err
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	valid := make(map[string]bool)
	fs.VisitAll(func(f *pflag.Flag) {
		valid[f.Name] = true
	})

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading configuration file '%s': %w", path, err)
		}
		for _, key := range v.AllKeys() {
			if !valid[key] {
				return fmt.Errorf("invalid option in configuration file: %v", key)
			}
		}
	}

	var flagErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if flagErr != nil || f.Changed {
			// A flag given on the command line already holds its value.
			return
		}
		if err := f.Value.Set(v.GetString(f.Name)); err != nil {
			flagErr = fmt.Errorf("invalid value for %s: %w", f.Name, err)
		}
	})
	return flagErr
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Bind == "" {
		return fmt.Errorf("bind address is required")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown-timeout must not be negative")
	}
	return nil
}

// Logger builds the process logger writing to w.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.EqualFold(c.LogFormat, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler), nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO", "":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
