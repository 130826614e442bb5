package variant

import (
	"github.com/go-logr/logr"

	"github.com/clockworklabs/SpacetimeDB/crates/variant-go/internal/logging"
)

// Config holds per-table runtime settings.
type Config struct {
	// Name identifies the table in log lines and errors.
	Name string
	// MaxDispatchKeys caps the number of entries a visitor may generate for
	// one combination of tables (the product of their alternative counts).
	MaxDispatchKeys int
	// SwapRecovery makes Swap try to restore the second operand from its
	// temporary copy when moving the first operand into it fails.
	SwapRecovery bool
	// Logger overrides the package logger for this table. The zero value
	// uses the package logger.
	Logger logr.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxDispatchKeys: 1 << 16,
		SwapRecovery:    true,
	}
}

// Option adjusts a Config.
type Option func(*Config)

// WithName sets the table name.
func WithName(name string) Option {
	return func(c *Config) { c.Name = name }
}

// WithMaxDispatchKeys sets Config.MaxDispatchKeys.
func WithMaxDispatchKeys(n int) Option {
	return func(c *Config) { c.MaxDispatchKeys = n }
}

// WithSwapRecovery enables or disables Config.SwapRecovery.
func WithSwapRecovery(enabled bool) Option {
	return func(c *Config) { c.SwapRecovery = enabled }
}

// WithLogger sets Config.Logger.
func WithLogger(l logr.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// SetLogger replaces the package logger used by tables without their own.
func SetLogger(l logr.Logger) {
	logging.SetLogger(l)
}

func (c Config) logger() logr.Logger {
	if c.Logger.GetSink() != nil {
		return c.Logger
	}
	return logging.Logger()
}
