package probe

import "time"

// Config holds the prober configuration.
type Config struct {
	// IterationCeiling bounds every sentinel-terminated enumeration.
	// A device that never reports the sentinel within this many
	// entries fails with ErrEnumerationOverflow.
	IterationCeiling int

	// Retries is the number of retry attempts for a failed register
	// operation before the transport error is surfaced.
	Retries int

	// RetryBackoff is the delay before the first retry; it doubles on
	// each subsequent attempt.
	RetryBackoff time.Duration

	// Timeout bounds a single device probe. Zero disables the
	// deadline.
	Timeout time.Duration

	// Logger receives probe progress (optional).
	Logger Logger
}

func defaultConfig() Config {
	return Config{
		IterationCeiling: 256,
		Retries:          2,
		RetryBackoff:     20 * time.Millisecond,
		Timeout:          30 * time.Second,
	}
}

// Option is a functional option for configuring the Prober.
type Option func(*Config)

// WithIterationCeiling sets the enumeration iteration ceiling.
func WithIterationCeiling(ceiling int) Option {
	return func(c *Config) {
		if ceiling > 0 {
			c.IterationCeiling = ceiling
		}
	}
}

// WithRetries sets the number of retry attempts for failed register
// operations. Zero disables retries.
func WithRetries(retries int) Option {
	return func(c *Config) {
		if retries >= 0 {
			c.Retries = retries
		}
	}
}

// WithRetryBackoff sets the initial retry backoff delay.
func WithRetryBackoff(backoff time.Duration) Option {
	return func(c *Config) {
		if backoff > 0 {
			c.RetryBackoff = backoff
		}
	}
}

// WithProbeTimeout sets the per-device probe deadline. Zero disables
// it.
func WithProbeTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithLogger sets a logger for probe progress.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// Logger is an optional logging interface, allowing integration with
// any logging framework.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

func (p *Prober) logDebug(msg string, kv ...interface{}) {
	if p.cfg.Logger != nil {
		p.cfg.Logger.Debug(msg, kv...)
	}
}

func (p *Prober) logInfo(msg string, kv ...interface{}) {
	if p.cfg.Logger != nil {
		p.cfg.Logger.Info(msg, kv...)
	}
}
