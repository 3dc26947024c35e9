package orchestrator

import (
	"time"

	"github.com/tech-psycho95/ai-council/model"
)

// Config holds the process-level options the specification recognizes
// (spec §6). Every field has a documented default; construct with
// DefaultConfig and layer Option values on top.
type Config struct {
	DefaultMode            model.ExecutionMode
	MaxParallelExecutions  int
	DefaultTimeout         time.Duration
	EnableArbitration      bool
	EnableSynthesis        bool
	MaxCostPerRequest      float64 // 0 disables the pre-flight budget check
	Currency               string
	PartialFailureThreshold float64
}

// DefaultConfig returns the specification's documented defaults.
func DefaultConfig() Config {
	return Config{
		DefaultMode:             model.ModeBalanced,
		MaxParallelExecutions:   8,
		DefaultTimeout:          300 * time.Second,
		EnableArbitration:       true,
		EnableSynthesis:         true,
		MaxCostPerRequest:       0,
		Currency:                "USD",
		PartialFailureThreshold: 0.5,
	}
}

// Option mutates a Config during construction.
type Option func(*Config)

// WithDefaultMode sets the ExecutionMode used when a caller passes none.
func WithDefaultMode(mode model.ExecutionMode) Option {
	return func(c *Config) { c.DefaultMode = mode }
}

// WithMaxParallelExecutions caps concurrent workers across all groups.
func WithMaxParallelExecutions(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxParallelExecutions = n
		}
	}
}

// WithDefaultTimeout sets the overarching per-request deadline.
func WithDefaultTimeout(d time.Duration) Option {
	return func(c *Config) { c.DefaultTimeout = d }
}

// WithArbitration toggles the arbitration stage; disabling it makes the
// orchestrator pass the first successful response straight to synthesis.
func WithArbitration(enabled bool) Option {
	return func(c *Config) { c.EnableArbitration = enabled }
}

// WithSynthesis toggles the synthesis stage; disabling it returns the first
// validated response as the FinalResponse verbatim.
func WithSynthesis(enabled bool) Option {
	return func(c *Config) { c.EnableSynthesis = enabled }
}

// WithMaxCostPerRequest rejects requests whose pre-flight cost estimate
// exceeds max, with a ValidationError. 0 disables the check.
func WithMaxCostPerRequest(max float64) Option {
	return func(c *Config) { c.MaxCostPerRequest = max }
}

// WithCurrency sets the display currency carried through cost_breakdown.
func WithCurrency(currency string) Option {
	return func(c *Config) { c.Currency = currency }
}

// WithPartialFailureThreshold sets the success-rate floor below which the
// orchestrator files a PARTIAL_FAILURE event.
func WithPartialFailureThreshold(threshold float64) Option {
	return func(c *Config) { c.PartialFailureThreshold = threshold }
}

// NewConfig builds a Config from DefaultConfig with opts applied in order.
func NewConfig(opts ...Option) Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
