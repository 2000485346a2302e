package qmem

import "math"

/*
Config holds the construction-time settings of a QuantumMemory. NewConfig
returns the defaults; Options adjust them.
*/
type Config struct {
	DefaultProbability Probability
	Source             RandomSource
	Metrics            *Metrics
	RecordHistory      bool
	HistoryLimit       int
}

// DefaultHistoryLimit is the number of transitions WithHistory keeps.
const DefaultHistoryLimit = 1000

func NewConfig() *Config {
	return &Config{
		DefaultProbability: DefaultProbability,
		Source:             globalSource{},
	}
}

// Option is a function type for configuring a QuantumMemory.
type Option func(*Config)

// WithSource injects the random source used for collapse draws.
func WithSource(source RandomSource) Option {
	return func(c *Config) {
		if source != nil {
			c.Source = source
		}
	}
}

// WithDefaultProbability sets the collapse probability of freshly superposed slots,
// clamped into [0, 1].
func WithDefaultProbability(p Probability) Option {
	return func(c *Config) {
		if math.IsNaN(float64(p)) {
			return
		}

		c.DefaultProbability = Probability(math.Max(
			float64(MinProbability),
			math.Min(float64(p), float64(MaxProbability)),
		))
	}
}

// WithMetrics attaches a (possibly shared) metrics collector.
func WithMetrics(metrics *Metrics) Option {
	return func(c *Config) {
		c.Metrics = metrics
	}
}

/*
WithHistory turns on the transition ledger. It keeps the latest
DefaultHistoryLimit transitions; older ones are dropped.
*/
func WithHistory() Option {
	return WithHistoryLimit(DefaultHistoryLimit)
}

// WithHistoryLimit turns on the ledger with room for limit transitions.
// A limit <= 0 keeps every transition, so the ledger grows without bound.
func WithHistoryLimit(limit int) Option {
	return func(c *Config) {
		c.RecordHistory = true
		c.HistoryLimit = limit
	}
}
