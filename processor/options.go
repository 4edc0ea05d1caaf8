package processor

import (
	"net/http"
	"runtime"
	"time"

	"github.com/erraggy/apitestgen"
	"github.com/erraggy/apitestgen/oaserrors"
	"github.com/erraggy/apitestgen/source"
)

// Option configures a processing run.
type Option func(*config) error

type config struct {
	endpoints     []string
	filterSchemas bool
	concurrency   int
	logger        apitestgen.Logger
	httpTimeout   time.Duration
	httpClient    *http.Client
}

// DefaultConcurrency is the worker limit used by BuildAll when none is set.
func DefaultConcurrency() int {
	return runtime.GOMAXPROCS(0)
}

func applyOptions(opts ...Option) (*config, error) {
	cfg := &config{
		filterSchemas: true,
		concurrency:   DefaultConcurrency(),
		httpTimeout:   source.DefaultTimeout,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	cfg.logger = apitestgen.OrNop(cfg.logger)
	return cfg, nil
}

// WithEndpoints restricts processing to units whose normalized path starts
// with one of the given prefixes. No prefixes means every unit.
func WithEndpoints(prefixes ...string) Option {
	return func(cfg *config) error {
		cfg.endpoints = append(cfg.endpoints, prefixes...)
		return nil
	}
}

// WithFilterSchemas enables or disables schema filtering during reassembly.
// Enabled by default.
func WithFilterSchemas(enabled bool) Option {
	return func(cfg *config) error {
		cfg.filterSchemas = enabled
		return nil
	}
}

// WithConcurrency sets the maximum number of units reassembled at once.
func WithConcurrency(n int) Option {
	return func(cfg *config) error {
		if n < 1 {
			return &oaserrors.ConfigError{Option: "concurrency", Value: n, Message: "must be at least 1"}
		}
		cfg.concurrency = n
		return nil
	}
}

// WithLogger sets the logger for the run.
func WithLogger(l apitestgen.Logger) Option {
	return func(cfg *config) error {
		cfg.logger = l
		return nil
	}
}

// WithHTTPTimeout bounds URL fetches.
func WithHTTPTimeout(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return &oaserrors.ConfigError{Option: "http timeout", Value: d, Message: "must be positive"}
		}
		cfg.httpTimeout = d
		return nil
	}
}

// WithHTTPClient sets the client used for URL sources.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *config) error {
		cfg.httpClient = c
		return nil
	}
}
