package urlkit

import (
	"log/slog"

	"github.com/ghettovoice/urlkit/log"
)

type config struct {
	strict bool
	logger *slog.Logger
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		logger: log.Noop,
	}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(cfg)
		}
	}
	return cfg
}

func (c *config) diags() *diagnostics {
	return &diagnostics{logger: c.logger}
}

// Option configures a URL or a standalone component constructor.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// WithStrict enables strict mode. In strict mode improperly encoded path and
// query strings raise [WarnEncoding] warnings. Input is still accepted
// best-effort, warnings never fail the operation.
func WithStrict() Option {
	return optionFunc(func(c *config) { c.strict = true })
}

// WithLogger sets the logger that mutation warnings are mirrored to.
// By default warnings are collected but not logged.
func WithLogger(logger *slog.Logger) Option {
	return optionFunc(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}
