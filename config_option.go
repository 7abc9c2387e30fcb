package entitykit

import (
	"time"

	"github.com/entitykit/entitykit/logger"
)

// Option use functional option for entity Config.
type Option func(c *Config)

// WithLogger set logger.
func WithLogger(logger logger.Interface) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithNowFunc set now func.
func WithNowFunc(fn func() time.Time) Option {
	return func(c *Config) {
		c.NowFunc = fn
	}
}

// WithTokenFunc set token generator.
func WithTokenFunc(fn func() string) Option {
	return func(c *Config) {
		c.TokenFunc = fn
	}
}

// WithConfig copy every non zero field of config.
func WithConfig(config Config) Option {
	return func(c *Config) {
		if config.Logger != nil {
			c.Logger = config.Logger
		}
		if config.NowFunc != nil {
			c.NowFunc = config.NowFunc
		}
		if config.TokenFunc != nil {
			c.TokenFunc = config.TokenFunc
		}
	}
}
