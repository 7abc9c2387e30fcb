package entitykit

import (
	"time"

	"github.com/entitykit/entitykit/logger"
	"github.com/entitykit/entitykit/utils"
)

// Config entity construction config, nested entities share the config of
// the entity that built them
type Config struct {
	// Logger receives operation traces and resolution warnings
	Logger logger.Interface
	// NowFunc defaults _created_at of new entities
	NowFunc func() time.Time
	// TokenFunc generates the session token of new entities
	TokenFunc func() string
}

func newConfig(opts []Option) *Config {
	config := &Config{}
	for _, opt := range opts {
		if opt != nil {
			opt(config)
		}
	}

	if config.Logger == nil {
		config.Logger = logger.Default
	}
	if config.NowFunc == nil {
		config.NowFunc = time.Now
	}
	if config.TokenFunc == nil {
		config.TokenFunc = utils.NewToken
	}
	return config
}
