package entitystore

import (
	"os"

	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"pkg.world.dev/entitystore/statsd"
)

const (
	DefaultLogLevel  = "info"
	DefaultNamespace = statsd.DefaultNamespace
)

// Config is the environment driven configuration used by NewManagerFromEnv.
type Config struct {
	// LogLevel is any level accepted by zerolog.ParseLevel.
	LogLevel string `config:"ENTITYSTORE_LOG_LEVEL"`
	// StrictFreeze makes mutations on a frozen manager return ErrFrozen.
	StrictFreeze bool `config:"ENTITYSTORE_STRICT_FREEZE"`
	// StatsdAddress enables metrics when set.
	StatsdAddress string `config:"ENTITYSTORE_STATSD_ADDRESS"`
	// Namespace is used as the statsd namespace and as a logger field.
	Namespace string `config:"ENTITYSTORE_NAMESPACE"`
}

var defaultConfig = Config{
	LogLevel:      DefaultLogLevel,
	StrictFreeze:  false,
	StatsdAddress: "",
	Namespace:     DefaultNamespace,
}

// LoadConfig reads the configuration from the environment. Unset variables keep their defaults.
func LoadConfig() (*Config, error) {
	cfg := defaultConfig
	if err := config.FromEnv().To(&cfg); err != nil {
		return nil, eris.Wrap(err, "failed to load config from environment")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	if c.Namespace == "" {
		return eris.New("namespace cannot be empty")
	}
	return nil
}

// Options translates the configuration into manager options. Explicit options passed to NewManagerFromEnv are
// applied after these and win.
func (c Config) Options() []Option {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stderr).Level(level).With().
		Timestamp().
		Str("namespace", c.Namespace).
		Logger()

	opts := []Option{WithLogger(logger)}
	if c.StrictFreeze {
		opts = append(opts, WithStrictFreeze())
	}
	return opts
}

// NewManagerFromEnv loads Config from the environment, sets up statsd if an address is configured and returns a
// Manager built from the result.
func NewManagerFromEnv(opts ...Option) (*Manager, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	if cfg.StatsdAddress != "" {
		if err := statsd.Init(cfg.StatsdAddress, cfg.Namespace, nil); err != nil {
			return nil, eris.Wrap(err, "unable to init statsd")
		}
	} else {
		log.Logger.Warn().Msg("statsd is disabled")
	}

	return NewManager(append(cfg.Options(), opts...)...), nil
}
