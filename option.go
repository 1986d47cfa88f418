package entitystore

import (
	"github.com/rs/zerolog"
)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for debug events. Managers log to zerolog.Nop by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithStrictFreeze makes mutating calls on a frozen manager return ErrFrozen instead of silently doing nothing.
// The calls still have no effect.
func WithStrictFreeze() Option {
	return func(m *Manager) {
		m.strictFreeze = true
	}
}

// WithMetricTags adds statsd tags to every metric emitted by the manager.
func WithMetricTags(tags ...string) Option {
	return func(m *Manager) {
		m.metricTags = append(m.metricTags, tags...)
	}
}
