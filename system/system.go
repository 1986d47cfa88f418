// Package system runs the subsystems that consume an entity manager once per simulation tick.
//
// Systems receive the manager they work on at construction; this package never sees it. The only ordering
// between systems is registration order.
package system

import (
	"context"
	"path/filepath"
	"reflect"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	ecslog "pkg.world.dev/entitystore/log"
	"pkg.world.dev/entitystore/statsd"
)

const noActiveSystemName = "no_system"

// System processes one simulation tick given the time elapsed since the previous tick.
type System interface {
	// Name identifies the system in logs and metrics. It must be unique within a Manager.
	Name() string
	Tick(elapsed time.Duration) error
}

// LoggerSetter is implemented by systems that want a logger tagged with their name.
type LoggerSetter interface {
	SetLogger(logger *zerolog.Logger)
}

type funcSystem struct {
	name string
	fn   func(elapsed time.Duration) error
}

func (s funcSystem) Name() string                     { return s.name }
func (s funcSystem) Tick(elapsed time.Duration) error { return s.fn(elapsed) }

// Func adapts a plain function into a System named after the function.
func Func(fn func(elapsed time.Duration) error) System {
	return funcSystem{
		name: filepath.Base(runtime.FuncForPC(reflect.ValueOf(fn).Pointer()).Name()),
		fn:   fn,
	}
}

// NamedFunc adapts a plain function into a System with an explicit name.
func NamedFunc(name string, fn func(elapsed time.Duration) error) System {
	return funcSystem{name: name, fn: fn}
}

type Option func(*Manager)

func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

type Manager struct {
	mu sync.Mutex

	// registered holds systems in registration order, since maps in Go are unordered.
	registered []System
	names      map[string]struct{}

	// currentSystem is the name of the system that is currently running.
	currentSystem string

	logger zerolog.Logger
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		registered:    make([]System, 0),
		names:         make(map[string]struct{}),
		currentSystem: noActiveSystemName,
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register registers systems to run after the ones already registered.
// If any name is empty or duplicated, either within systems or with an already registered system, an error is
// returned and none of the systems are registered.
func (m *Manager) Register(systems ...System) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	systemNames := make([]string, 0, len(systems))
	for _, sys := range systems {
		name := sys.Name()
		if name == "" {
			return eris.New("system name cannot be empty")
		}
		if slices.Contains(systemNames, name) {
			return eris.Errorf("duplicate system %q in slice", name)
		}
		if _, ok := m.names[name]; ok {
			return eris.Errorf("system %q is already registered", name)
		}
		systemNames = append(systemNames, name)
	}

	for i, sys := range systems {
		if setter, ok := sys.(LoggerSetter); ok {
			setter.SetLogger(ecslog.SystemLogger(&m.logger, systemNames[i]))
		}
		m.names[systemNames[i]] = struct{}{}
		m.registered = append(m.registered, sys)
	}
	return nil
}

// Names returns the registered system names in run order.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.registered))
	for _, sys := range m.registered {
		names = append(names, sys.Name())
	}
	return names
}

// Current returns the name of the running system, or "no_system" between ticks.
func (m *Manager) Current() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentSystem
}

func (m *Manager) setCurrent(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentSystem = name
}

// RunTick runs every registered system once, in registration order. The first failing system stops the tick.
func (m *Manager) RunTick(elapsed time.Duration) error {
	m.mu.Lock()
	systems := slices.Clone(m.registered)
	m.mu.Unlock()

	defer m.setCurrent(noActiveSystemName)

	allSystemStartTime := time.Now()
	for _, sys := range systems {
		m.setCurrent(sys.Name())

		systemStartTime := time.Now()
		if err := sys.Tick(elapsed); err != nil {
			return eris.Wrapf(err, "system %s generated an error", sys.Name())
		}
		statsd.EmitTickStat(systemStartTime, sys.Name())
	}
	statsd.EmitTickStat(allSystemStartTime, "all_systems")

	m.logger.Debug().
		Int("systems", len(systems)).
		Dur("elapsed", elapsed).
		Msg("tick completed")
	return nil
}

// Run ticks every interval until ctx is cancelled, passing each tick the time since the previous one.
// It returns nil on cancellation and the error of the first failing tick otherwise.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return eris.Errorf("tick interval must be positive, got %s", interval)
	}

	runLogger := ecslog.RunLogger(&m.logger, uuid.NewString())
	runLogger.Info().Dur("interval", interval).Msg("tick loop started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	var ticks uint64
	for {
		select {
		case <-ctx.Done():
			runLogger.Info().Uint64("ticks", ticks).Msg("tick loop stopped")
			return nil
		case now := <-ticker.C:
			elapsed := now.Sub(last)
			last = now
			if err := m.RunTick(elapsed); err != nil {
				runLogger.Error().Err(err).Uint64("tick", ticks).Msg("tick failed")
				return err
			}
			ticks++
		}
	}
}
