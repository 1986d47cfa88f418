package system_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"pkg.world.dev/entitystore"
	"pkg.world.dev/entitystore/assert"
	"pkg.world.dev/entitystore/system"
	"pkg.world.dev/entitystore/testutils"
)

// movement moves every entity that has both a *Position and a Velocity.
type movement struct {
	m      *entitystore.Manager
	logger *zerolog.Logger
}

func (s *movement) Name() string { return "movement" }

func (s *movement) SetLogger(logger *zerolog.Logger) { s.logger = logger }

func (s *movement) Tick(elapsed time.Duration) error {
	for _, id := range entitystore.EntitiesWith[testutils.Velocity](s.m) {
		if !entitystore.Has[*testutils.Position](s.m, id) {
			continue
		}
		pos, err := entitystore.Get[*testutils.Position](s.m, id)
		if err != nil {
			return err
		}
		vel, err := entitystore.Get[testutils.Velocity](s.m, id)
		if err != nil {
			return err
		}
		pos.X += vel.DX * elapsed.Seconds()
		pos.Y += vel.DY * elapsed.Seconds()
	}
	s.logger.Debug().Msg("moved")
	return nil
}

func TestRunTickDrivesSystemsOverManager(t *testing.T) {
	m := testutils.NewTestManager(t)
	id, err := m.CreateEntity()
	assert.NilError(t, err)
	assert.NilError(t, m.AddComponent(id, &testutils.Position{}))
	assert.NilError(t, m.AddComponent(id, testutils.Velocity{DX: 2, DY: -1}))

	var buf bytes.Buffer
	sm := system.NewManager(system.WithLogger(zerolog.New(&buf)))
	assert.NilError(t, sm.Register(&movement{m: m}))

	assert.NilError(t, sm.RunTick(500*time.Millisecond))
	assert.NilError(t, sm.RunTick(500*time.Millisecond))

	pos, err := entitystore.Get[*testutils.Position](m, id)
	assert.NilError(t, err)
	assert.Equal(t, testutils.Position{X: 2, Y: -1}, *pos)
	assert.Contains(t, buf.String(), `"system":"movement"`)
}

func TestSystemsRunInRegistrationOrder(t *testing.T) {
	var order []string
	record := func(name string) system.System {
		return system.NamedFunc(name, func(time.Duration) error {
			order = append(order, name)
			return nil
		})
	}

	sm := system.NewManager()
	assert.NilError(t, sm.Register(record("input"), record("physics")))
	assert.NilError(t, sm.Register(record("render")))
	assert.DeepEqual(t, []string{"input", "physics", "render"}, sm.Names())

	assert.NilError(t, sm.RunTick(time.Millisecond))
	assert.DeepEqual(t, []string{"input", "physics", "render"}, order)
	assert.Equal(t, "no_system", sm.Current())
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	noop := func(name string) system.System {
		return system.NamedFunc(name, func(time.Duration) error { return nil })
	}

	testCases := []struct {
		name     string
		existing []system.System
		register []system.System
	}{
		{name: "duplicate within call", register: []system.System{noop("a"), noop("b"), noop("a")}},
		{name: "already registered", existing: []system.System{noop("a")}, register: []system.System{noop("b"), noop("a")}},
		{name: "empty name", register: []system.System{noop("")}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sm := system.NewManager()
			assert.NilError(t, sm.Register(tc.existing...))
			assert.IsError(t, sm.Register(tc.register...))
			assert.Len(t, sm.Names(), len(tc.existing))
		})
	}
}

func TestFuncSystemIsNamedAfterFunction(t *testing.T) {
	sys := system.Func(gravity)
	assert.Equal(t, "system_test.gravity", sys.Name())
}

func gravity(time.Duration) error { return nil }

func TestRunTickStopsAtFirstError(t *testing.T) {
	errBoom := errors.New("boom")
	var ranAfter bool
	var current string

	sm := system.NewManager()
	assert.NilError(t, sm.Register(
		system.NamedFunc("exploder", func(time.Duration) error {
			current = sm.Current()
			return errBoom
		}),
		system.NamedFunc("after", func(time.Duration) error {
			ranAfter = true
			return nil
		}),
	))

	err := sm.RunTick(time.Millisecond)
	assert.ErrorIs(t, err, errBoom)
	assert.ErrorContains(t, err, "exploder")
	assert.False(t, ranAfter)
	assert.Equal(t, "exploder", current)
	assert.Equal(t, "no_system", sm.Current())
}

func TestRunTicksUntilCancelled(t *testing.T) {
	var ticks atomic.Int64
	var total atomic.Int64
	sm := system.NewManager()
	assert.NilError(t, sm.Register(system.NamedFunc("counter", func(elapsed time.Duration) error {
		ticks.Add(1)
		total.Add(int64(elapsed))
		return nil
	})))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sm.Run(ctx, 5*time.Millisecond) }()

	assert.Eventually(t, func() bool { return ticks.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	assert.NilError(t, <-done)
	assert.True(t, time.Duration(total.Load()) > 0)
}

func TestRunLogsWithRunID(t *testing.T) {
	var buf bytes.Buffer
	sm := system.NewManager(system.WithLogger(zerolog.New(&buf)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NilError(t, sm.Run(ctx, time.Hour))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
	var started, stopped struct {
		RunID   string `json:"run_id"`
		Message string `json:"message"`
	}
	assert.NilError(t, json.Unmarshal([]byte(lines[0]), &started))
	assert.NilError(t, json.Unmarshal([]byte(lines[1]), &stopped))
	assert.Equal(t, "tick loop started", started.Message)
	assert.Equal(t, "tick loop stopped", stopped.Message)
	assert.True(t, started.RunID != "")
	assert.Equal(t, started.RunID, stopped.RunID)
}

func TestRunReturnsTickError(t *testing.T) {
	sm := system.NewManager()
	assert.NilError(t, sm.Register(system.NamedFunc("broken", func(time.Duration) error {
		return errors.New("broken system")
	})))

	err := sm.Run(context.Background(), time.Millisecond)
	assert.ErrorContains(t, err, "broken system")
}

func TestRunRejectsNonPositiveInterval(t *testing.T) {
	sm := system.NewManager()
	assert.IsError(t, sm.Run(context.Background(), 0))
}
