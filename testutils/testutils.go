package testutils

import (
	"testing"

	"github.com/rs/zerolog"

	"pkg.world.dev/entitystore"
)

// NewTestManager returns a Manager whose debug output goes to the test log.
func NewTestManager(t *testing.T, opts ...entitystore.Option) *entitystore.Manager {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t)).Level(zerolog.DebugLevel)
	return entitystore.NewManager(append([]entitystore.Option{entitystore.WithLogger(logger)}, opts...)...)
}

// CreateEntities creates n entities, each with the given components attached, and fails the test on error.
func CreateEntities(
	t *testing.T, m *entitystore.Manager, n int, components ...entitystore.Component,
) []entitystore.EntityID {
	t.Helper()
	ids := make([]entitystore.EntityID, 0, n)
	for i := 0; i < n; i++ {
		id, err := m.CreateEntity()
		if err != nil {
			t.Fatalf("failed to create entity: %v", err)
		}
		if id.IsNil() {
			t.Fatal("entity was not created, is the manager frozen?")
		}
		for _, c := range components {
			if err := m.AddComponent(id, c); err != nil {
				t.Fatalf("failed to add %s to %s: %v", c.Name(), id, err)
			}
		}
		ids = append(ids, id)
	}
	return ids
}
