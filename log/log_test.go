package log_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"

	"pkg.world.dev/entitystore/assert"
	"pkg.world.dev/entitystore/log"
	"pkg.world.dev/entitystore/testutils"
)

func TestManagerLogger(t *testing.T) {
	m := testutils.NewTestManager(t)
	testutils.CreateEntities(t, m, 2, testutils.Position{})
	testutils.CreateEntities(t, m, 1, testutils.Position{}, testutils.Velocity{})

	var buf bytes.Buffer
	bufLogger := zerolog.New(&buf)
	log.Manager(&bufLogger, m, zerolog.InfoLevel)

	assert.JSONEq(t, `{
		"level":"info",
		"total_entities":3,
		"frozen":false,
		"total_components":2,
		"components":[
			{"component_name":"position","entity_count":3},
			{"component_name":"velocity","entity_count":1}
		]
	}`, buf.String())
}

func TestComponentsLogger(t *testing.T) {
	m := testutils.NewTestManager(t)
	testutils.CreateEntities(t, m, 1, testutils.Tag{})

	var buf bytes.Buffer
	bufLogger := zerolog.New(&buf)
	log.Components(&bufLogger, m, zerolog.DebugLevel)

	assert.JSONEq(t,
		`{"level":"debug","total_components":1,"components":[{"component_name":"tag","entity_count":1}]}`,
		buf.String())
}

func TestEntityLogger(t *testing.T) {
	m := testutils.NewTestManager(t)
	id, err := m.CreateNamedEntity("Hero")
	assert.NilError(t, err)
	assert.NilError(t, m.AddComponent(id, testutils.Position{}))
	assert.NilError(t, m.AddComponent(id, testutils.Health{}))

	var buf bytes.Buffer
	bufLogger := zerolog.New(&buf)
	log.Entity(&bufLogger, zerolog.InfoLevel, m, id)

	assert.JSONEq(t, `{
		"level":"info",
		"components":["position","health"],
		"entity_name":"Hero",
		"entity_id":"`+id.String()+`"
	}`, buf.String())
}

func TestSubLoggers(t *testing.T) {
	var buf bytes.Buffer
	bufLogger := zerolog.New(&buf)

	log.SystemLogger(&bufLogger, "movement").Info().Msg("moved")
	assert.JSONEq(t, `{"level":"info","system":"movement","message":"moved"}`, buf.String())

	buf.Reset()
	log.RunLogger(&bufLogger, "abc").Info().Msg("started")
	assert.JSONEq(t, `{"level":"info","run_id":"abc","message":"started"}`, buf.String())
}
