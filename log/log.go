package log

import (
	"github.com/rs/zerolog"

	"pkg.world.dev/entitystore"
)

func loadComponentTypeIntoArrayLogger(
	info entitystore.ComponentTypeInfo,
	arrayLogger *zerolog.Array,
) *zerolog.Array {
	dictLogger := zerolog.Dict()
	dictLogger = dictLogger.Str("component_name", info.Type.String())
	dictLogger = dictLogger.Int("entity_count", info.Count)
	return arrayLogger.Dict(dictLogger)
}

func loadComponentsToEvent(zeroLoggerEvent *zerolog.Event, m *entitystore.Manager) *zerolog.Event {
	infos := m.ComponentTypes()
	zeroLoggerEvent.Int("total_components", len(infos))
	arrayLogger := zerolog.Arr()
	for _, info := range infos {
		arrayLogger = loadComponentTypeIntoArrayLogger(info, arrayLogger)
	}
	return zeroLoggerEvent.Array("components", arrayLogger)
}

func loadEntityIntoEvent(
	zeroLoggerEvent *zerolog.Event, m *entitystore.Manager, id entitystore.EntityID,
) *zerolog.Event {
	arrayLogger := zerolog.Arr()
	for _, c := range m.ComponentsOnEntity(id) {
		arrayLogger = arrayLogger.Str(c.Name())
	}
	zeroLoggerEvent.Array("components", arrayLogger)
	if name, ok := m.NameFor(id); ok {
		zeroLoggerEvent.Str("entity_name", name)
	}
	return zeroLoggerEvent.Str("entity_id", id.String())
}

// Components logs every component store and how many entities it holds.
func Components(logger *zerolog.Logger, m *entitystore.Manager, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent = loadComponentsToEvent(zeroLoggerEvent, m)
	zeroLoggerEvent.Send()
}

// Entity logs the names of the components attached to the entity.
func Entity(logger *zerolog.Logger, level zerolog.Level, m *entitystore.Manager, id entitystore.EntityID) {
	zeroLoggerEvent := logger.WithLevel(level)
	loadEntityIntoEvent(zeroLoggerEvent, m, id).Send()
}

// Manager logs everything about the manager: entity count, freeze state and component stores.
func Manager(logger *zerolog.Logger, m *entitystore.Manager, level zerolog.Level) {
	zeroLoggerEvent := logger.WithLevel(level)
	zeroLoggerEvent.Int("total_entities", m.EntityCount())
	zeroLoggerEvent.Bool("frozen", m.IsFrozen())
	zeroLoggerEvent = loadComponentsToEvent(zeroLoggerEvent, m)
	zeroLoggerEvent.Send()
}

// SystemLogger tags every event with the system that emitted it.
func SystemLogger(logger *zerolog.Logger, systemName string) *zerolog.Logger {
	sub := logger.With().Str("system", systemName).Logger()
	return &sub
}

// RunLogger tags every event of one tick loop with its run id, so overlapping or restarted loops can be told
// apart in the logs.
func RunLogger(logger *zerolog.Logger, runID string) *zerolog.Logger {
	sub := logger.With().Str("run_id", runID).Logger()
	return &sub
}
