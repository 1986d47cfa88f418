package entitystore

// SetEntityName records a human-readable name for the entity. Names are a debugging aid only; they show up in
// error messages, logs and snapshots. Naming is allowed while frozen and for ids that are not alive.
func (m *Manager) SetEntityName(id EntityID, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.names[id] = name
}

// NameFor returns the entity's name and whether one was set.
func (m *Manager) NameFor(id EntityID) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	name, ok := m.names[id]
	return name, ok
}

func (m *Manager) nameOrPlaceholder(id EntityID) string {
	if name, ok := m.names[id]; ok {
		return name
	}
	return unnamedEntity
}
