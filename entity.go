package entitystore

import (
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

// EntityID is an opaque 128-bit random identifier. It carries no data; it is only a key into the component stores.
type EntityID uuid.UUID

// NilEntity is returned by CreateEntity when no entity was created.
var NilEntity = EntityID(uuid.Nil)

func newEntityID() EntityID {
	return EntityID(uuid.New())
}

// ParseEntityID parses the canonical string form produced by EntityID.String.
func ParseEntityID(s string) (EntityID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NilEntity, eris.Wrapf(err, "invalid entity id %q", s)
	}
	return EntityID(id), nil
}

func (id EntityID) String() string {
	return uuid.UUID(id).String()
}

func (id EntityID) IsNil() bool {
	return id == NilEntity
}

func (id EntityID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *EntityID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return eris.Wrap(err, "invalid entity id")
	}
	*id = EntityID(u)
	return nil
}
