package testutils

import "fmt"

// Position is a 2D position. Fields are exported so systems can mutate them in place.
type Position struct {
	X, Y float64
}

func (Position) Name() string { return "position" }

func (p Position) String() string {
	return fmt.Sprintf("(%v,%v)", p.X, p.Y)
}

type Velocity struct {
	DX, DY float64
}

func (Velocity) Name() string { return "velocity" }

type Health struct {
	Current, Max int
}

func (Health) Name() string { return "health" }

// Tag is a marker component without data.
type Tag struct{}

func (Tag) Name() string { return "tag" }
