package battleship

// Tile is a single grid cell. Both flags only ever go from false to true.
type Tile struct {
	Coordinates
	occupied bool
	hit      bool
}

func newTile(x, y int) Tile {
	return Tile{Coordinates: NewCoordinates(x, y)}
}

func (t *Tile) Occupy() {
	t.occupied = true
}

func (t *Tile) MarkHit() {
	t.hit = true
}

func (t Tile) IsOccupied() bool {
	return t.occupied
}

func (t Tile) IsHit() bool {
	return t.hit
}
