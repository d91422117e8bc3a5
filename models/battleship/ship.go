package battleship

import (
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

type Ship struct {
	kind        ShipKind
	origin      Coordinates
	orientation Orientation
	length      int
	damage      int

	// Coordinates into the owning board's tile table.
	// Assigned once by the board at placement.
	tiles []Coordinates
}

func NewShip(origin Coordinates, orientation Orientation, kind ShipKind) (*Ship, error) {
	length, err := kind.Length()
	if err != nil {
		return nil, err
	}
	if !orientation.isValid() {
		return nil, cerr.ErrInvalidOrientation(int(orientation))
	}

	return &Ship{
		kind:        kind,
		origin:      origin,
		orientation: orientation,
		length:      length,
	}, nil
}

func (sh *Ship) Kind() ShipKind {
	return sh.kind
}

func (sh *Ship) Size() int {
	return sh.length
}

func (sh *Ship) Origin() Coordinates {
	return sh.origin
}

func (sh *Ship) Orientation() Orientation {
	return sh.orientation
}

func (sh *Ship) Damage() int {
	return sh.damage
}

// Tiles returns the coordinates the ship covers. Before placement
// it is empty.
func (sh *Ship) Tiles() []Coordinates {
	tiles := make([]Coordinates, len(sh.tiles))
	copy(tiles, sh.tiles)
	return tiles
}

// Coordinates returns what the ship covers, or would cover if
// it is not placed yet.
func (sh *Ship) Coordinates() []Coordinates {
	if sh.tiles != nil {
		return sh.Tiles()
	}
	return lineFrom(sh.origin, sh.orientation, sh.length)
}

func (sh *Ship) Occupies(c Coordinates) bool {
	for _, tile := range sh.tiles {
		if tile == c {
			return true
		}
	}
	return false
}

func (sh *Ship) occupyTiles(tiles []Coordinates) error {
	if sh.tiles != nil {
		return cerr.ErrShipTilesAssigned(sh.kind.String())
	}
	sh.tiles = make([]Coordinates, len(tiles))
	copy(sh.tiles, tiles)
	return nil
}

// RegisterHit never takes damage past the ship length.
func (sh *Ship) RegisterHit() {
	if sh.damage < sh.length {
		sh.damage++
	}
}

func (sh *Ship) IsDestroyed() bool {
	return sh.damage == sh.length
}

// Overlaps reports whether a candidate ship would share a tile
// with this one.
func (sh *Ship) Overlaps(origin Coordinates, orientation Orientation, length int) bool {
	for _, c := range lineFrom(origin, orientation, length) {
		if sh.Occupies(c) {
			return true
		}
	}
	return false
}
