package battleship

import (
	"math/rand/v2"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

type PlacementStrategy interface {
	Place(b *Board, kinds []ShipKind) error
}

// RandomPlacement samples origins and orientations until each ship
// fits, giving up after MaxPlacementAttempts tries per ship.
type RandomPlacement struct {
	rng         *rand.Rand
	maxAttempts int
}

var _ PlacementStrategy = (*RandomPlacement)(nil)

func NewRandomPlacement(rng *rand.Rand) *RandomPlacement {
	return &RandomPlacement{rng: rng, maxAttempts: MaxPlacementAttempts}
}

func (rp *RandomPlacement) Place(b *Board, kinds []ShipKind) error {
	for _, kind := range kinds {
		length, err := kind.Length()
		if err != nil {
			return err
		}

		placed := false
		for attempt := 0; attempt < rp.maxAttempts; attempt++ {
			origin := NewCoordinates(rp.rng.IntN(GridSize), rp.rng.IntN(GridSize))
			orientation := OrientationHorizontal
			if rp.rng.IntN(2) == 1 {
				orientation = OrientationVertical
			}

			if !b.CanPlace(origin, orientation, length) {
				continue
			}

			ship, err := NewShip(origin, orientation, kind)
			if err != nil {
				return err
			}
			if err := b.PlaceShip(ship); err != nil {
				return err
			}
			placed = true
			break
		}

		if !placed {
			return cerr.ErrPlacementRetriesExhausted(kind.String(), rp.maxAttempts)
		}
	}
	return nil
}

type ShipPlacement struct {
	Kind        ShipKind    `json:"kind"`
	Origin      Coordinates `json:"origin"`
	Orientation Orientation `json:"orientation"`
}

// FixedPlacement places a layout chosen ahead of time, e.g. by the
// player. Every requested kind needs exactly one entry.
type FixedPlacement struct {
	layout []ShipPlacement
}

var _ PlacementStrategy = (*FixedPlacement)(nil)

func NewFixedPlacement(layout []ShipPlacement) *FixedPlacement {
	return &FixedPlacement{layout: layout}
}

func (fp *FixedPlacement) Place(b *Board, kinds []ShipKind) error {
	byKind := make(map[ShipKind]ShipPlacement, len(fp.layout))
	for _, entry := range fp.layout {
		if !entry.Kind.IsValid() {
			return cerr.ErrInvalidShipKind(int(entry.Kind))
		}
		if _, prs := byKind[entry.Kind]; prs {
			return cerr.ErrLayoutDuplicateShip(entry.Kind.String())
		}
		byKind[entry.Kind] = entry
	}

	for _, kind := range kinds {
		entry, prs := byKind[kind]
		if !prs {
			return cerr.ErrLayoutMissingShip(kind.String())
		}

		ship, err := NewShip(entry.Origin, entry.Orientation, entry.Kind)
		if err != nil {
			return err
		}
		if err := b.PlaceShip(ship); err != nil {
			return err
		}
	}
	return nil
}
