package battleship

import (
	"fmt"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

const (
	GridSize        = 10
	TotalTiles      = GridSize * GridSize
	TotalFleetTiles = 17

	// Per ship. The fleet footprint makes success near-certain
	// long before this is reached.
	MaxPlacementAttempts = 10000
)

type Orientation uint8

const (
	OrientationHorizontal Orientation = iota
	OrientationVertical
)

func (o Orientation) String() string {
	switch o {
	case OrientationHorizontal:
		return "horizontal"
	case OrientationVertical:
		return "vertical"
	default:
		return "unknown"
	}
}

func (o Orientation) isValid() bool {
	return o == OrientationHorizontal || o == OrientationVertical
}

// Numbering follows the order in which the fleet is placed.
type ShipKind int

const (
	ShipKindDestroyer ShipKind = iota
	ShipKindSubmarine
	ShipKindCruiser
	ShipKindBattleship
	ShipKindCarrier
)

// Fleet is the fixed composition of every board.
var Fleet = []ShipKind{
	ShipKindDestroyer,
	ShipKindSubmarine,
	ShipKindCruiser,
	ShipKindBattleship,
	ShipKindCarrier,
}

var shipLengths = map[ShipKind]int{
	ShipKindDestroyer:  2,
	ShipKindSubmarine:  3,
	ShipKindCruiser:    3,
	ShipKindBattleship: 4,
	ShipKindCarrier:    5,
}

var shipNames = map[ShipKind]string{
	ShipKindDestroyer:  "destroyer",
	ShipKindSubmarine:  "submarine",
	ShipKindCruiser:    "cruiser",
	ShipKindBattleship: "battleship",
	ShipKindCarrier:    "carrier",
}

func (k ShipKind) IsValid() bool {
	_, prs := shipLengths[k]
	return prs
}

// Length returns the number of tiles the kind occupies.
func (k ShipKind) Length() (int, error) {
	length, prs := shipLengths[k]
	if !prs {
		return 0, cerr.ErrInvalidShipKind(int(k))
	}
	return length, nil
}

func (k ShipKind) String() string {
	name, prs := shipNames[k]
	if !prs {
		return fmt.Sprintf("unknown(%d)", int(k))
	}
	return name
}

// SunkMessage is what the defender announces when the ship goes down.
func (k ShipKind) SunkMessage() string {
	return fmt.Sprintf("You sunk my %s!", k)
}

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

func (c Coordinates) InBounds() bool {
	return c.X >= 0 && c.X < GridSize && c.Y >= 0 && c.Y < GridSize
}

// Neighbours returns the up, down, left and right coordinates,
// including those outside the grid.
func (c Coordinates) Neighbours() [4]Coordinates {
	return [4]Coordinates{
		{X: c.X, Y: c.Y - 1},
		{X: c.X, Y: c.Y + 1},
		{X: c.X - 1, Y: c.Y},
		{X: c.X + 1, Y: c.Y},
	}
}

func (c Coordinates) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Returns the coordinates a ship of the given length would
// cover when starting at origin.
func lineFrom(origin Coordinates, orientation Orientation, length int) []Coordinates {
	coords := make([]Coordinates, 0, length)
	for i := 0; i < length; i++ {
		if orientation == OrientationVertical {
			coords = append(coords, NewCoordinates(origin.X, origin.Y+i))
		} else {
			coords = append(coords, NewCoordinates(origin.X+i, origin.Y))
		}
	}
	return coords
}

func lineInBounds(origin Coordinates, orientation Orientation, length int) bool {
	if !origin.InBounds() {
		return false
	}
	if orientation == OrientationVertical {
		return origin.Y+length <= GridSize
	}
	return origin.X+length <= GridSize
}
