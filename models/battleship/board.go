package battleship

import (
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

// Observer is told that a board changed. It reads whatever it needs
// back from the board.
type Observer interface {
	BoardUpdated()
}

type ObserverFunc func()

func (f ObserverFunc) BoardUpdated() {
	f()
}

type AttackResult struct {
	Coordinates
	Hit      bool
	Sunk     bool
	SunkKind ShipKind
	GameOver bool
}

// Board is one side of the game: its tiles, the ships placed on
// them, and every attack received so far.
type Board struct {
	// indexed [y][x]
	tiles [GridSize][GridSize]Tile

	// every placed ship, in placement order
	ships []*Ship
	// ships not destroyed yet
	fleet []*Ship

	attacks   []Coordinates
	observers []Observer
}

func NewEmptyBoard() *Board {
	b := &Board{
		ships:   make([]*Ship, 0, len(Fleet)),
		fleet:   make([]*Ship, 0, len(Fleet)),
		attacks: make([]Coordinates, 0, TotalTiles),
	}
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			b.tiles[y][x] = newTile(x, y)
		}
	}
	return b
}

// NewBoard creates the tiles and lets the strategy place the whole fleet.
func NewBoard(placement PlacementStrategy) (*Board, error) {
	b := NewEmptyBoard()
	if err := placement.Place(b, Fleet); err != nil {
		return nil, err
	}
	return b, nil
}

// CanPlace reports whether a ship of the given shape fits the grid
// without touching any placed ship.
func (b *Board) CanPlace(origin Coordinates, orientation Orientation, length int) bool {
	if !lineInBounds(origin, orientation, length) {
		return false
	}
	for _, ship := range b.ships {
		if ship.Overlaps(origin, orientation, length) {
			return false
		}
	}
	return true
}

func (b *Board) PlaceShip(ship *Ship) error {
	if ship.tiles != nil {
		return cerr.ErrShipTilesAssigned(ship.kind.String())
	}
	if !lineInBounds(ship.origin, ship.orientation, ship.length) {
		return cerr.ErrShipDoesNotFit(ship.kind.String(), ship.origin.X, ship.origin.Y)
	}
	for _, other := range b.ships {
		if other.Overlaps(ship.origin, ship.orientation, ship.length) {
			return cerr.ErrShipsOverlap(ship.kind.String(), other.kind.String())
		}
	}

	coords := lineFrom(ship.origin, ship.orientation, ship.length)
	for _, c := range coords {
		b.tiles[c.Y][c.X].Occupy()
	}
	if err := ship.occupyTiles(coords); err != nil {
		return err
	}

	b.ships = append(b.ships, ship)
	b.fleet = append(b.fleet, ship)
	return nil
}

// Attack fires at (x, y). Rejected attacks leave the board untouched.
func (b *Board) Attack(x, y int) (AttackResult, error) {
	c := NewCoordinates(x, y)
	if !c.InBounds() {
		return AttackResult{}, cerr.ErrXorYOutOfGridBound(x, y)
	}

	tile := &b.tiles[y][x]
	if tile.IsHit() {
		return AttackResult{}, cerr.ErrDefenceGridPositionAlreadyHit(x, y)
	}

	b.attacks = append(b.attacks, c)
	tile.MarkHit()

	result := AttackResult{Coordinates: c}
	if idx := b.fleetIndex(c); idx != -1 {
		ship := b.fleet[idx]
		ship.RegisterHit()
		result.Hit = true

		if ship.IsDestroyed() {
			b.fleet = append(b.fleet[:idx], b.fleet[idx+1:]...)
			result.Sunk = true
			result.SunkKind = ship.kind
		}
	}
	result.GameOver = b.IsLost()

	b.notifyObservers()
	return result, nil
}

func (b *Board) fleetIndex(c Coordinates) int {
	for i, ship := range b.fleet {
		if ship.Occupies(c) {
			return i
		}
	}
	return -1
}

func (b *Board) IsLost() bool {
	return len(b.fleet) == 0
}

func (b *Board) AddObserver(observer Observer) {
	b.observers = append(b.observers, observer)
}

func (b *Board) notifyObservers() {
	for _, observer := range b.observers {
		observer.BoardUpdated()
	}
}

// Tile returns the tile at (x, y); false if outside the grid.
func (b *Board) Tile(x, y int) (Tile, bool) {
	if !NewCoordinates(x, y).InBounds() {
		return Tile{}, false
	}
	return b.tiles[y][x], true
}

// Tiles returns a row-major copy of the grid.
func (b *Board) Tiles() []Tile {
	tiles := make([]Tile, 0, TotalTiles)
	for y := 0; y < GridSize; y++ {
		tiles = append(tiles, b.tiles[y][:]...)
	}
	return tiles
}

func (b *Board) IsFired(c Coordinates) bool {
	return c.InBounds() && b.tiles[c.Y][c.X].IsHit()
}

// UnfiredCoordinates returns, in row-major order, every position
// that has not been attacked.
func (b *Board) UnfiredCoordinates() []Coordinates {
	coords := make([]Coordinates, 0, TotalTiles-len(b.attacks))
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			if !b.tiles[y][x].IsHit() {
				coords = append(coords, NewCoordinates(x, y))
			}
		}
	}
	return coords
}

// Fleet returns the ships still afloat.
func (b *Board) Fleet() []*Ship {
	fleet := make([]*Ship, len(b.fleet))
	copy(fleet, b.fleet)
	return fleet
}

// Ships returns every placed ship, sunk or not.
func (b *Board) Ships() []*Ship {
	ships := make([]*Ship, len(b.ships))
	copy(ships, b.ships)
	return ships
}

func (b *Board) SunkShips() []*Ship {
	sunk := make([]*Ship, 0, len(b.ships)-len(b.fleet))
	for _, ship := range b.ships {
		if ship.IsDestroyed() {
			sunk = append(sunk, ship)
		}
	}
	return sunk
}

// ShipAt returns the ship covering c, sunk or not.
func (b *Board) ShipAt(c Coordinates) (*Ship, bool) {
	for _, ship := range b.ships {
		if ship.Occupies(c) {
			return ship, true
		}
	}
	return nil, false
}

// Attacks returns the attack log in the order the attacks happened.
func (b *Board) Attacks() []Coordinates {
	attacks := make([]Coordinates, len(b.attacks))
	copy(attacks, b.attacks)
	return attacks
}
