package battleship

import (
	"math/rand/v2"
	"strings"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

const (
	AttackStrategyRandom     = "random"
	AttackStrategyHunt       = "hunt"
	AttackStrategyOmniscient = "omniscient"
)

// AttackStrategy picks where the computer fires next. The returned
// coordinates have never been fired at on the given board.
type AttackStrategy interface {
	NextTarget(b *Board) (Coordinates, error)
}

// NewAttackStrategy resolves a strategy by name. The difficulty names
// easy, medium and unfair are accepted as aliases.
func NewAttackStrategy(name string, rng *rand.Rand) (AttackStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case AttackStrategyRandom, "easy":
		return NewRandomAttack(rng), nil
	case AttackStrategyHunt, "medium":
		return NewHuntAdjacentAttack(rng), nil
	case AttackStrategyOmniscient, "unfair":
		return NewOmniscientAttack(rng), nil
	default:
		return nil, cerr.ErrAttackStrategyName(name)
	}
}

func pickOne(rng *rand.Rand, coords []Coordinates) Coordinates {
	return coords[rng.IntN(len(coords))]
}

type RandomAttack struct {
	rng *rand.Rand
}

var _ AttackStrategy = (*RandomAttack)(nil)

func NewRandomAttack(rng *rand.Rand) *RandomAttack {
	return &RandomAttack{rng: rng}
}

func (ra *RandomAttack) NextTarget(b *Board) (Coordinates, error) {
	unfired := b.UnfiredCoordinates()
	if len(unfired) == 0 {
		return Coordinates{}, cerr.ErrAllPositionsAttacked()
	}
	return pickOne(ra.rng, unfired), nil
}

// HuntAdjacentAttack fires next to the first hit, in row-major order,
// that belongs to a ship still afloat and still has an unfired
// neighbour. Without one it fires at random.
type HuntAdjacentAttack struct {
	rng      *rand.Rand
	fallback *RandomAttack
}

var _ AttackStrategy = (*HuntAdjacentAttack)(nil)

func NewHuntAdjacentAttack(rng *rand.Rand) *HuntAdjacentAttack {
	return &HuntAdjacentAttack{rng: rng, fallback: NewRandomAttack(rng)}
}

func (ha *HuntAdjacentAttack) NextTarget(b *Board) (Coordinates, error) {
	for _, tile := range b.Tiles() {
		if !tile.IsHit() || !tile.IsOccupied() {
			continue
		}
		if b.fleetIndex(tile.Coordinates) == -1 {
			continue
		}

		candidates := make([]Coordinates, 0, 4)
		for _, n := range tile.Neighbours() {
			if n.InBounds() && !b.IsFired(n) {
				candidates = append(candidates, n)
			}
		}
		if len(candidates) > 0 {
			return pickOne(ha.rng, candidates), nil
		}
	}
	return ha.fallback.NextTarget(b)
}

// OmniscientAttack knows where the ships are. Once a ship afloat has
// taken damage it fires at the rest of that ship.
type OmniscientAttack struct {
	rng      *rand.Rand
	fallback *RandomAttack
}

var _ AttackStrategy = (*OmniscientAttack)(nil)

func NewOmniscientAttack(rng *rand.Rand) *OmniscientAttack {
	return &OmniscientAttack{rng: rng, fallback: NewRandomAttack(rng)}
}

func (oa *OmniscientAttack) NextTarget(b *Board) (Coordinates, error) {
	for _, ship := range b.Fleet() {
		if ship.Damage() == 0 {
			continue
		}

		unfired := make([]Coordinates, 0, ship.Size())
		for _, c := range ship.Tiles() {
			if !b.IsFired(c) {
				unfired = append(unfired, c)
			}
		}
		if len(unfired) > 0 {
			return pickOne(oa.rng, unfired), nil
		}
	}
	return oa.fallback.NextTarget(b)
}
