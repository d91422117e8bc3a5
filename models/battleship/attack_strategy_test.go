package battleship

import (
	"testing"

	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

func mustAttack(t *testing.T, b *Board, coords ...Coordinates) {
	t.Helper()
	for _, c := range coords {
		_, err := b.Attack(c.X, c.Y)
		require.NoError(t, err)
	}
}

func TestNewAttackStrategy(t *testing.T) {
	tests := []struct {
		name     string
		expected AttackStrategy
	}{
		{"random", &RandomAttack{}},
		{"easy", &RandomAttack{}},
		{"hunt", &HuntAdjacentAttack{}},
		{"Medium", &HuntAdjacentAttack{}},
		{"omniscient", &OmniscientAttack{}},
		{" unfair ", &OmniscientAttack{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			strategy, err := NewAttackStrategy(test.name, seededRand(1))
			require.NoError(t, err)
			require.IsType(t, test.expected, strategy)
		})
	}

	_, err := NewAttackStrategy("cheater", seededRand(1))
	require.ErrorIs(t, err, cerr.ErrUnknownStrategy)
}

// Every strategy must keep producing fresh targets until the grid
// runs out.
func TestStrategiesNeverRefire(t *testing.T) {
	for _, name := range []string{AttackStrategyRandom, AttackStrategyHunt, AttackStrategyOmniscient} {
		t.Run(name, func(t *testing.T) {
			b := newTestBoard(t)
			strategy, err := NewAttackStrategy(name, seededRand(3))
			require.NoError(t, err)

			for i := 0; i < TotalTiles; i++ {
				target, err := strategy.NextTarget(b)
				require.NoError(t, err)
				require.True(t, target.InBounds())
				require.False(t, b.IsFired(target), "shot %d refired %s", i, target)
				mustAttack(t, b, target)
			}

			_, err = strategy.NextTarget(b)
			require.ErrorIs(t, err, cerr.ErrNoTargetsRemaining)
			require.True(t, b.IsLost())
		})
	}
}

func TestHuntAdjacentTargetsUnfiredNeighbours(t *testing.T) {
	b := NewEmptyBoard()
	mustPlace(t, b, 3, 3, OrientationHorizontal, ShipKindCruiser)
	mustPlace(t, b, 0, 9, OrientationHorizontal, ShipKindDestroyer)
	mustAttack(t, b, NewCoordinates(3, 3), NewCoordinates(4, 3))

	allowed := map[Coordinates]bool{{2, 3}: true, {3, 2}: true, {3, 4}: true}
	picked := make(map[Coordinates]bool)
	for seed := uint64(1); seed <= 60; seed++ {
		target, err := NewHuntAdjacentAttack(seededRand(seed)).NextTarget(b)
		require.NoError(t, err)
		require.True(t, allowed[target], "unexpected target %s", target)
		picked[target] = true
	}
	require.Len(t, picked, len(allowed))
}

func TestHuntAdjacentAroundSingleHitWithMiss(t *testing.T) {
	b := NewEmptyBoard()
	mustPlace(t, b, 3, 3, OrientationHorizontal, ShipKindDestroyer)
	mustAttack(t, b, NewCoordinates(3, 3), NewCoordinates(2, 3))

	allowed := map[Coordinates]bool{{4, 3}: true, {3, 2}: true, {3, 4}: true}
	for seed := uint64(1); seed <= 30; seed++ {
		target, err := NewHuntAdjacentAttack(seededRand(seed)).NextTarget(b)
		require.NoError(t, err)
		require.True(t, allowed[target], "unexpected target %s", target)
	}
}

func TestHuntAdjacentSkipsExhaustedHits(t *testing.T) {
	b := NewEmptyBoard()
	mustPlace(t, b, 3, 3, OrientationHorizontal, ShipKindCruiser)
	mustAttack(t, b,
		NewCoordinates(3, 3),
		NewCoordinates(2, 3),
		NewCoordinates(3, 2),
		NewCoordinates(3, 4),
		NewCoordinates(4, 3),
	)

	// (3,3) is boxed in, so the hunt continues from (4,3)
	allowed := map[Coordinates]bool{{4, 2}: true, {4, 4}: true, {5, 3}: true}
	for seed := uint64(1); seed <= 30; seed++ {
		target, err := NewHuntAdjacentAttack(seededRand(seed)).NextTarget(b)
		require.NoError(t, err)
		require.True(t, allowed[target], "unexpected target %s", target)
	}
}

func TestHuntAdjacentIgnoresSunkShips(t *testing.T) {
	b := NewEmptyBoard()
	mustPlace(t, b, 0, 0, OrientationHorizontal, ShipKindDestroyer)
	mustPlace(t, b, 5, 5, OrientationHorizontal, ShipKindCruiser)
	mustAttack(t, b, NewCoordinates(0, 0), NewCoordinates(1, 0), NewCoordinates(5, 5))

	allowed := map[Coordinates]bool{{4, 5}: true, {6, 5}: true, {5, 4}: true, {5, 6}: true}
	for seed := uint64(1); seed <= 30; seed++ {
		target, err := NewHuntAdjacentAttack(seededRand(seed)).NextTarget(b)
		require.NoError(t, err)
		require.True(t, allowed[target], "unexpected target %s", target)
	}
}

func TestHuntAdjacentFallsBackToRandom(t *testing.T) {
	b := newTestBoard(t)
	mustAttack(t, b, NewCoordinates(9, 9), NewCoordinates(9, 1))

	target, err := NewHuntAdjacentAttack(seededRand(5)).NextTarget(b)
	require.NoError(t, err)
	require.True(t, target.InBounds())
	require.False(t, b.IsFired(target))
}

func TestOmniscientHomesInOnDamagedShip(t *testing.T) {
	b := newTestBoard(t)
	mustAttack(t, b, NewCoordinates(2, 8))

	allowed := map[Coordinates]bool{{0, 8}: true, {1, 8}: true, {3, 8}: true, {4, 8}: true}
	picked := make(map[Coordinates]bool)
	for seed := uint64(1); seed <= 80; seed++ {
		target, err := NewOmniscientAttack(seededRand(seed)).NextTarget(b)
		require.NoError(t, err)
		require.True(t, allowed[target], "unexpected target %s", target)
		picked[target] = true
	}
	require.Len(t, picked, len(allowed))
}

func TestOmniscientSinksWithoutMissingOnceHit(t *testing.T) {
	b := newTestBoard(t)
	mustAttack(t, b, NewCoordinates(0, 6))
	strategy := NewOmniscientAttack(seededRand(8))

	// the battleship has three tiles left, all of them hits
	for i := 0; i < 3; i++ {
		target, err := strategy.NextTarget(b)
		require.NoError(t, err)
		_, err = b.Attack(target.X, target.Y)
		require.NoError(t, err)

		ship, ok := b.ShipAt(target)
		require.True(t, ok)
		require.Equal(t, ShipKindBattleship, ship.Kind())
	}

	require.Len(t, b.Fleet(), len(Fleet)-1)
}

func TestOmniscientFallsBackToRandomWithoutDamage(t *testing.T) {
	b := newTestBoard(t)
	mustAttack(t, b, NewCoordinates(9, 9))

	target, err := NewOmniscientAttack(seededRand(2)).NextTarget(b)
	require.NoError(t, err)
	require.False(t, b.IsFired(target))
}
