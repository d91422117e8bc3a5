package battleship

import (
	"testing"

	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

// scriptedAttack fires at a fixed list of targets.
type scriptedAttack struct {
	targets []Coordinates
	err     error
}

func (sa *scriptedAttack) NextTarget(_ *Board) (Coordinates, error) {
	if sa.err != nil {
		return Coordinates{}, sa.err
	}
	if len(sa.targets) == 0 {
		return Coordinates{}, cerr.ErrAllPositionsAttacked()
	}
	target := sa.targets[0]
	sa.targets = sa.targets[1:]
	return target, nil
}

func shipCoordinates(b *Board) []Coordinates {
	coords := make([]Coordinates, 0, TotalFleetTiles)
	for _, ship := range b.Ships() {
		coords = append(coords, ship.Tiles()...)
	}
	return coords
}

func newTestGame(t *testing.T, computer AttackStrategy) *GameSession {
	t.Helper()
	return NewGameSession("abc123", newTestBoard(t), newTestBoard(t), computer)
}

func TestGameStateString(t *testing.T) {
	tests := []struct {
		state    GameState
		expected string
	}{
		{GameStatePlayerTurn, "player_turn"},
		{GameStateComputerTurn, "computer_turn"},
		{GameStatePlayerWon, "player_won"},
		{GameStateComputerWon, "computer_won"},
		{GameState(99), "unknown"},
	}

	for _, test := range tests {
		if got := test.state.String(); got != test.expected {
			t.Errorf("GameState(%d).String() = %q, want %q", test.state, got, test.expected)
		}
	}
}

func TestPlayerHitKeepsTurn(t *testing.T) {
	g := newTestGame(t, &scriptedAttack{})
	require.Equal(t, GameStatePlayerTurn, g.State())

	result, err := g.PlayerAttack(0, 0)
	require.NoError(t, err)
	require.True(t, result.Hit)
	require.Equal(t, GameStatePlayerTurn, g.State())
	require.Empty(t, g.Winner())
}

func TestPlayerMissPassesTurnToComputer(t *testing.T) {
	g := newTestGame(t, &scriptedAttack{targets: []Coordinates{{0, 0}, {9, 9}}})

	result, err := g.PlayerAttack(9, 9)
	require.NoError(t, err)
	require.False(t, result.Hit)
	require.Equal(t, GameStateComputerTurn, g.State())

	_, err = g.PlayerAttack(8, 8)
	require.ErrorIs(t, err, cerr.ErrNotPlayerTurn)
	require.False(t, g.EnemyBoard().IsFired(NewCoordinates(8, 8)))

	// computer hit: another computer shot
	result, err = g.ComputerMove()
	require.NoError(t, err)
	require.True(t, result.Hit)
	require.Equal(t, GameStateComputerTurn, g.State())

	// computer miss: back to the player
	result, err = g.ComputerMove()
	require.NoError(t, err)
	require.False(t, result.Hit)
	require.Equal(t, GameStatePlayerTurn, g.State())

	_, err = g.ComputerMove()
	require.ErrorIs(t, err, cerr.ErrNotComputerTurn)
}

func TestRejectedPlayerAttackKeepsTurn(t *testing.T) {
	g := newTestGame(t, &scriptedAttack{})

	_, err := g.PlayerAttack(GridSize, 0)
	require.ErrorIs(t, err, cerr.ErrOutOfBounds)
	require.Equal(t, GameStatePlayerTurn, g.State())

	_, err = g.PlayerAttack(0, 0)
	require.NoError(t, err)
	_, err = g.PlayerAttack(0, 0)
	require.ErrorIs(t, err, cerr.ErrAlreadyAttacked)
	require.Equal(t, GameStatePlayerTurn, g.State())
}

func TestPlayerWins(t *testing.T) {
	g := newTestGame(t, &scriptedAttack{})

	targets := shipCoordinates(g.EnemyBoard())
	for i, c := range targets {
		result, err := g.PlayerAttack(c.X, c.Y)
		require.NoError(t, err)
		require.True(t, result.Hit)
		require.Equal(t, i == len(targets)-1, result.GameOver)
	}

	require.Equal(t, GameStatePlayerWon, g.State())
	require.True(t, g.IsFinished())
	require.Equal(t, WinnerPlayer, g.Winner())

	_, err := g.PlayerAttack(9, 9)
	require.ErrorIs(t, err, cerr.ErrGameFinished)
	_, err = g.ComputerMove()
	require.ErrorIs(t, err, cerr.ErrGameFinished)
}

func TestComputerWins(t *testing.T) {
	playerBoard := newTestBoard(t)
	computer := &scriptedAttack{targets: shipCoordinates(playerBoard)}
	g := NewGameSession("abc123", playerBoard, newTestBoard(t), computer)

	_, err := g.PlayerAttack(9, 9)
	require.NoError(t, err)

	for g.State() == GameStateComputerTurn {
		_, err := g.ComputerMove()
		require.NoError(t, err)
	}

	require.Equal(t, GameStateComputerWon, g.State())
	require.Equal(t, WinnerComputer, g.Winner())
	require.True(t, g.PlayerBoard().IsLost())
	require.False(t, g.EnemyBoard().IsLost())

	_, err = g.PlayerAttack(9, 8)
	require.ErrorIs(t, err, cerr.ErrGameFinished)
}

func TestComputerWithoutTargetsEndsGame(t *testing.T) {
	g := newTestGame(t, &scriptedAttack{err: cerr.ErrAllPositionsAttacked()})

	_, err := g.PlayerAttack(9, 9)
	require.NoError(t, err)

	_, err = g.ComputerMove()
	require.ErrorIs(t, err, cerr.ErrNoTargetsRemaining)
	require.True(t, g.IsFinished())
	require.Equal(t, GameStatePlayerWon, g.State())
}

func TestFullGameWithEveryStrategy(t *testing.T) {
	for _, name := range []string{AttackStrategyRandom, AttackStrategyHunt, AttackStrategyOmniscient} {
		t.Run(name, func(t *testing.T) {
			rng := seededRand(17)
			playerBoard, err := NewBoard(NewRandomPlacement(rng))
			require.NoError(t, err)
			enemyBoard, err := NewBoard(NewRandomPlacement(rng))
			require.NoError(t, err)
			computer, err := NewAttackStrategy(name, rng)
			require.NoError(t, err)

			g := NewGameSession("full", playerBoard, enemyBoard, computer)

			// the player sweeps the grid row by row
			sweep := enemyBoard.UnfiredCoordinates()
			for !g.IsFinished() {
				switch g.State() {
				case GameStatePlayerTurn:
					c := sweep[0]
					sweep = sweep[1:]
					_, err := g.PlayerAttack(c.X, c.Y)
					require.NoError(t, err)
				case GameStateComputerTurn:
					_, err := g.ComputerMove()
					require.NoError(t, err)
				}
			}

			switch g.State() {
			case GameStatePlayerWon:
				require.True(t, enemyBoard.IsLost())
				require.False(t, playerBoard.IsLost())
			case GameStateComputerWon:
				require.True(t, playerBoard.IsLost())
				require.False(t, enemyBoard.IsLost())
			default:
				t.Fatalf("unexpected final state %s", g.State())
			}
		})
	}
}
