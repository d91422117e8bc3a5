package battleship

import (
	"math/rand/v2"
	"sync"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

const gameUuidLength = 6

type GameManager interface {
	CreateGame(opts GameOptions) (*GameSession, error)
	GetGame(gameUuid string) (*GameSession, error)
	TerminateGame(gameUuid string)
	Count() int
}

// GameOptions is what a player may choose when starting a game.
type GameOptions struct {
	// Empty means the player's fleet is placed at random.
	PlayerLayout []ShipPlacement
}

type BattleshipGameManager struct {
	games map[string]*GameSession
	mu    sync.RWMutex

	computerStrategy string
	seeded           bool
	seed             uint64
	created          uint64

	// Only set by tests that need to know where the enemy ships are.
	enemyLayout []ShipPlacement
}

var _ GameManager = (*BattleshipGameManager)(nil)

type GameManagerOption func(*BattleshipGameManager) error

func WithComputerStrategy(name string) GameManagerOption {
	return func(bgm *BattleshipGameManager) error {
		// resolving once here rejects bad names before any game exists
		if _, err := NewAttackStrategy(name, rand.New(rand.NewPCG(0, 0))); err != nil {
			return err
		}
		bgm.computerStrategy = name
		return nil
	}
}

// WithSeed makes every game created by the manager reproducible.
func WithSeed(seed uint64) GameManagerOption {
	return func(bgm *BattleshipGameManager) error {
		bgm.seeded = true
		bgm.seed = seed
		return nil
	}
}

func WithEnemyLayout(layout []ShipPlacement) GameManagerOption {
	return func(bgm *BattleshipGameManager) error {
		bgm.enemyLayout = layout
		return nil
	}
}

func NewBattleshipGameManager(opts ...GameManagerOption) (*BattleshipGameManager, error) {
	bgm := &BattleshipGameManager{
		games:            make(map[string]*GameSession, 10),
		computerStrategy: AttackStrategyHunt,
	}
	for _, opt := range opts {
		if err := opt(bgm); err != nil {
			return nil, err
		}
	}
	return bgm, nil
}

func (bgm *BattleshipGameManager) CreateGame(opts GameOptions) (*GameSession, error) {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	rng := bgm.newRand()

	var playerPlacement PlacementStrategy = NewRandomPlacement(rng)
	if len(opts.PlayerLayout) > 0 {
		playerPlacement = NewFixedPlacement(opts.PlayerLayout)
	}
	playerBoard, err := NewBoard(playerPlacement)
	if err != nil {
		return nil, err
	}

	var enemyPlacement PlacementStrategy = NewRandomPlacement(rng)
	if len(bgm.enemyLayout) > 0 {
		enemyPlacement = NewFixedPlacement(bgm.enemyLayout)
	}
	enemyBoard, err := NewBoard(enemyPlacement)
	if err != nil {
		return nil, err
	}

	computer, err := NewAttackStrategy(bgm.computerStrategy, rng)
	if err != nil {
		return nil, err
	}

	gameUuid := bgm.newGameUuid()
	game := NewGameSession(gameUuid, playerBoard, enemyBoard, computer)
	bgm.games[gameUuid] = game

	return game, nil
}

func (bgm *BattleshipGameManager) GetGame(gameUuid string) (*GameSession, error) {
	bgm.mu.RLock()
	game, prs := bgm.games[gameUuid]
	bgm.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameUuid)
	}

	return game, nil
}

func (bgm *BattleshipGameManager) TerminateGame(gameUuid string) {
	bgm.mu.Lock()
	delete(bgm.games, gameUuid)
	bgm.mu.Unlock()
}

func (bgm *BattleshipGameManager) Count() int {
	bgm.mu.RLock()
	defer bgm.mu.RUnlock()
	return len(bgm.games)
}

// Must be called with the lock held.
func (bgm *BattleshipGameManager) newRand() *rand.Rand {
	bgm.created++
	if bgm.seeded {
		return rand.New(rand.NewPCG(bgm.seed, bgm.created))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Must be called with the lock held.
func (bgm *BattleshipGameManager) newGameUuid() string {
	for {
		gameUuid := uuid.NewString()[:gameUuidLength]
		if _, prs := bgm.games[gameUuid]; !prs {
			return gameUuid
		}
	}
}
