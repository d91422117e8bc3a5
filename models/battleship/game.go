package battleship

import (
	"errors"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
)

const (
	WinnerPlayer   = "player"
	WinnerComputer = "computer"
)

type GameState uint8

const (
	GameStatePlayerTurn GameState = iota
	GameStateComputerTurn
	GameStatePlayerWon
	GameStateComputerWon
)

func (s GameState) String() string {
	switch s {
	case GameStatePlayerTurn:
		return "player_turn"
	case GameStateComputerTurn:
		return "computer_turn"
	case GameStatePlayerWon:
		return "player_won"
	case GameStateComputerWon:
		return "computer_won"
	default:
		return "unknown"
	}
}

func (s GameState) IsTerminal() bool {
	return s == GameStatePlayerWon || s == GameStateComputerWon
}

// GameSession runs the turns between the human player and the
// computer. A hit earns the shooter another shot.
type GameSession struct {
	uuid        string
	state       GameState
	playerBoard *Board
	enemyBoard  *Board
	computer    AttackStrategy
}

func NewGameSession(uuid string, playerBoard, enemyBoard *Board, computer AttackStrategy) *GameSession {
	return &GameSession{
		uuid:        uuid,
		state:       GameStatePlayerTurn,
		playerBoard: playerBoard,
		enemyBoard:  enemyBoard,
		computer:    computer,
	}
}

func (g *GameSession) Uuid() string {
	return g.uuid
}

func (g *GameSession) State() GameState {
	return g.state
}

func (g *GameSession) IsFinished() bool {
	return g.state.IsTerminal()
}

// Winner is empty until the game is finished.
func (g *GameSession) Winner() string {
	switch g.state {
	case GameStatePlayerWon:
		return WinnerPlayer
	case GameStateComputerWon:
		return WinnerComputer
	default:
		return ""
	}
}

// The human's own board, the one the computer fires at.
func (g *GameSession) PlayerBoard() *Board {
	return g.playerBoard
}

// The computer's board, the one the human fires at.
func (g *GameSession) EnemyBoard() *Board {
	return g.enemyBoard
}

// PlayerAttack resolves the human's shot at the enemy board.
func (g *GameSession) PlayerAttack(x, y int) (AttackResult, error) {
	if g.IsFinished() {
		return AttackResult{}, cerr.ErrGameIsFinished(g.uuid, g.state.String())
	}
	if g.state != GameStatePlayerTurn {
		return AttackResult{}, cerr.ErrAttackerTurn(g.state.String())
	}

	result, err := g.enemyBoard.Attack(x, y)
	if err != nil {
		return AttackResult{}, err
	}

	switch {
	case !result.Hit:
		g.state = GameStateComputerTurn
	case result.GameOver:
		g.state = GameStatePlayerWon
	}
	return result, nil
}

// ComputerMove lets the computer strategy pick a target on the
// player board and resolves it. The caller decides how long to wait
// before calling it.
func (g *GameSession) ComputerMove() (AttackResult, error) {
	if g.IsFinished() {
		return AttackResult{}, cerr.ErrGameIsFinished(g.uuid, g.state.String())
	}
	if g.state != GameStateComputerTurn {
		return AttackResult{}, cerr.ErrComputerTurn(g.state.String())
	}

	target, err := g.computer.NextTarget(g.playerBoard)
	if err != nil {
		if errors.Is(err, cerr.ErrNoTargetsRemaining) {
			g.finishWithoutTargets()
		}
		return AttackResult{}, err
	}

	result, err := g.playerBoard.Attack(target.X, target.Y)
	if err != nil {
		return AttackResult{}, err
	}

	switch {
	case !result.Hit:
		g.state = GameStatePlayerTurn
	case result.GameOver:
		g.state = GameStateComputerWon
	}
	return result, nil
}

// With every tile fired at the fleet is already gone, so this only
// settles a state that should have been reached by the last hit.
func (g *GameSession) finishWithoutTargets() {
	if g.playerBoard.IsLost() {
		g.state = GameStateComputerWon
		return
	}
	g.state = GameStatePlayerWon
}
