package connection

import (
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateGame struct {
	GameUuid string `json:"game_uuid"`
	State    string `json:"state"`
}

type RespAttack struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Hit      bool   `json:"hit"`
	Sunk     bool   `json:"sunk"`
	SunkKind string `json:"sunk_kind,omitempty"`
	Message  string `json:"message,omitempty"`
	GameOver bool   `json:"game_over"`
	State    string `json:"state"`
}

func NewRespAttack(result mb.AttackResult, state mb.GameState) RespAttack {
	resp := RespAttack{
		X:        result.X,
		Y:        result.Y,
		Hit:      result.Hit,
		Sunk:     result.Sunk,
		GameOver: result.GameOver,
		State:    state.String(),
	}
	if result.Sunk {
		resp.SunkKind = result.SunkKind.String()
		resp.Message = result.SunkKind.SunkMessage()
	}
	return resp
}

type ShipSnapshot struct {
	Kind        string           `json:"kind"`
	Origin      mb.Coordinates   `json:"origin"`
	Orientation mb.Orientation   `json:"orientation"`
	Tiles       []mb.Coordinates `json:"tiles"`
	Damage      int              `json:"damage"`
	Sunk        bool             `json:"sunk"`
}

// BoardSnapshot is a board as one side is allowed to see it.
type BoardSnapshot struct {
	Attacks     []mb.Coordinates `json:"attacks"`
	Hits        []mb.Coordinates `json:"hits"`
	Ships       []ShipSnapshot   `json:"ships"`
	ShipsAfloat int              `json:"ships_afloat"`
}

// NewBoardSnapshot copies the attack log and the ships of b. Ships
// still afloat are only included when revealShips is set.
func NewBoardSnapshot(b *mb.Board, revealShips bool) BoardSnapshot {
	attacks := b.Attacks()
	snapshot := BoardSnapshot{
		Attacks:     attacks,
		Hits:        make([]mb.Coordinates, 0, mb.TotalFleetTiles),
		Ships:       make([]ShipSnapshot, 0, len(mb.Fleet)),
		ShipsAfloat: len(b.Fleet()),
	}

	for _, c := range attacks {
		if _, ok := b.ShipAt(c); ok {
			snapshot.Hits = append(snapshot.Hits, c)
		}
	}

	for _, ship := range b.Ships() {
		if !revealShips && !ship.IsDestroyed() {
			continue
		}
		snapshot.Ships = append(snapshot.Ships, ShipSnapshot{
			Kind:        ship.Kind().String(),
			Origin:      ship.Origin(),
			Orientation: ship.Orientation(),
			Tiles:       ship.Tiles(),
			Damage:      ship.Damage(),
			Sunk:        ship.IsDestroyed(),
		})
	}
	return snapshot
}

type RespBoardState struct {
	GameUuid    string        `json:"game_uuid"`
	State       string        `json:"state"`
	PlayerBoard BoardSnapshot `json:"player_board"`
	EnemyBoard  BoardSnapshot `json:"enemy_board"`
}

func NewRespBoardState(game *mb.GameSession) RespBoardState {
	return RespBoardState{
		GameUuid:    game.Uuid(),
		State:       game.State().String(),
		PlayerBoard: NewBoardSnapshot(game.PlayerBoard(), true),
		EnemyBoard:  NewBoardSnapshot(game.EnemyBoard(), false),
	}
}

type RespEndGame struct {
	Winner string `json:"winner"`
	State  string `json:"state"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
