package connection

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

func testLayout() []mb.ShipPlacement {
	return []mb.ShipPlacement{
		{Kind: mb.ShipKindDestroyer, Origin: mb.NewCoordinates(0, 0), Orientation: mb.OrientationHorizontal},
		{Kind: mb.ShipKindSubmarine, Origin: mb.NewCoordinates(0, 2), Orientation: mb.OrientationHorizontal},
		{Kind: mb.ShipKindCruiser, Origin: mb.NewCoordinates(0, 4), Orientation: mb.OrientationHorizontal},
		{Kind: mb.ShipKindBattleship, Origin: mb.NewCoordinates(0, 6), Orientation: mb.OrientationHorizontal},
		{Kind: mb.ShipKindCarrier, Origin: mb.NewCoordinates(0, 8), Orientation: mb.OrientationHorizontal},
	}
}

func newTestBoard(t *testing.T) *mb.Board {
	t.Helper()
	b, err := mb.NewBoard(mb.NewFixedPlacement(testLayout()))
	require.NoError(t, err)
	return b
}

func TestNewRespAttack(t *testing.T) {
	b := newTestBoard(t)

	miss, err := b.Attack(9, 9)
	require.NoError(t, err)
	resp := NewRespAttack(miss, mb.GameStateComputerTurn)
	require.Equal(t, RespAttack{X: 9, Y: 9, State: "computer_turn"}, resp)

	_, err = b.Attack(0, 0)
	require.NoError(t, err)
	sunk, err := b.Attack(1, 0)
	require.NoError(t, err)

	resp = NewRespAttack(sunk, mb.GameStatePlayerTurn)
	require.True(t, resp.Hit)
	require.True(t, resp.Sunk)
	require.Equal(t, "destroyer", resp.SunkKind)
	require.Equal(t, "You sunk my destroyer!", resp.Message)
	require.False(t, resp.GameOver)
}

func TestNewBoardSnapshotHidesShipsAfloat(t *testing.T) {
	b := newTestBoard(t)
	for _, c := range []mb.Coordinates{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 8}, {X: 9, Y: 9}} {
		_, err := b.Attack(c.X, c.Y)
		require.NoError(t, err)
	}

	hidden := NewBoardSnapshot(b, false)
	require.Len(t, hidden.Attacks, 4)
	require.Equal(t, []mb.Coordinates{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 8}}, hidden.Hits)
	require.Len(t, hidden.Ships, 1)
	require.Equal(t, "destroyer", hidden.Ships[0].Kind)
	require.True(t, hidden.Ships[0].Sunk)
	require.Equal(t, 4, hidden.ShipsAfloat)

	revealed := NewBoardSnapshot(b, true)
	require.Len(t, revealed.Ships, len(mb.Fleet))
	require.Equal(t, 1, revealed.Ships[4].Damage)
	require.False(t, revealed.Ships[4].Sunk)
}

func TestRespBoardStateJSON(t *testing.T) {
	gm, err := mb.NewBattleshipGameManager(mb.WithEnemyLayout(testLayout()))
	require.NoError(t, err)
	game, err := gm.CreateGame(mb.GameOptions{PlayerLayout: testLayout()})
	require.NoError(t, err)

	msg := NewMessage[RespBoardState](CodeBoardState)
	msg.AddPayload(NewRespBoardState(game))

	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.EqualValues(t, CodeBoardState, decoded["code"])

	payload := decoded["payload"].(map[string]interface{})
	require.Equal(t, game.Uuid(), payload["game_uuid"])
	require.Equal(t, "player_turn", payload["state"])
	require.Len(t, payload["player_board"].(map[string]interface{})["ships"], len(mb.Fleet))
	require.Empty(t, payload["enemy_board"].(map[string]interface{})["ships"])
	require.NotContains(t, decoded, "error")
}

func TestMessageAddError(t *testing.T) {
	msg := NewMessage[NoPayload](CodeInvalidSignal)
	msg.AddError("", "invalid code in the incoming payload")

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	require.JSONEq(t, `{"code":7,"error":{"message":"invalid code in the incoming payload"}}`, string(raw))
}
