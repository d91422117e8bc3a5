package api

import (
	"encoding/json"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

type RequestHandler interface {
	HandleCreateGame(gameManager mb.GameManager) (*mb.GameSession, mc.Message[mc.RespCreateGame])
	HandleAttack(game *mb.GameSession, sessionId string) mc.Message[mc.RespAttack]
	HandleBoardState(game *mb.GameSession, sessionId string) mc.Message[mc.RespBoardState]
}

// Every incoming valid request will have this structure.
// The request then is handled in line with RequestHandler interface.
type Request struct {
	payload []byte
}

var _ RequestHandler = (*Request)(nil)

func NewRequest(payload ...[]byte) *Request {
	req := &Request{}
	if len(payload) != 0 {
		req.payload = payload[0]
	}
	return req
}

// The player may send a layout for their own fleet; without one
// the fleet is placed at random.
func (r *Request) HandleCreateGame(gameManager mb.GameManager) (*mb.GameSession, mc.Message[mc.RespCreateGame]) {
	respMsg := mc.NewMessage[mc.RespCreateGame](mc.CodeCreateGame)

	var req mc.Message[mc.ReqCreateGame]
	if len(r.payload) != 0 {
		if err := json.Unmarshal(r.payload, &req); err != nil {
			respMsg.AddError(err.Error(), "invalid create game payload")
			return nil, respMsg
		}
	}

	game, err := gameManager.CreateGame(mb.GameOptions{PlayerLayout: req.Payload.Layout})
	if err != nil {
		respMsg.AddError(err.Error(), "failed to create game")
		return nil, respMsg
	}

	respMsg.AddPayload(mc.RespCreateGame{GameUuid: game.Uuid(), State: game.State().String()})
	return game, respMsg
}

func (r *Request) HandleAttack(game *mb.GameSession, sessionId string) mc.Message[mc.RespAttack] {
	respMsg := mc.NewMessage[mc.RespAttack](mc.CodeAttack)
	if game == nil {
		respMsg.AddError(cerr.ErrSessionWithoutGame(sessionId).Error(), "create a game first")
		return respMsg
	}

	var req mc.Message[*mc.ReqAttack]
	if err := json.Unmarshal(r.payload, &req); err != nil {
		respMsg.AddError(err.Error(), "invalid attack payload")
		return respMsg
	}
	if req.Payload == nil || req.Payload.X == nil || req.Payload.Y == nil {
		respMsg.AddError(cerr.ErrAttackCoordinatesAbsent(string(r.payload)).Error(), "invalid attack payload")
		return respMsg
	}

	result, err := game.PlayerAttack(*req.Payload.X, *req.Payload.Y)
	if err != nil {
		respMsg.AddError(err.Error(), "attack rejected")
		return respMsg
	}

	respMsg.AddPayload(mc.NewRespAttack(result, game.State()))
	return respMsg
}

func (r *Request) HandleBoardState(game *mb.GameSession, sessionId string) mc.Message[mc.RespBoardState] {
	respMsg := mc.NewMessage[mc.RespBoardState](mc.CodeBoardState)
	if game == nil {
		respMsg.AddError(cerr.ErrSessionWithoutGame(sessionId).Error(), "create a game first")
		return respMsg
	}

	respMsg.AddPayload(mc.NewRespBoardState(game))
	return respMsg
}
