package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/saeidalz13/battleship-solo/db/sqlc"
	"github.com/saeidalz13/battleship-solo/internal/config"
	cerr "github.com/saeidalz13/battleship-solo/internal/error"
	"github.com/saeidalz13/battleship-solo/internal/telemetry"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager

	// nil when analytics are disabled
	analytics *sqlc.AnalyticsManager

	stage             string
	upgrader          websocket.Upgrader
	computerMoveDelay time.Duration
	tracer            trace.Tracer
}

var _ http.Handler = (*RequestProcessor)(nil)

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	opts ...Option,
) (*RequestProcessor, error) {
	rp := &RequestProcessor{
		sessionManager:    sessionManager,
		gameManager:       gameManager,
		stage:             config.StageDev,
		computerMoveDelay: defaultComputerMoveDelay,
	}

	for _, opt := range opts {
		if err := opt(rp); err != nil {
			return nil, err
		}
	}

	if rp.tracer == nil {
		rp.tracer = telemetry.Tracer("api")
	}
	rp.upgrader = newUpgrader(rp.stage)
	return rp, nil
}

func (rp *RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Upgrade replies with an http error on failure
	conn, err := rp.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("could not open websocket connection", "remote", r.RemoteAddr, "err", err)
		return
	}

	serverIpNet, err := getServerIpNet(conn.LocalAddr().String())
	if err != nil {
		log.Error("failed to extract server ip", "local", conn.LocalAddr().String(), "err", err)
		_ = conn.Close()
		return
	}

	session := rp.sessionManager.GenerateNewSession(conn)
	log.Info("a new connection established", "remote", conn.RemoteAddr().String(), "session", session.Id())

	rp.processSessionRequests(r.Context(), session, pqtype.Inet{IPNet: serverIpNet, Valid: true})
}

// boardWatcher is told by both boards of a game when an attack
// lands on them.
type boardWatcher struct {
	dirty bool
}

func newBoardWatcher(game *mb.GameSession) *boardWatcher {
	bw := &boardWatcher{}
	markDirty := mb.ObserverFunc(func() { bw.dirty = true })
	game.PlayerBoard().AddObserver(markDirty)
	game.EnemyBoard().AddObserver(markDirty)
	return bw
}

func (bw *boardWatcher) takeDirty() bool {
	dirty := bw.dirty
	bw.dirty = false
	return dirty
}

func (rp *RequestProcessor) processSessionRequests(ctx context.Context, session *mc.Session, serverIp pqtype.Inet) {
	ctx, cancel := context.WithCancel(ctx)

	var (
		watcher   *boardWatcher
		sessionId = session.Id()
	)

	defer func() {
		cancel()
		if game := rp.sessionManager.GetSessionGame(session); game != nil {
			rp.gameManager.TerminateGame(game.Uuid())
		}
		if session.Conn() != nil {
			_ = session.Conn().Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
		log.Info("session terminated", "session", sessionId)
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(ctx, session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		code, err := rp.sessionManager.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError(err.Error(), "")
			if err := rp.sessionManager.WriteToSessionConn(ctx, session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {

		// A rematch is a new game; whatever was being played is dropped
		case mc.CodeCreateGame, mc.CodeRematch:
			if prev := rp.sessionManager.GetSessionGame(session); prev != nil {
				rp.gameManager.TerminateGame(prev.Uuid())
				rp.sessionManager.SetSessionGame(session, nil)
				watcher = nil
			}

			_, span := rp.tracer.Start(ctx, "game.create")
			game, respMsg := NewRequest(payload).HandleCreateGame(rp.gameManager)
			if game != nil {
				rp.sessionManager.SetSessionGame(session, game)
				watcher = newBoardWatcher(game)
				rp.recordGameCreated(ctx, serverIp)

				span.SetAttributes(attribute.String("game", game.Uuid()), attribute.Bool("rematch", code == mc.CodeRematch))
				log.Info("game created", "session", sessionId, "game", game.Uuid())
			} else {
				span.SetStatus(codes.Error, respMsg.Error.ErrorDetails)
			}
			span.End()

			if err := rp.sessionManager.WriteToSessionConn(ctx, session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		// The player's shot. A miss hands the turn to the computer,
		// which keeps firing until it misses or wins.
		case mc.CodeAttack:
			game := rp.sessionManager.GetSessionGame(session)

			_, span := rp.tracer.Start(ctx, "game.player_attack")
			respMsg := NewRequest(payload).HandleAttack(game, sessionId)
			if respMsg.Error != nil {
				span.SetStatus(codes.Error, respMsg.Error.ErrorDetails)
			} else {
				span.SetAttributes(
					attribute.Int("x", respMsg.Payload.X),
					attribute.Int("y", respMsg.Payload.Y),
					attribute.Bool("hit", respMsg.Payload.Hit),
					attribute.Bool("sunk", respMsg.Payload.Sunk),
				)
			}
			span.End()

			if err := rp.sessionManager.WriteToSessionConn(ctx, session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

			// This means attack operation did not complete
			if respMsg.Error != nil {
				continue sessionLoop
			}

			if err := rp.resolveTurns(ctx, session, game, watcher, serverIp); err != nil {
				log.Warn("failed to resolve turns", "session", sessionId, "err", err)
				break sessionLoop
			}

		case mc.CodeBoardState:
			respMsg := NewRequest(payload).HandleBoardState(rp.sessionManager.GetSessionGame(session), sessionId)
			if err := rp.sessionManager.WriteToSessionConn(ctx, session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(ctx, session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

// resolveTurns runs after every accepted player attack: it pushes
// the updated boards, plays the computer turn if there is one and
// ends the game when it is over.
func (rp *RequestProcessor) resolveTurns(ctx context.Context, session *mc.Session, game *mb.GameSession, watcher *boardWatcher, serverIp pqtype.Inet) error {
	if err := rp.flushBoardState(ctx, session, game, watcher); err != nil {
		return err
	}

	for game.State() == mb.GameStateComputerTurn {
		if err := rp.waitComputerMove(ctx); err != nil {
			return err
		}

		_, span := rp.tracer.Start(ctx, "game.computer_move")
		result, err := game.ComputerMove()
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			span.End()

			// the game has been settled by ComputerMove
			if errors.Is(err, cerr.ErrNoTargetsRemaining) {
				break
			}
			return err
		}
		span.SetAttributes(
			attribute.Int("x", result.X),
			attribute.Int("y", result.Y),
			attribute.Bool("hit", result.Hit),
			attribute.Bool("sunk", result.Sunk),
		)
		span.End()

		msg := mc.NewMessage[mc.RespAttack](mc.CodeComputerAttack)
		msg.AddPayload(mc.NewRespAttack(result, game.State()))
		if err := rp.sessionManager.WriteToSessionConn(ctx, session, msg, mc.MessageTypeJSON); err != nil {
			return err
		}

		if err := rp.flushBoardState(ctx, session, game, watcher); err != nil {
			return err
		}
	}

	if game.IsFinished() {
		return rp.endGame(ctx, session, game, serverIp)
	}
	return nil
}

func (rp *RequestProcessor) flushBoardState(ctx context.Context, session *mc.Session, game *mb.GameSession, watcher *boardWatcher) error {
	if watcher == nil || !watcher.takeDirty() {
		return nil
	}

	msg := mc.NewMessage[mc.RespBoardState](mc.CodeBoardState)
	msg.AddPayload(mc.NewRespBoardState(game))
	return rp.sessionManager.WriteToSessionConn(ctx, session, msg, mc.MessageTypeJSON)
}

// The pause makes the computer feel like it is thinking.
func (rp *RequestProcessor) waitComputerMove(ctx context.Context) error {
	if rp.computerMoveDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(rp.computerMoveDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (rp *RequestProcessor) endGame(ctx context.Context, session *mc.Session, game *mb.GameSession, serverIp pqtype.Inet) error {
	winner := game.Winner()
	rp.recordWinner(ctx, serverIp, winner)

	_, span := rp.tracer.Start(ctx, "game.end")
	span.SetAttributes(
		attribute.String("game", game.Uuid()),
		attribute.String("winner", winner),
		attribute.Int("player_shots", len(game.EnemyBoard().Attacks())),
		attribute.Int("computer_shots", len(game.PlayerBoard().Attacks())),
	)
	span.End()
	log.Info("game over", "session", session.Id(), "game", game.Uuid(), "winner", winner)

	msg := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
	msg.AddPayload(mc.RespEndGame{Winner: winner, State: game.State().String()})
	return rp.sessionManager.WriteToSessionConn(ctx, session, msg, mc.MessageTypeJSON)
}

// Analytics failures are logged; for now not killing the game for them.
func (rp *RequestProcessor) recordGameCreated(ctx context.Context, serverIp pqtype.Inet) {
	if rp.analytics == nil {
		return
	}
	if err := rp.analytics.IncrementGamesCreatedCount(ctx, serverIp); err != nil {
		log.Warn("failed to record created game", "err", err)
	}
}

func (rp *RequestProcessor) recordWinner(ctx context.Context, serverIp pqtype.Inet, winner string) {
	if rp.analytics == nil {
		return
	}
	if err := rp.analytics.RecordWinner(ctx, serverIp, winner); err != nil {
		log.Warn("failed to record winner", "winner", winner, "err", err)
	}
}
