package connection

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

const (
	maxWriteWsRetries          uint          = 2
	writeRetryInitialInterval  time.Duration = time.Millisecond * 500
	writeRetryMaxInterval      time.Duration = time.Second * 4
	writeRetryMultiplierFactor float64       = 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	writeToConnWithRetry(ctx context.Context, msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
}

// Session is one websocket connection and the game it is playing,
// if any.
type Session struct {
	id   string
	conn *websocket.Conn
	game *mb.GameSession

	// unix nanoseconds of the last message read from the client;
	// written by the session loop, read by the cleanup goroutine
	lastActivity atomic.Int64
}

func NewSession(id string, conn *websocket.Conn) *Session {
	s := &Session{
		id:   id,
		conn: conn,
	}
	s.touch(time.Now())
	return s
}

func (s *Session) touch(at time.Time) {
	s.lastActivity.Store(at.UnixNano())
}

func (s *Session) LastActivity() time.Time {
	return time.Unix(0, s.lastActivity.Load())
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

func (s *Session) onConnErr(err error) uint8 {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		log.Warn("timeout error", "session", s.id, "err", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Warn("high server load/traffic error", "session", s.id, "err", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
		log.Info("close error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		log.Error("critical error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	/*
		This might mean that the client is not from the application.
		Breaking not to overwhelm the server with invalid payloads (e.g. binary data)

		CloseUnsupportedData (1003): the client sent binary data to a text only server.
		CloseInvalidFramePayloadData (1007): a text message that is not valid UTF-8.
	*/
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		log.Warn("non-critical error", "session", s.id, "err", err)
		return ConnLoopBreak
	}

	log.Error("unexpected error", "session", s.id, "err", err)
	return ConnLoopBreak
}

func newWriteBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = writeRetryInitialInterval
	b.MaxInterval = writeRetryMaxInterval
	b.Multiplier = writeRetryMultiplierFactor
	return b
}

// Writes to the connection of that session. Only errors classified
// as ConnLoopRetry are retried; anything else ends the session.
func (s *Session) writeToConnWithRetry(ctx context.Context, msg interface{}, msgType uint8) error {
	var attempt uint

	write := func() (struct{}, error) {
		var err error

		switch msgType {
		case MessageTypeJSON:
			err = s.conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return struct{}{}, backoff.Permanent(NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid"))
			}
			err = s.conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return struct{}{}, backoff.Permanent(NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry"))
		}

		if err == nil {
			return struct{}{}, nil
		}

		if s.onConnErr(err) != ConnLoopRetry {
			return struct{}{}, backoff.Permanent(NewConnErr(ConnLoopBreak).AddDesc("breaking write loop due to: " + err.Error()))
		}

		attempt++
		log.Warn("writing to ws failed; retrying...", "remote", s.conn.RemoteAddr().String(), "attempt", attempt)
		return struct{}{}, err
	}

	_, err := backoff.Retry(ctx, write,
		backoff.WithBackOff(newWriteBackOff()),
		backoff.WithMaxTries(maxWriteWsRetries+1),
	)
	if err == nil {
		return nil
	}

	var connErr ConnErr
	if errors.As(err, &connErr) {
		return connErr
	}

	log.Error("max retries reached for writing to ws", "remote", s.conn.RemoteAddr().String(), "err", err)
	return NewConnErr(ConnLoopBreak).AddDesc(err.Error())
}

var _ ConnectionHandler = (*Session)(nil)
