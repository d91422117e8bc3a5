package connection

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/battleship-solo/internal/error"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

const (
	defaultCleanupInterval = time.Minute * 20

	// returned by FetchCodeFromMsg when there is no usable code
	randomInvalidCode uint8 = 255
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically(ctx context.Context)

	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	Count() int

	GetSessionGame(session *Session) *mb.GameSession
	SetSessionGame(session *Session, game *mb.GameSession)

	WriteToSessionConn(ctx context.Context, session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	FetchCodeFromMsg(payload []byte) (uint8, error)
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

type SessionManagerOption func(*BattleshipSessionManager)

func WithCleanupInterval(interval time.Duration) SessionManagerOption {
	return func(bsm *BattleshipSessionManager) {
		bsm.cleanupInterval = interval
	}
}

func NewBattleshipSessionManager(opts ...SessionManagerOption) *BattleshipSessionManager {
	initMapSize := 10

	bsm := &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: defaultCleanupInterval,
	}
	for _, opt := range opts {
		opt(bsm)
	}
	return bsm
}

func (bsm *BattleshipSessionManager) GetSessionGame(session *Session) *mb.GameSession {
	return session.game
}

func (bsm *BattleshipSessionManager) SetSessionGame(session *Session, game *mb.GameSession) {
	session.game = game
}

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	bsm.mu.Lock()
	bsm.sessions[sessionId] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}
	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	delete(bsm.sessions, sessionId)
	bsm.mu.Unlock()
}

func (bsm *BattleshipSessionManager) Count() int {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()
	return len(bsm.sessions)
}

// To ensure that there is no dangling connections,
// server session manager marks the connections that have
// sent nothing for longer than the cleanup interval as
// stale, closes them and deletes them.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case now := <-ticker.C:
			removed := bsm.removeStaleSessions(now)
			if len(removed) > 0 {
				log.Info("cleaned up sessions", "removed", removed)
			}
		}
	}
}

func (bsm *BattleshipSessionManager) removeStaleSessions(now time.Time) []string {
	assumedClosedConns := 10
	toDelete := make([]string, 0, assumedClosedConns)

	bsm.mu.Lock()
	defer bsm.mu.Unlock()

	for id, session := range bsm.sessions {
		if now.Sub(session.LastActivity()) > bsm.cleanupInterval {
			toDelete = append(toDelete, id)
		}
	}

	for _, id := range toDelete {
		// the session loop sees a read error and exits
		if conn := bsm.sessions[id].conn; conn != nil {
			_ = conn.Close()
		}
		delete(bsm.sessions, id)
	}
	return toDelete
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(ctx context.Context, session *Session, msg interface{}, msgType uint8) error {
	return session.writeToConnWithRetry(ctx, msg, msgType)
}

// A read error cannot be retried with gorilla/websocket; every
// following read returns the same error. The error is classified
// for logging and handed back so the caller ends the session.
func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	messageType, payload, err := session.conn.ReadMessage()
	if err != nil {
		_ = session.onConnErr(err)
		return -1, []byte{}, err
	}
	session.touch(time.Now())
	return messageType, payload, nil
}

func (bsm *BattleshipSessionManager) FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal struct {
		Code *uint8 `json:"code"`
	}

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}
	if signal.Code == nil {
		return randomInvalidCode, cerr.ErrSignalCodeAbsent()
	}

	return *signal.Code, nil
}
