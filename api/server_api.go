package api

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"

	"github.com/saeidalz13/battleship-solo/db/sqlc"
	"github.com/saeidalz13/battleship-solo/internal/config"
)

const (
	BattleshipRoute = "GET /battleship"

	defaultComputerMoveDelay = time.Second
)

func newUpgrader(stage string) websocket.Upgrader {
	upgrader := websocket.Upgrader{
		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		// probably more that enough but this is a good average size
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
	}

	// nil CheckOrigin rejects cross-origin requests
	if stage != config.StageProd {
		upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return upgrader
}

type Option func(*RequestProcessor) error

func WithStage(stage string) Option {
	return func(rp *RequestProcessor) error {
		if stage != config.StageProd && stage != config.StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		rp.stage = stage
		return nil
	}
}

// WithComputerMoveDelay sets how long the server waits before each
// computer shot. Zero plays the computer turn immediately.
func WithComputerMoveDelay(delay time.Duration) Option {
	return func(rp *RequestProcessor) error {
		if delay < 0 {
			return fmt.Errorf("computer move delay cannot be negative: %s", delay)
		}
		rp.computerMoveDelay = delay
		return nil
	}
}

func WithAnalytics(analytics *sqlc.AnalyticsManager) Option {
	return func(rp *RequestProcessor) error {
		rp.analytics = analytics
		return nil
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(rp *RequestProcessor) error {
		rp.tracer = tracer
		return nil
	}
}

func NewMux(rp *RequestProcessor) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(BattleshipRoute, rp)
	return mux
}

// The analytics are keyed by the address the client connected to.
func getServerIpNet(localAddr string) (net.IPNet, error) {
	host, _, err := net.SplitHostPort(localAddr)
	if err != nil {
		return net.IPNet{}, err
	}

	parsedIP := net.ParseIP(host)
	if parsedIP == nil {
		return net.IPNet{}, fmt.Errorf("invalid server ip: %s", host)
	}

	if ipv4 := parsedIP.To4(); ipv4 != nil {
		return net.IPNet{IP: ipv4, Mask: net.CIDRMask(32, 32)}, nil
	}
	return net.IPNet{IP: parsedIP, Mask: net.CIDRMask(128, 128)}, nil
}
