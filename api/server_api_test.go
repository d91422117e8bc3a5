package api

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/saeidalz13/battleship-solo/internal/config"
)

func TestGetServerIpNet(t *testing.T) {
	tests := []struct {
		name      string
		localAddr string
		expected  net.IPNet
		expectErr bool
	}{
		{
			name:      "ipv4",
			localAddr: "127.0.0.1:9191",
			expected:  net.IPNet{IP: net.IPv4(127, 0, 0, 1).To4(), Mask: net.CIDRMask(32, 32)},
		},
		{
			name:      "ipv6",
			localAddr: "[::1]:9191",
			expected:  net.IPNet{IP: net.ParseIP("::1"), Mask: net.CIDRMask(128, 128)},
		},
		{name: "no port", localAddr: "127.0.0.1", expectErr: true},
		{name: "not an ip", localAddr: "localhost:9191", expectErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ipNet, err := getServerIpNet(test.localAddr)
			if test.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.expected.String(), ipNet.String())
		})
	}
}

func TestUpgraderOriginCheckByStage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://game.example.com/battleship", nil)
	req.Header.Set("Origin", "http://evil.example.com")

	dev := newUpgrader(config.StageDev)
	require.True(t, dev.CheckOrigin(req))

	prod := newUpgrader(config.StageProd)
	require.Nil(t, prod.CheckOrigin)
}

func TestWaitComputerMove(t *testing.T) {
	rp := &RequestProcessor{computerMoveDelay: time.Millisecond * 10}
	require.NoError(t, rp.waitComputerMove(context.Background()))

	rp.computerMoveDelay = time.Hour
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, rp.waitComputerMove(ctx), context.Canceled)

	rp.computerMoveDelay = 0
	require.NoError(t, rp.waitComputerMove(context.Background()))
}
