package sqlc

import (
	"context"
	"fmt"

	"github.com/sqlc-dev/pqtype"

	mb "github.com/saeidalz13/battleship-solo/models/battleship"
)

// AnalyticsManager keeps per-server counters of games created and
// who won them. Every call is bounded by QuerierCtxTimeout.
type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.IncrementGamesCreatedCount(ctx, serverIpNet)
}

// RecordWinner bumps the counter of whoever won a finished game.
func (a *AnalyticsManager) RecordWinner(ctx context.Context, serverIpNet pqtype.Inet, winner string) error {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	switch winner {
	case mb.WinnerPlayer:
		return a.queries.IncrementPlayerWinsCount(ctx, serverIpNet)
	case mb.WinnerComputer:
		return a.queries.IncrementComputerWinsCount(ctx, serverIpNet)
	default:
		return fmt.Errorf("unknown winner: %q", winner)
	}
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.GetGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetServerAnalytics(ctx context.Context, serverIpNet pqtype.Inet) (GameServerAnalytic, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return a.queries.GetServerAnalytics(ctx, serverIpNet)
}
