package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

const getGamesCreatedCount = `-- name: GetGamesCreatedCount :one
SELECT games_created FROM game_server_analytics WHERE server_ip = $1
`

func (q *Queries) GetGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	row := q.db.QueryRowContext(ctx, getGamesCreatedCount, serverIp)
	var games_created int64
	err := row.Scan(&games_created)
	return games_created, err
}

const getServerAnalytics = `-- name: GetServerAnalytics :one
SELECT server_ip, games_created, player_wins, computer_wins, updated_at
FROM game_server_analytics WHERE server_ip = $1
`

func (q *Queries) GetServerAnalytics(ctx context.Context, serverIp pqtype.Inet) (GameServerAnalytic, error) {
	row := q.db.QueryRowContext(ctx, getServerAnalytics, serverIp)
	var i GameServerAnalytic
	err := row.Scan(
		&i.ServerIp,
		&i.GamesCreated,
		&i.PlayerWins,
		&i.ComputerWins,
		&i.UpdatedAt,
	)
	return i, err
}

const incrementComputerWinsCount = `-- name: IncrementComputerWinsCount :exec
INSERT INTO game_server_analytics (server_ip, computer_wins)
VALUES ($1, 1)
ON CONFLICT (server_ip) DO UPDATE
SET computer_wins = game_server_analytics.computer_wins + 1, updated_at = NOW()
`

func (q *Queries) IncrementComputerWinsCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, incrementComputerWinsCount, serverIp)
	return err
}

const incrementGamesCreatedCount = `-- name: IncrementGamesCreatedCount :exec
INSERT INTO game_server_analytics (server_ip, games_created)
VALUES ($1, 1)
ON CONFLICT (server_ip) DO UPDATE
SET games_created = game_server_analytics.games_created + 1, updated_at = NOW()
`

func (q *Queries) IncrementGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, incrementGamesCreatedCount, serverIp)
	return err
}

const incrementPlayerWinsCount = `-- name: IncrementPlayerWinsCount :exec
INSERT INTO game_server_analytics (server_ip, player_wins)
VALUES ($1, 1)
ON CONFLICT (server_ip) DO UPDATE
SET player_wins = game_server_analytics.player_wins + 1, updated_at = NOW()
`

func (q *Queries) IncrementPlayerWinsCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, incrementPlayerWinsCount, serverIp)
	return err
}
