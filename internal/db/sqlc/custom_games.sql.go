// source: custom_games.sql

package sqlcgen

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getCustomGame = `-- name: GetCustomGame :one
SELECT game_id, author_id, title, difficulty, scene_count, document, published_at
FROM custom_games
WHERE game_id = $1
`

func (q *Queries) GetCustomGame(ctx context.Context, gameID pgtype.UUID) (CustomGame, error) {
	row := q.db.QueryRow(ctx, getCustomGame, gameID)
	var i CustomGame
	err := row.Scan(
		&i.GameID,
		&i.AuthorID,
		&i.Title,
		&i.Difficulty,
		&i.SceneCount,
		&i.Document,
		&i.PublishedAt,
	)
	return i, err
}

const listCustomGames = `-- name: ListCustomGames :many
SELECT game_id, author_id, title, difficulty, scene_count, published_at
FROM custom_games
WHERE ($1::smallint IS NULL OR difficulty = $1)
ORDER BY published_at DESC
LIMIT $2
`

type ListCustomGamesParams struct {
	Difficulty pgtype.Int2 `json:"difficulty"`
	RowLimit   int32       `json:"row_limit"`
}

type ListCustomGamesRow struct {
	GameID      pgtype.UUID        `json:"game_id"`
	AuthorID    pgtype.UUID        `json:"author_id"`
	Title       string             `json:"title"`
	Difficulty  int16              `json:"difficulty"`
	SceneCount  int32              `json:"scene_count"`
	PublishedAt pgtype.Timestamptz `json:"published_at"`
}

func (q *Queries) ListCustomGames(ctx context.Context, arg ListCustomGamesParams) ([]ListCustomGamesRow, error) {
	rows, err := q.db.Query(ctx, listCustomGames, arg.Difficulty, arg.RowLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCustomGamesRow
	for rows.Next() {
		var i ListCustomGamesRow
		if err := rows.Scan(
			&i.GameID,
			&i.AuthorID,
			&i.Title,
			&i.Difficulty,
			&i.SceneCount,
			&i.PublishedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listRecentGameIDs = `-- name: ListRecentGameIDs :many
SELECT game_id
FROM custom_games
ORDER BY published_at DESC
LIMIT $1
`

func (q *Queries) ListRecentGameIDs(ctx context.Context, limit int32) ([]pgtype.UUID, error) {
	rows, err := q.db.Query(ctx, listRecentGameIDs, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []pgtype.UUID
	for rows.Next() {
		var gameID pgtype.UUID
		if err := rows.Scan(&gameID); err != nil {
			return nil, err
		}
		items = append(items, gameID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertCustomGame = `-- name: UpsertCustomGame :one
INSERT INTO custom_games (game_id, author_id, title, difficulty, scene_count, document)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (game_id) DO UPDATE
SET title = EXCLUDED.title,
    difficulty = EXCLUDED.difficulty,
    scene_count = EXCLUDED.scene_count,
    document = EXCLUDED.document,
    published_at = NOW()
WHERE custom_games.author_id = EXCLUDED.author_id
RETURNING game_id, author_id, title, difficulty, scene_count, document, published_at
`

type UpsertCustomGameParams struct {
	GameID     pgtype.UUID `json:"game_id"`
	AuthorID   pgtype.UUID `json:"author_id"`
	Title      string      `json:"title"`
	Difficulty int16       `json:"difficulty"`
	SceneCount int32       `json:"scene_count"`
	Document   []byte      `json:"document"`
}

func (q *Queries) UpsertCustomGame(ctx context.Context, arg UpsertCustomGameParams) (CustomGame, error) {
	row := q.db.QueryRow(ctx, upsertCustomGame,
		arg.GameID,
		arg.AuthorID,
		arg.Title,
		arg.Difficulty,
		arg.SceneCount,
		arg.Document,
	)
	var i CustomGame
	err := row.Scan(
		&i.GameID,
		&i.AuthorID,
		&i.Title,
		&i.Difficulty,
		&i.SceneCount,
		&i.Document,
		&i.PublishedAt,
	)
	return i, err
}
