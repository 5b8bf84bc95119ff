package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	sqlcgen "github.com/gokatarajesh/puzzle-platform/internal/db/sqlc"
)

var (
	ErrGameNotFound = errors.New("game not found")
	// ErrNotOwner is returned when republishing a game another author owns.
	ErrNotOwner = errors.New("game belongs to another author")
)

type gameStore interface {
	UpsertCustomGame(ctx context.Context, arg sqlcgen.UpsertCustomGameParams) (sqlcgen.CustomGame, error)
	GetCustomGame(ctx context.Context, gameID pgtype.UUID) (sqlcgen.CustomGame, error)
	ListCustomGames(ctx context.Context, arg sqlcgen.ListCustomGamesParams) ([]sqlcgen.ListCustomGamesRow, error)
	ListRecentGameIDs(ctx context.Context, limit int32) ([]pgtype.UUID, error)
}

// GameRepository persists published custom games.
type GameRepository struct {
	store gameStore
}

func NewGameRepository(store gameStore) *GameRepository {
	return &GameRepository{store: store}
}

// Upsert inserts or replaces a published game owned by params.AuthorID.
func (r *GameRepository) Upsert(ctx context.Context, params sqlcgen.UpsertCustomGameParams) (sqlcgen.CustomGame, error) {
	row, err := r.store.UpsertCustomGame(ctx, params)
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlcgen.CustomGame{}, ErrNotOwner
	}
	return row, err
}

// Get fetches one published game with its document.
func (r *GameRepository) Get(ctx context.Context, gameID uuid.UUID) (sqlcgen.CustomGame, error) {
	row, err := r.store.GetCustomGame(ctx, pgUUID(gameID))
	if errors.Is(err, pgx.ErrNoRows) {
		return sqlcgen.CustomGame{}, ErrGameNotFound
	}
	return row, err
}

// List returns summaries, newest first. difficulty 0 means any.
func (r *GameRepository) List(ctx context.Context, difficulty int16, limit int32) ([]sqlcgen.ListCustomGamesRow, error) {
	params := sqlcgen.ListCustomGamesParams{RowLimit: limit}
	if difficulty > 0 {
		params.Difficulty = pgtype.Int2{Int16: difficulty, Valid: true}
	}
	return r.store.ListCustomGames(ctx, params)
}

// RecentIDs returns the ids of the newest published games.
func (r *GameRepository) RecentIDs(ctx context.Context, limit int32) ([]uuid.UUID, error) {
	rows, err := r.store.ListRecentGameIDs(ctx, limit)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, id := range rows {
		if id.Valid {
			ids = append(ids, uuid.UUID(id.Bytes))
		}
	}
	return ids, nil
}

func pgUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}
