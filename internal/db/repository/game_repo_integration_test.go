//go:build integration
// +build integration

package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	sqlcgen "github.com/gokatarajesh/puzzle-platform/internal/db/sqlc"
)

type PostgresSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	repo      *GameRepository
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "db", "migrations")
}

func (s *PostgresSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.container, err = postgres.Run(s.ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("puzzles"),
		postgres.WithUsername("puzzle"),
		postgres.WithPassword("puzzle"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2*time.Minute),
		),
	)
	s.Require().NoError(err, "start postgres container")

	dsn, err := s.container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sql.Open("pgx", dsn)
	s.Require().NoError(err)
	defer db.Close()
	s.Require().NoError(goose.SetDialect("postgres"))
	s.Require().NoError(goose.Up(db, migrationsDir()))

	s.pool, err = pgxpool.New(s.ctx, dsn)
	s.Require().NoError(err)
	s.repo = NewGameRepository(sqlcgen.New(s.pool))
}

func (s *PostgresSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, "TRUNCATE custom_games")
	s.Require().NoError(err)
}

func params(gameID, author uuid.UUID, title string, difficulty int16) sqlcgen.UpsertCustomGameParams {
	return sqlcgen.UpsertCustomGameParams{
		GameID:     pgUUID(gameID),
		AuthorID:   pgUUID(author),
		Title:      title,
		Difficulty: difficulty,
		SceneCount: 2,
		Document:   []byte(`{"id":"` + gameID.String() + `"}`),
	}
}

func (s *PostgresSuite) TestUpsertIsOwnerScoped() {
	gameID, author := uuid.New(), uuid.New()

	row, err := s.repo.Upsert(s.ctx, params(gameID, author, "First", 1))
	s.Require().NoError(err)
	s.Equal("First", row.Title)

	row, err = s.repo.Upsert(s.ctx, params(gameID, author, "Second", 2))
	s.Require().NoError(err)
	s.Equal("Second", row.Title)
	s.Equal(int16(2), row.Difficulty)

	_, err = s.repo.Upsert(s.ctx, params(gameID, uuid.New(), "Stolen", 1))
	s.ErrorIs(err, ErrNotOwner)

	got, err := s.repo.Get(s.ctx, gameID)
	s.Require().NoError(err)
	s.Equal("Second", got.Title)
	s.JSONEq(`{"id":"`+gameID.String()+`"}`, string(got.Document))

	_, err = s.repo.Get(s.ctx, uuid.New())
	s.ErrorIs(err, ErrGameNotFound)
}

func (s *PostgresSuite) TestListAndRecent() {
	author := uuid.New()
	easy, hard := uuid.New(), uuid.New()
	_, err := s.repo.Upsert(s.ctx, params(easy, author, "Easy", 1))
	s.Require().NoError(err)
	_, err = s.repo.Upsert(s.ctx, params(hard, author, "Hard", 3))
	s.Require().NoError(err)

	all, err := s.repo.List(s.ctx, 0, 10)
	s.Require().NoError(err)
	s.Len(all, 2)

	onlyHard, err := s.repo.List(s.ctx, 3, 10)
	s.Require().NoError(err)
	s.Require().Len(onlyHard, 1)
	s.Equal("Hard", onlyHard[0].Title)

	ids, err := s.repo.RecentIDs(s.ctx, 1)
	s.Require().NoError(err)
	s.Len(ids, 1)
}

func TestPostgresSuite(t *testing.T) {
	suite.Run(t, new(PostgresSuite))
}
