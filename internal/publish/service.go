package publish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/puzzle-platform/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/puzzle-platform/internal/db/sqlc"
	"github.com/gokatarajesh/puzzle-platform/internal/game"
	"github.com/gokatarajesh/puzzle-platform/internal/scene"
	"github.com/gokatarajesh/puzzle-platform/internal/wordcheck"
)

var (
	ErrNotFound = errors.New("game not found")
	ErrNotOwner = errors.New("game belongs to another author")
)

var (
	gamesPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "puzzle_games_published_total",
		Help: "Games published, by difficulty.",
	}, []string{"difficulty"})
	publishRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "puzzle_games_rejected_total",
		Help: "Publish attempts rejected by validation or word checks.",
	})
	publishDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "puzzle_publish_duration_seconds",
		Help:    "Time spent publishing a game.",
		Buckets: prometheus.DefBuckets,
	})
	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "puzzle_game_cache_lookups_total",
		Help: "Published game cache lookups by result.",
	}, []string{"result"})
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type gameRepo interface {
	Upsert(ctx context.Context, params sqlcgen.UpsertCustomGameParams) (sqlcgen.CustomGame, error)
	Get(ctx context.Context, gameID uuid.UUID) (sqlcgen.CustomGame, error)
	List(ctx context.Context, difficulty int16, limit int32) ([]sqlcgen.ListCustomGamesRow, error)
	RecentIDs(ctx context.Context, limit int32) ([]uuid.UUID, error)
}

// Summary is the listing view of a published game.
type Summary struct {
	GameID      string    `json:"gameId"`
	AuthorID    string    `json:"authorId"`
	Title       string    `json:"title"`
	Difficulty  int       `json:"difficulty"`
	SceneCount  int       `json:"sceneCount"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Service publishes games and serves them back to players.
type Service struct {
	repo   gameRepo
	cache  GameCache
	mirror Mirror
	words  *wordcheck.Checker
	logger zerolog.Logger
}

// Options carries the optional collaborators. Nil fields are skipped.
type Options struct {
	Cache  GameCache
	Mirror Mirror
	Words  *wordcheck.Checker
}

func NewService(repo gameRepo, opts Options, logger zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  opts.Cache,
		mirror: opts.Mirror,
		words:  opts.Words,
		logger: logger.With().Str("component", "publish").Logger(),
	}
}

// Publish checks g for completeness and word rules, then stores it. A game
// id already published by the same author is replaced.
func (s *Service) Publish(ctx context.Context, authorID uuid.UUID, g game.Game) (*Summary, error) {
	start := time.Now()
	defer func() { publishDuration.Observe(time.Since(start).Seconds()) }()

	if err := s.Check(g); err != nil {
		publishRejected.Inc()
		return nil, err
	}
	gameID, err := uuid.Parse(g.ID)
	if err != nil {
		publishRejected.Inc()
		return nil, &game.ValidationError{Issues: []game.Issue{{Path: "id", Message: "must be a UUID"}}}
	}

	doc, err := game.Encode(g)
	if err != nil {
		return nil, err
	}
	previous := s.previousDifficulty(ctx, gameID)
	row, err := s.repo.Upsert(ctx, sqlcgen.UpsertCustomGameParams{
		GameID:     pgtype.UUID{Bytes: gameID, Valid: true},
		AuthorID:   pgtype.UUID{Bytes: authorID, Valid: true},
		Title:      g.Meta.Title,
		Difficulty: int16(g.Meta.Difficulty),
		SceneCount: int32(len(g.Scenes)),
		Document:   doc,
	})
	if errors.Is(err, repository.ErrNotOwner) {
		return nil, ErrNotOwner
	}
	if err != nil {
		return nil, fmt.Errorf("store game: %w", err)
	}
	sum := summaryFromRow(row.GameID.Bytes, row.AuthorID.Bytes, row.Title, row.Difficulty, row.SceneCount, row.PublishedAt.Time)

	if s.cache != nil {
		if err := s.cache.Set(ctx, g); err != nil {
			s.logger.Warn().Err(err).Str("game_id", g.ID).Msg("cache published game")
		}
	}
	if s.mirror != nil {
		if err := s.mirror.Put(ctx, g, authorID.String(), sum.PublishedAt); err != nil {
			s.logger.Error().Err(err).Str("game_id", g.ID).Msg("mirror published game")
		}
		// A difficulty change moves the document to another bucket.
		if previous.Valid() && previous != g.Meta.Difficulty {
			if err := s.mirror.Remove(ctx, docPath(previous, g.ID)); err != nil {
				s.logger.Error().Err(err).Str("game_id", g.ID).Msg("remove stale mirror copy")
			}
		}
	}

	gamesPublished.WithLabelValues(g.Meta.Difficulty.Name()).Inc()
	s.logger.Info().
		Str("game_id", g.ID).
		Str("author_id", authorID.String()).
		Int("scenes", len(g.Scenes)).
		Msg("game published")
	return &sum, nil
}

// previousDifficulty returns the stored difficulty of gameID, or zero when it
// was never published or no mirror needs to know.
func (s *Service) previousDifficulty(ctx context.Context, gameID uuid.UUID) game.Difficulty {
	if s.mirror == nil {
		return 0
	}
	row, err := s.repo.Get(ctx, gameID)
	if err != nil {
		if !errors.Is(err, repository.ErrGameNotFound) {
			s.logger.Warn().Err(err).Str("game_id", gameID.String()).Msg("look up previous publish")
		}
		return 0
	}
	return game.Difficulty(row.Difficulty)
}

// Check runs the publish checks without storing anything.
func (s *Service) Check(g game.Game) error {
	var issues []game.Issue
	if err := game.CheckPublishable(g); err != nil {
		var verr *game.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		issues = append(issues, verr.Issues...)
	}
	issues = append(issues, s.wordIssues(g)...)
	if len(issues) > 0 {
		return &game.ValidationError{Issues: issues}
	}
	return nil
}

func (s *Service) wordIssues(g game.Game) []game.Issue {
	if s.words == nil {
		return nil
	}
	var issues []game.Issue
	if s.words.ContainsProfanity(g.Meta.Title) {
		issues = append(issues, game.Issue{Path: "meta.title", Message: "contains a blocked word"})
	}
	if s.words.ContainsProfanity(g.Meta.Description) {
		issues = append(issues, game.Issue{Path: "meta.description", Message: "contains a blocked word"})
	}
	for i, sc := range g.Scenes {
		var word string
		switch v := sc.Content.(type) {
		case scene.WordGuess:
			word = v.Word
		case scene.Wordle:
			word = v.Word
		default:
			continue
		}
		if word == "" {
			continue
		}
		if err := s.words.CheckWord(word); err != nil {
			issues = append(issues, game.Issue{Path: fmt.Sprintf("scenes[%d].content.word", i), Message: err.Error()})
		}
	}
	return issues
}

// Get loads a published game, reading through the cache.
func (s *Service) Get(ctx context.Context, id string) (*game.Game, error) {
	gameID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
			cacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		} else if err != nil {
			s.logger.Warn().Err(err).Str("game_id", id).Msg("read game cache")
		}
		cacheLookups.WithLabelValues("miss").Inc()
	}

	row, err := s.repo.Get(ctx, gameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}
	g, err := game.Decode(row.Document)
	if err != nil {
		return nil, fmt.Errorf("decode stored game %s: %w", id, err)
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, g)
	}
	return &g, nil
}

// List returns published games, newest first. difficulty 0 means any.
func (s *Service) List(ctx context.Context, difficulty game.Difficulty, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)
	rows, err := s.repo.List(ctx, int16(difficulty), int32(limit))
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	out := make([]Summary, 0, len(rows))
	for _, r := range rows {
		out = append(out, summaryFromRow(r.GameID.Bytes, r.AuthorID.Bytes, r.Title, r.Difficulty, r.SceneCount, r.PublishedAt.Time))
	}
	return out, nil
}

// RecentIDs lists the newest published game ids.
func (s *Service) RecentIDs(ctx context.Context, limit int) ([]string, error) {
	ids, err := s.repo.RecentIDs(ctx, int32(min(limit, MaxListLimit)))
	if err != nil {
		return nil, err
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out, nil
}

func summaryFromRow(gameID, authorID [16]byte, title string, difficulty int16, scenes int32, at time.Time) Summary {
	return Summary{
		GameID:      uuid.UUID(gameID).String(),
		AuthorID:    uuid.UUID(authorID).String(),
		Title:       title,
		Difficulty:  int(difficulty),
		SceneCount:  int(scenes),
		PublishedAt: at,
	}
}
