package play

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/puzzle-platform/internal/game"
	"github.com/gokatarajesh/puzzle-platform/internal/scene"
)

var (
	sessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "puzzle_sessions_started_total",
		Help: "Play sessions started.",
	})
	sessionsEnded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "puzzle_sessions_ended_total",
		Help: "Play sessions finished, by final status.",
	}, []string{"status"})
	answersGraded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "puzzle_answers_total",
		Help: "Graded answers by scene kind and correctness.",
	}, []string{"kind", "correct"})
)

// GameSource loads published games.
type GameSource interface {
	Get(ctx context.Context, id string) (*game.Game, error)
}

// Recorder is told about every session that ends.
type Recorder interface {
	RecordSession(ctx context.Context, sess Session) error
}

// Service runs play sessions against published games.
type Service struct {
	games    GameSource
	store    Store
	recorder Recorder
	now      func() time.Time
	logger   zerolog.Logger
}

func NewService(games GameSource, store Store, logger zerolog.Logger) *Service {
	return &Service{
		games:  games,
		store:  store,
		now:    time.Now,
		logger: logger.With().Str("component", "play").Logger(),
	}
}

// WithRecorder sets the hook run after a session ends. Recorder failures are
// logged and never fail the answer.
func (s *Service) WithRecorder(r Recorder) *Service {
	s.recorder = r
	return s
}

// Start opens a session positioned at the game's start scene.
func (s *Service) Start(ctx context.Context, gameID, playerID string) (*Session, error) {
	g, err := s.games.Get(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}
	if len(g.Scenes) == 0 {
		return nil, fmt.Errorf("game %s has no scenes: %w", gameID, ErrSessionOver)
	}

	now := s.now().UTC()
	sess := Session{
		ID:        uuid.NewString(),
		GameID:    g.ID,
		PlayerID:  playerID,
		Vars:      game.InitialVars(g.Variables),
		Status:    StatusActive,
		StartedAt: now,
		History:   []Step{},
	}
	if secs := g.TimerSeconds(); secs > 0 {
		deadline := now.Add(time.Duration(secs) * time.Second)
		sess.Deadline = &deadline
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	sessionsStarted.Inc()
	s.logger.Info().Str("session_id", sess.ID).Str("game_id", g.ID).Msg("session started")
	return &sess, nil
}

// Get returns a session by id.
func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.store.Load(ctx, id)
}

// Answer grades the current scene and advances the session. Scored results
// fire the game's CORRECT or WRONG rules. An answer after the deadline ends
// the session with StatusTimeout and returns ErrSessionOver.
func (s *Service) Answer(ctx context.Context, sessionID, playerID string, answer scene.Answer) (*Session, error) {
	unlock, err := s.store.Lock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := unlock(); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sessionID).Msg("release session lock")
		}
	}()

	sess, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.PlayerID != playerID {
		return nil, ErrNotYourSession
	}
	if sess.Over() {
		return sess, ErrSessionOver
	}

	now := s.now().UTC()
	if sess.Deadline != nil && now.After(*sess.Deadline) {
		sess.end(StatusTimeout, now)
		if err := s.finish(ctx, sess); err != nil {
			return nil, err
		}
		return sess, ErrSessionOver
	}

	g, err := s.games.Get(ctx, sess.GameID)
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}
	if sess.SceneIndex >= len(g.Scenes) {
		sess.end(StatusCompleted, now)
		if err := s.finish(ctx, sess); err != nil {
			return nil, err
		}
		return sess, ErrSessionOver
	}

	current := g.Scenes[sess.SceneIndex]
	res, err := scene.Grade(current.Content, answer)
	if err != nil {
		return nil, fmt.Errorf("grade scene %s: %w", current.ID, err)
	}

	step := Step{SceneID: current.ID, Kind: current.Content.Kind(), Result: res, At: now}
	if res.Scored {
		sess.Points += res.Points
		sess.MaxPoints += res.Max
		trigger := game.TriggerWrong
		if res.Correct {
			trigger = game.TriggerCorrect
		}
		answersGraded.WithLabelValues(string(step.Kind), fmt.Sprint(res.Correct)).Inc()
		out := game.Evaluate(g.Rules, trigger, sess.Vars)
		sess.Vars = out.Vars
		step.Fired = out.Fired
		if out.Lost {
			sess.History = append(sess.History, step)
			sess.end(StatusLost, now)
			return sess, s.finish(ctx, sess)
		}
	}
	sess.History = append(sess.History, step)
	sess.SceneIndex++
	if sess.SceneIndex >= len(g.Scenes) {
		sess.end(StatusCompleted, now)
		return sess, s.finish(ctx, sess)
	}

	if err := s.store.Save(ctx, *sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

func (s *Service) finish(ctx context.Context, sess *Session) error {
	if err := s.store.Save(ctx, *sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	sessionsEnded.WithLabelValues(string(sess.Status)).Inc()
	if s.recorder != nil {
		if err := s.recorder.RecordSession(ctx, *sess); err != nil {
			s.logger.Warn().Err(err).Str("session_id", sess.ID).Msg("record session result")
		}
	}
	s.logger.Info().
		Str("session_id", sess.ID).
		Str("status", string(sess.Status)).
		Int("points", sess.Points).
		Msg("session ended")
	return nil
}
