package play

import (
	"errors"
	"time"

	"github.com/gokatarajesh/puzzle-platform/internal/scene"
)

// Status is the lifecycle state of a play session.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusLost      Status = "lost"
	StatusTimeout   Status = "timeout"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionOver     = errors.New("session is over")
	ErrNotYourSession  = errors.New("session belongs to another player")
	ErrLocked          = errors.New("session is busy")
)

// Step records one answered scene.
type Step struct {
	SceneID string       `json:"sceneId"`
	Kind    scene.Kind   `json:"kind"`
	Result  scene.Result `json:"result"`
	Fired   []string     `json:"fired,omitempty"`
	At      time.Time    `json:"at"`
}

// Session is a single player's run through a published game.
type Session struct {
	ID         string             `json:"id"`
	GameID     string             `json:"gameId"`
	PlayerID   string             `json:"playerId"`
	SceneIndex int                `json:"sceneIndex"`
	Vars       map[string]float64 `json:"vars"`
	Points     int                `json:"points"`
	MaxPoints  int                `json:"maxPoints"`
	Status     Status             `json:"status"`
	StartedAt  time.Time          `json:"startedAt"`
	Deadline   *time.Time         `json:"deadline,omitempty"`
	EndedAt    *time.Time         `json:"endedAt,omitempty"`
	History    []Step             `json:"history"`
}

// Over reports whether the session accepts no further answers.
func (s Session) Over() bool {
	return s.Status != StatusActive
}

func (s *Session) end(status Status, at time.Time) {
	s.Status = status
	s.EndedAt = &at
}
