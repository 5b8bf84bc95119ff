package publish

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"github.com/gokatarajesh/puzzle-platform/internal/game"
)

// Mirror copies published games to a secondary document store.
type Mirror interface {
	Put(ctx context.Context, g game.Game, authorID string, publishedAt time.Time) error
	// Remove deletes the document at path. Missing documents are not an error.
	Remove(ctx context.Context, path string) error
	Close() error
}

// FirestoreConfig selects the Firebase project for the mirror.
type FirestoreConfig struct {
	ProjectID       string
	CredentialsPath string
}

// FirestoreMirror writes games to puzzles/custom/{difficulty}/{gameId}.
type FirestoreMirror struct {
	client *firestore.Client
	logger zerolog.Logger
}

// NewFirestoreMirror returns nil, nil when no project is configured.
func NewFirestoreMirror(ctx context.Context, cfg FirestoreConfig, logger zerolog.Logger) (*FirestoreMirror, error) {
	if cfg.ProjectID == "" {
		logger.Warn().Msg("FIRESTORE_PROJECT_ID not set, firestore mirror disabled")
		return nil, nil
	}
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	logger.Info().Str("project_id", cfg.ProjectID).Msg("firestore mirror enabled")
	return &FirestoreMirror{client: client, logger: logger}, nil
}

// DocPath is the mirror location of a game.
func DocPath(g game.Game) string {
	return docPath(g.Meta.Difficulty, g.ID)
}

func docPath(d game.Difficulty, gameID string) string {
	return fmt.Sprintf("puzzles/custom/%s/%s", d.Name(), gameID)
}

func (m *FirestoreMirror) Put(ctx context.Context, g game.Game, authorID string, publishedAt time.Time) error {
	doc, err := game.Encode(g)
	if err != nil {
		return err
	}
	_, err = m.client.Doc(DocPath(g)).Set(ctx, map[string]interface{}{
		"gameId":      g.ID,
		"authorId":    authorID,
		"title":       g.Meta.Title,
		"difficulty":  int(g.Meta.Difficulty),
		"sceneCount":  len(g.Scenes),
		"document":    string(doc),
		"publishedAt": publishedAt,
	})
	if err != nil {
		return fmt.Errorf("mirror %s: %w", DocPath(g), err)
	}
	return nil
}

func (m *FirestoreMirror) Remove(ctx context.Context, path string) error {
	if _, err := m.client.Doc(path).Delete(ctx); err != nil {
		return fmt.Errorf("remove mirror %s: %w", path, err)
	}
	return nil
}

func (m *FirestoreMirror) Close() error {
	return m.client.Close()
}
