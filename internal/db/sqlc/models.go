package sqlcgen

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type CustomGame struct {
	GameID      pgtype.UUID        `json:"game_id"`
	AuthorID    pgtype.UUID        `json:"author_id"`
	Title       string             `json:"title"`
	Difficulty  int16              `json:"difficulty"`
	SceneCount  int32              `json:"scene_count"`
	Document    []byte             `json:"document"`
	PublishedAt pgtype.Timestamptz `json:"published_at"`
}
