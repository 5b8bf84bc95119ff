package game

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/gokatarajesh/puzzle-platform/internal/scene"
)

// Encode serializes g as a JSON document.
func Encode(g Game) ([]byte, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("encode game %s: %w", g.ID, err)
	}
	return data, nil
}

// Decode parses a game document and checks it structurally.
func Decode(data []byte) (Game, error) {
	if !gjson.ValidBytes(data) {
		return Game{}, fmt.Errorf("%w: document is not valid JSON", ErrInvalidGame)
	}
	var g Game
	if err := json.Unmarshal(data, &g); err != nil {
		return Game{}, fmt.Errorf("%w: %v", ErrInvalidGame, err)
	}
	if g.Variables == nil {
		g.Variables = []Variable{}
	}
	if g.Scenes == nil {
		g.Scenes = []scene.Scene{}
	}
	if g.Rules == nil {
		g.Rules = []Rule{}
	}
	if err := Validate(g); err != nil {
		return Game{}, err
	}
	return g, nil
}
