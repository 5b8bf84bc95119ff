package game

import (
	"github.com/gokatarajesh/puzzle-platform/internal/scene"
)

// Difficulty is the author-declared difficulty of a game (1..3).
type Difficulty int

const (
	DifficultyEasy   Difficulty = 1
	DifficultyMedium Difficulty = 2
	DifficultyHard   Difficulty = 3
)

// Name maps a difficulty to the storage bucket name.
func (d Difficulty) Name() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	}
	return "unknown"
}

// Valid reports whether d is 1, 2 or 3.
func (d Difficulty) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

// Meta is the descriptive header of a game.
type Meta struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Difficulty  Difficulty `json:"difficulty"`
}

// VariableTypeNumber is the only supported variable type.
const VariableTypeNumber = "number"

// Variable declares a piece of numeric game state such as score or lives.
type Variable struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Type    string  `json:"type"`
	Initial float64 `json:"initial"`
}

// Trigger selects which answer outcome a rule reacts to.
type Trigger string

const (
	TriggerCorrect Trigger = "CORRECT"
	TriggerWrong   Trigger = "WRONG"
)

// Op is a comparison operator used in rule conditions.
type Op string

const (
	OpEq  Op = "=="
	OpNeq Op = "!="
	OpLt  Op = "<"
	OpLte Op = "<="
	OpGt  Op = ">"
	OpGte Op = ">="
)

// Condition compares a variable against a constant.
type Condition struct {
	VariableID string  `json:"variableId"`
	Op         Op      `json:"op"`
	Value      float64 `json:"value"`
}

// EffectType is what a rule does once it fires.
type EffectType string

const (
	EffectIncVar EffectType = "INC_VAR"
	EffectDecVar EffectType = "DEC_VAR"
	EffectLose   EffectType = "LOSE"
)

// Effect mutates a variable or ends the game.
type Effect struct {
	Type       EffectType `json:"type"`
	VariableID string     `json:"variableId,omitempty"`
	Amount     float64    `json:"amount,omitempty"`
}

// Rule fires its effects when On matches and every condition holds.
type Rule struct {
	ID   string      `json:"id"`
	On   Trigger     `json:"on"`
	If   []Condition `json:"if,omitempty"`
	Then []Effect    `json:"then"`
}

// Timer limits a whole play-through.
type Timer struct {
	Seconds int `json:"seconds"`
}

// Systems holds optional game-wide mechanics.
type Systems struct {
	Timer *Timer `json:"timer,omitempty"`
}

// Game is the aggregate root of a custom puzzle game.
type Game struct {
	ID           string        `json:"id"`
	Meta         Meta          `json:"meta"`
	Variables    []Variable    `json:"variables"`
	Scenes       []scene.Scene `json:"scenes"`
	Rules        []Rule        `json:"rules"`
	StartSceneID string        `json:"startSceneId"`
	Systems      *Systems      `json:"systems,omitempty"`
}

// SceneIndex returns the position of the scene with id, or -1.
func (g Game) SceneIndex(id string) int {
	for i, s := range g.Scenes {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// TimerSeconds returns the configured timer, or 0 when there is none.
func (g Game) TimerSeconds() int {
	if g.Systems == nil || g.Systems.Timer == nil {
		return 0
	}
	return g.Systems.Timer.Seconds
}
