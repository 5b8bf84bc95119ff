package game

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/gokatarajesh/puzzle-platform/internal/scene"
)

// Editor errors. Every operation returns the game unchanged with the error.
var (
	ErrSceneNotFound    = errors.New("scene not found")
	ErrKindMismatch     = errors.New("content kind does not match scene")
	ErrVariableNotFound = errors.New("variable not found")
	ErrVariableInUse    = errors.New("variable referenced by a rule")
	ErrDuplicateName    = errors.New("variable name already used")
	ErrRuleNotFound     = errors.New("rule not found")
	ErrInvalidRule      = errors.New("invalid rule")
	ErrInvalidMeta      = errors.New("invalid meta")
)

// New starts an empty game.
func New(title string, difficulty Difficulty) Game {
	return Game{
		ID:        uuid.NewString(),
		Meta:      Meta{Title: title, Difficulty: difficulty},
		Variables: []Variable{},
		Scenes:    []scene.Scene{},
		Rules:     []Rule{},
	}
}

// AddScene appends a scene holding the default content for kind and returns
// its id.
func (g Game) AddScene(kind scene.Kind) (Game, string, error) {
	content, err := scene.DefaultContent(kind)
	if err != nil {
		return g, "", err
	}
	out := g.clone()
	id := uuid.NewString()
	out.Scenes = append(out.Scenes, scene.Scene{ID: id, Content: content})
	return out.withStart(), id, nil
}

// RemoveScene drops the scene with id.
func (g Game) RemoveScene(id string) (Game, error) {
	idx := g.SceneIndex(id)
	if idx < 0 {
		return g, fmt.Errorf("remove scene %q: %w", id, ErrSceneNotFound)
	}
	out := g.clone()
	out.Scenes = slices.Delete(out.Scenes, idx, idx+1)
	return out.withStart(), nil
}

// MoveScene moves the scene at position from to position to.
func (g Game) MoveScene(from, to int) (Game, error) {
	if from < 0 || from >= len(g.Scenes) || to < 0 || to >= len(g.Scenes) {
		return g, fmt.Errorf("move scene %d->%d: %w", from, to, scene.ErrOutOfRange)
	}
	out := g.clone()
	s := out.Scenes[from]
	out.Scenes = slices.Delete(out.Scenes, from, from+1)
	out.Scenes = slices.Insert(out.Scenes, to, s)
	return out.withStart(), nil
}

// UpdateContent replaces the content of scene id. The kind must not change;
// use ChangeKind for that.
func (g Game) UpdateContent(id string, content scene.Content) (Game, error) {
	idx := g.SceneIndex(id)
	if idx < 0 {
		return g, fmt.Errorf("update scene %q: %w", id, ErrSceneNotFound)
	}
	if content != nil && !scene.Supported(content) {
		return g, fmt.Errorf("update scene %q: %w: %T", id, scene.ErrUnsupportedContent, content)
	}
	if content == nil || content.Kind() != g.Scenes[idx].Content.Kind() {
		return g, fmt.Errorf("update scene %q: %w", id, ErrKindMismatch)
	}
	out := g.clone()
	out.Scenes[idx].Content = scene.Clone(content)
	return out, nil
}

// ChangeKind resets scene id to the default content of kind, keeping its id.
func (g Game) ChangeKind(id string, kind scene.Kind) (Game, error) {
	idx := g.SceneIndex(id)
	if idx < 0 {
		return g, fmt.Errorf("change kind of %q: %w", id, ErrSceneNotFound)
	}
	content, err := scene.DefaultContent(kind)
	if err != nil {
		return g, err
	}
	out := g.clone()
	out.Scenes[idx].Content = content
	return out, nil
}

// SetMeta replaces the header.
func (g Game) SetMeta(meta Meta) (Game, error) {
	if !meta.Difficulty.Valid() {
		return g, fmt.Errorf("%w: difficulty %d", ErrInvalidMeta, meta.Difficulty)
	}
	out := g.clone()
	out.Meta = meta
	return out, nil
}

// AddVariable declares a numeric variable and returns its id.
func (g Game) AddVariable(name string, initial float64) (Game, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return g, "", fmt.Errorf("add variable: %w", ErrInvalidMeta)
	}
	for _, v := range g.Variables {
		if strings.EqualFold(v.Name, name) {
			return g, "", fmt.Errorf("add variable %q: %w", name, ErrDuplicateName)
		}
	}
	out := g.clone()
	id := uuid.NewString()
	out.Variables = append(out.Variables, Variable{ID: id, Name: name, Type: VariableTypeNumber, Initial: initial})
	return out, id, nil
}

// RemoveVariable drops a variable no rule refers to.
func (g Game) RemoveVariable(id string) (Game, error) {
	idx := slices.IndexFunc(g.Variables, func(v Variable) bool { return v.ID == id })
	if idx < 0 {
		return g, fmt.Errorf("remove variable %q: %w", id, ErrVariableNotFound)
	}
	for _, r := range g.Rules {
		if r.references(id) {
			return g, fmt.Errorf("remove variable %q: %w (rule %s)", id, ErrVariableInUse, r.ID)
		}
	}
	out := g.clone()
	out.Variables = slices.Delete(out.Variables, idx, idx+1)
	return out, nil
}

// AddRule appends a rule after checking its variable references. A missing
// rule id is generated.
func (g Game) AddRule(r Rule) (Game, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	known := g.variableIDs()
	var l issueList
	checkRule(&l, "rule", r, known)
	if len(l) > 0 {
		return g, fmt.Errorf("%w: %s", ErrInvalidRule, l[0].Path+": "+l[0].Message)
	}
	out := g.clone()
	out.Rules = append(out.Rules, r.clone())
	return out, nil
}

// RemoveRule drops the rule with id.
func (g Game) RemoveRule(id string) (Game, error) {
	idx := slices.IndexFunc(g.Rules, func(r Rule) bool { return r.ID == id })
	if idx < 0 {
		return g, fmt.Errorf("remove rule %q: %w", id, ErrRuleNotFound)
	}
	out := g.clone()
	out.Rules = slices.Delete(out.Rules, idx, idx+1)
	return out, nil
}

// SetTimer enables a whole-game timer; zero seconds removes it.
func (g Game) SetTimer(seconds int) (Game, error) {
	if seconds < 0 {
		return g, fmt.Errorf("set timer %d: %w", seconds, scene.ErrOutOfRange)
	}
	out := g.clone()
	if seconds == 0 {
		out.Systems = nil
		return out, nil
	}
	out.Systems = &Systems{Timer: &Timer{Seconds: seconds}}
	return out, nil
}

// withStart re-derives StartSceneID from the scene order.
func (g Game) withStart() Game {
	g.StartSceneID = ""
	if len(g.Scenes) > 0 {
		g.StartSceneID = g.Scenes[0].ID
	}
	return g
}

func (g Game) variableIDs() map[string]bool {
	ids := make(map[string]bool, len(g.Variables))
	for _, v := range g.Variables {
		ids[v.ID] = true
	}
	return ids
}

func (g Game) clone() Game {
	out := g
	out.Variables = slices.Clone(g.Variables)
	out.Scenes = make([]scene.Scene, len(g.Scenes))
	for i, s := range g.Scenes {
		out.Scenes[i] = scene.Scene{ID: s.ID, Content: scene.Clone(s.Content)}
	}
	out.Rules = make([]Rule, len(g.Rules))
	for i, r := range g.Rules {
		out.Rules[i] = r.clone()
	}
	if g.Systems != nil {
		sys := Systems{}
		if g.Systems.Timer != nil {
			t := *g.Systems.Timer
			sys.Timer = &t
		}
		out.Systems = &sys
	}
	return out
}

func (r Rule) clone() Rule {
	r.If = slices.Clone(r.If)
	r.Then = slices.Clone(r.Then)
	return r
}

func (r Rule) references(variableID string) bool {
	for _, c := range r.If {
		if c.VariableID == variableID {
			return true
		}
	}
	for _, e := range r.Then {
		if e.VariableID == variableID {
			return true
		}
	}
	return false
}
