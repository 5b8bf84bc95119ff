package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gokatarajesh/puzzle-platform/internal/scene"
)

// ErrInvalidGame matches every *ValidationError via errors.Is.
var ErrInvalidGame = errors.New("invalid game")

// Issue locates a problem by JSON path, e.g. "scenes[2].content.choices".
type Issue struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError collects every issue found in a game.
type ValidationError struct {
	Issues []Issue `json:"issues"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Path+": "+is.Message)
	}
	return "invalid game: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidGame
}

type issueList []Issue

func (l *issueList) add(path, format string, args ...any) {
	*l = append(*l, Issue{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (l issueList) err() error {
	if len(l) == 0 {
		return nil
	}
	return &ValidationError{Issues: l}
}

// Validate checks structural integrity: unique ids, start scene, variable
// references and every scene's content.
func Validate(g Game) error {
	l := structural(g)
	for i, s := range g.Scenes {
		contentIssues(&l, i, scene.Validate(s.Content))
	}
	return l.err()
}

// CheckPublishable applies Validate plus the completeness checks a game must
// pass before it is shared.
func CheckPublishable(g Game) error {
	l := structural(g)
	if strings.TrimSpace(g.Meta.Title) == "" {
		l.add("meta.title", "title is required")
	}
	if len(g.Scenes) == 0 {
		l.add("scenes", "at least one scene is required")
	}
	scored := false
	for i, s := range g.Scenes {
		contentIssues(&l, i, scene.CheckPublishable(s.Content))
		if scene.Supported(s.Content) && s.Content.Kind() != scene.KindInfo {
			scored = true
		}
	}
	if len(g.Scenes) > 0 && !scored {
		l.add("scenes", "at least one playable scene is required")
	}
	return l.err()
}

func structural(g Game) issueList {
	var l issueList
	if !g.Meta.Difficulty.Valid() {
		l.add("meta.difficulty", "must be 1, 2 or 3")
	}

	sceneIDs := map[string]bool{}
	for i, s := range g.Scenes {
		path := fmt.Sprintf("scenes[%d]", i)
		switch {
		case s.ID == "":
			l.add(path+".id", "id is required")
		case sceneIDs[s.ID]:
			l.add(path+".id", "duplicate scene id %q", s.ID)
		}
		sceneIDs[s.ID] = true
		if s.Content == nil {
			l.add(path+".content", "content is required")
		}
	}
	switch {
	case len(g.Scenes) == 0 && g.StartSceneID != "":
		l.add("startSceneId", "must be empty when there are no scenes")
	case len(g.Scenes) > 0 && g.StartSceneID != g.Scenes[0].ID:
		l.add("startSceneId", "must be the first scene")
	}

	known := map[string]bool{}
	names := map[string]bool{}
	for i, v := range g.Variables {
		path := fmt.Sprintf("variables[%d]", i)
		if v.ID == "" || known[v.ID] {
			l.add(path+".id", "id must be unique and non-empty")
		}
		known[v.ID] = true
		key := strings.ToLower(strings.TrimSpace(v.Name))
		if key == "" || names[key] {
			l.add(path+".name", "name must be unique and non-empty")
		}
		names[key] = true
		if v.Type != VariableTypeNumber {
			l.add(path+".type", "unsupported type %q", v.Type)
		}
	}

	ruleIDs := map[string]bool{}
	for i, r := range g.Rules {
		path := fmt.Sprintf("rules[%d]", i)
		if r.ID == "" || ruleIDs[r.ID] {
			l.add(path+".id", "id must be unique and non-empty")
		}
		ruleIDs[r.ID] = true
		checkRule(&l, path, r, known)
	}

	if g.Systems != nil && g.Systems.Timer != nil && g.Systems.Timer.Seconds <= 0 {
		l.add("systems.timer.seconds", "must be positive")
	}
	return l
}

func checkRule(l *issueList, path string, r Rule, known map[string]bool) {
	if r.On != TriggerCorrect && r.On != TriggerWrong {
		l.add(path+".on", "unknown trigger %q", r.On)
	}
	if len(r.Then) == 0 {
		l.add(path+".then", "at least one effect is required")
	}
	for i, c := range r.If {
		cp := fmt.Sprintf("%s.if[%d]", path, i)
		if !known[c.VariableID] {
			l.add(cp+".variableId", "unknown variable %q", c.VariableID)
		}
		if !c.Op.valid() {
			l.add(cp+".op", "unknown operator %q", c.Op)
		}
	}
	for i, e := range r.Then {
		ep := fmt.Sprintf("%s.then[%d]", path, i)
		switch e.Type {
		case EffectIncVar, EffectDecVar:
			if !known[e.VariableID] {
				l.add(ep+".variableId", "unknown variable %q", e.VariableID)
			}
		case EffectLose:
		default:
			l.add(ep+".type", "unknown effect %q", e.Type)
		}
	}
}

func contentIssues(l *issueList, index int, err error) {
	if err == nil {
		return
	}
	path := fmt.Sprintf("scenes[%d].content", index)
	var verr *scene.ValidationError
	if !errors.As(err, &verr) {
		l.add(path, "%v", err)
		return
	}
	for _, is := range verr.Issues {
		p := path
		if is.Field != "" {
			p += "." + is.Field
		}
		*l = append(*l, Issue{Path: p, Message: is.Message})
	}
}
