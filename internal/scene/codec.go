package scene

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrMalformed is returned when a content document cannot be decoded.
var ErrMalformed = errors.New("malformed scene content")

// MarshalContent encodes c as a flat JSON object carrying a "kind" field.
func MarshalContent(c Content) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil content", ErrMalformed)
	}
	if !Supported(c) {
		return nil, fmt.Errorf("marshal %T: %w", c, ErrUnsupportedContent)
	}
	body, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal %s content: %w", c.Kind(), err)
	}
	return sjson.SetBytes(body, "kind", string(c.Kind()))
}

// UnmarshalContent decodes a document produced by MarshalContent, picking the
// concrete type from its "kind" field.
func UnmarshalContent(data []byte) (Content, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformed)
	}
	tag := gjson.GetBytes(data, "kind")
	if !tag.Exists() {
		return nil, fmt.Errorf("%w: missing kind", ErrMalformed)
	}
	kind, err := ParseKind(tag.String())
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindMCQ:
		return decode[MCQ](data)
	case KindMCQMulti:
		return decode[MCQMulti](data)
	case KindTextInput:
		return decode[TextInput](data)
	case KindTextInputMulti:
		return decode[TextInputMulti](data)
	case KindWordGuess:
		return decode[WordGuess](data)
	case KindWordle:
		return decode[Wordle](data)
	case KindSequence:
		return decode[Sequence](data)
	case KindCategory:
		return decode[Category](data)
	case KindNumberGrid:
		return decode[NumberGrid](data)
	case KindPath:
		return decode[Path](data)
	case KindCodeBreaker:
		return decode[CodeBreaker](data)
	case KindMemory:
		return decode[Memory](data)
	case KindInfo:
		return decode[Info](data)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

func decode[T Content](data []byte) (Content, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return v, nil
}

type sceneDoc struct {
	ID      string          `json:"id"`
	Content json.RawMessage `json:"content"`
}

func (s Scene) MarshalJSON() ([]byte, error) {
	content, err := MarshalContent(s.Content)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", s.ID, err)
	}
	return json.Marshal(sceneDoc{ID: s.ID, Content: content})
}

func (s *Scene) UnmarshalJSON(data []byte) error {
	var doc sceneDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	content, err := UnmarshalContent(doc.Content)
	if err != nil {
		return fmt.Errorf("scene %s: %w", doc.ID, err)
	}
	s.ID = doc.ID
	s.Content = content
	return nil
}
