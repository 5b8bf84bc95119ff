package wordcheck

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

var (
	ErrNotLetters   = errors.New("word must contain letters only")
	ErrProfane      = errors.New("word is not allowed")
	ErrNotInLexicon = errors.New("word is not in the dictionary")
)

type listFile struct {
	Version    int      `yaml:"version"`
	Profanity  []string `yaml:"profanity"`
	Dictionary []string `yaml:"dictionary"`
}

// Checker holds the loaded word lists. The zero value accepts every
// alphabetic word.
type Checker struct {
	profane    map[string]struct{}
	dictionary map[string]struct{}
}

// Load reads a word list file.
func Load(path string) (*Checker, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word lists: %w", err)
	}
	return Parse(b)
}

// Parse builds a Checker from YAML.
func Parse(b []byte) (*Checker, error) {
	var f listFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse word lists: %w", err)
	}
	if f.Version != 1 {
		return nil, fmt.Errorf("unsupported word list version: %d", f.Version)
	}
	return New(f.Profanity, f.Dictionary), nil
}

// New builds a Checker from in-memory lists.
func New(profanity, dictionary []string) *Checker {
	return &Checker{profane: toSet(profanity), dictionary: toSet(dictionary)}
}

// CheckWord accepts a single alphabetic word that is not profane and, when a
// dictionary is loaded, appears in it.
func (c *Checker) CheckWord(word string) error {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return ErrNotLetters
	}
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("%q: %w", word, ErrNotLetters)
		}
	}
	if c == nil {
		return nil
	}
	if _, bad := c.profane[w]; bad {
		return ErrProfane
	}
	if len(c.dictionary) > 0 {
		if _, ok := c.dictionary[w]; !ok {
			return fmt.Errorf("%q: %w", word, ErrNotInLexicon)
		}
	}
	return nil
}

// ContainsProfanity reports whether any word of text is on the profanity list.
func (c *Checker) ContainsProfanity(text string) bool {
	if c == nil || len(c.profane) == 0 {
		return false
	}
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, w := range words {
		if _, bad := c.profane[w]; bad {
			return true
		}
	}
	return false
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}
