package scene

import (
	"fmt"
	"strings"
)

// Preview returns a one-line summary of content for list display. It never
// returns an empty string.
func Preview(c Content) string {
	switch v := c.(type) {
	case MCQ:
		return textOr(v.Question, "(no question)")
	case MCQMulti:
		if len(v.Questions) > 0 && strings.TrimSpace(v.Questions[0].Question) != "" {
			return fmt.Sprintf("%s (%s)", strings.TrimSpace(v.Questions[0].Question), plural(len(v.Questions), "question"))
		}
		return plural(len(v.Questions), "question")
	case TextInput:
		return textOr(v.Prompt, "(no prompt)")
	case TextInputMulti:
		return plural(len(v.Rounds), "round")
	case WordGuess:
		if w := strings.TrimSpace(v.Word); w != "" {
			return "word: " + w
		}
		return "(no word)"
	case Wordle:
		if w := strings.TrimSpace(v.Word); w != "" {
			return "word: " + w
		}
		return "(no word)"
	case Sequence:
		return textOr(v.Prompt, plural(len(v.Items), "item"))
	case Category:
		return fmt.Sprintf("%s, %s", plural(len(v.Groups), "group"), plural(len(v.Items), "item"))
	case NumberGrid:
		return fmt.Sprintf("%d×%d %s grid", v.Size, v.Size, textOr(v.GridType, GridFree))
	case Path:
		return fmt.Sprintf("%d×%d path", v.Rows, v.Cols)
	case CodeBreaker:
		return fmt.Sprintf("%d-color code, %s", len(v.SecretCode), plural(len(v.Options), "option"))
	case Memory:
		return plural(len(v.Pairs)/2, "pair")
	case Info:
		if t := strings.TrimSpace(v.Title); t != "" {
			return t
		}
		return textOr(v.Text, "(empty info)")
	case nil:
		return "(empty scene)"
	}
	return "(unsupported scene)"
}

func textOr(s, fallback string) string {
	if t := strings.TrimSpace(s); t != "" {
		return t
	}
	return fallback
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
