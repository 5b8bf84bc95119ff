package scene

// Content is the kind-specific payload of a scene. The set of implementations
// is closed to this package; the kind tag is derived from the concrete type so
// a value can never carry a tag that disagrees with its fields.
type Content interface {
	Kind() Kind
	sealed()
}

// Scene is one stage of a custom game. ID is stable across reorders and edits.
type Scene struct {
	ID      string  `json:"id"`
	Content Content `json:"content"`
}

// Choice is a selectable answer option.
type Choice struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// MCQ is a single multiple-choice question.
type MCQ struct {
	Question  string   `json:"question"`
	Choices   []Choice `json:"choices"`
	CorrectID string   `json:"correctId"`
	Hint      string   `json:"hint,omitempty"`
}

// MultiQuestion is one question inside an MCQMulti quiz.
type MultiQuestion struct {
	ID        string   `json:"id"`
	Question  string   `json:"question"`
	Choices   []Choice `json:"choices"`
	CorrectID string   `json:"correctId"`
}

// MCQMulti is a quiz of several multiple-choice questions.
type MCQMulti struct {
	Questions        []MultiQuestion `json:"questions"`
	PointsPerCorrect int             `json:"pointsPerCorrect"`
}

// TextInput asks for a single free-text answer.
type TextInput struct {
	Prompt        string `json:"prompt"`
	Answer        string `json:"answer"`
	CaseSensitive bool   `json:"caseSensitive"`
	Hint          string `json:"hint,omitempty"`
}

// TextRound is one prompt/answer pair of a TextInputMulti.
type TextRound struct {
	ID     string `json:"id"`
	Prompt string `json:"prompt"`
	Answer string `json:"answer"`
}

// TextInputMulti runs several free-text rounds.
type TextInputMulti struct {
	Rounds           []TextRound `json:"rounds"`
	CaseSensitive    bool        `json:"caseSensitive"`
	PointsPerCorrect int         `json:"pointsPerCorrect"`
}

// WordGuess is a hangman-style letter guessing puzzle.
type WordGuess struct {
	Word            string `json:"word"`
	Hint            string `json:"hint,omitempty"`
	MaxWrongGuesses int    `json:"maxWrongGuesses"`
}

// Wordle is a fixed-length word guessing puzzle with positional feedback.
type Wordle struct {
	Word        string `json:"word"`
	WordLength  int    `json:"wordLength"`
	MaxAttempts int    `json:"maxAttempts"`
}

// SequenceItem is one entry to be put in order.
type SequenceItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Sequence asks the player to order items. Solution[k] is the index into
// Items of the item that belongs at position k.
type Sequence struct {
	Prompt   string         `json:"prompt"`
	Items    []SequenceItem `json:"items"`
	Solution []int          `json:"solution"`
}

// CategoryGroup is a bucket items get sorted into.
type CategoryGroup struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// CategoryItem belongs to exactly one group.
type CategoryItem struct {
	ID      string `json:"id"`
	Label   string `json:"label"`
	GroupID string `json:"groupId"`
}

// Category is a sort-into-groups puzzle.
type Category struct {
	Prompt string          `json:"prompt"`
	Groups []CategoryGroup `json:"groups"`
	Items  []CategoryItem  `json:"items"`
}

// Grid types for NumberGrid.
const (
	GridFree  = "free"
	GridMagic = "magic"
	GridLatin = "latin"
)

// NumberGrid is a size x size grid of numbers. Givens are the cell indices
// revealed to the player.
type NumberGrid struct {
	Prompt   string `json:"prompt"`
	Size     int    `json:"size"`
	GridType string `json:"gridType"`
	Solution []int  `json:"solution"`
	Givens   []int  `json:"givens"`
}

// Path is a grid the player traces a single path through. Cells holds 0 for a
// blank cell and k for checkpoint k; Solution is the reference path as cell
// indices.
type Path struct {
	Prompt   string `json:"prompt"`
	Rows     int    `json:"rows"`
	Cols     int    `json:"cols"`
	Cells    []int  `json:"cells"`
	Solution []int  `json:"solution"`
}

// CodeBreaker is a Mastermind-style color code puzzle.
type CodeBreaker struct {
	Prompt     string   `json:"prompt"`
	Options    []string `json:"options"`
	SecretCode []string `json:"secretCode"`
	MaxGuesses int      `json:"maxGuesses"`
}

// MemoryCard is one face-down card. Two cards form a pair when each MatchID
// names the other.
type MemoryCard struct {
	ID      string `json:"id"`
	Value   string `json:"value"`
	MatchID string `json:"matchId"`
}

// Memory is a pair-matching puzzle.
type Memory struct {
	Prompt string       `json:"prompt"`
	Pairs  []MemoryCard `json:"pairs"`
	Cols   int          `json:"cols"`
}

// Info is a non-interactive card.
type Info struct {
	Title         string `json:"title,omitempty"`
	Text          string `json:"text"`
	ContinueLabel string `json:"continueLabel"`
}

// Supported reports whether c is one of the kind structs held by value.
// Pointers to them satisfy Content too but are never valid scene content.
func Supported(c Content) bool {
	switch c.(type) {
	case MCQ, MCQMulti, TextInput, TextInputMulti, WordGuess, Wordle, Sequence,
		Category, NumberGrid, Path, CodeBreaker, Memory, Info:
		return true
	}
	return false
}

func (MCQ) Kind() Kind            { return KindMCQ }
func (MCQMulti) Kind() Kind       { return KindMCQMulti }
func (TextInput) Kind() Kind      { return KindTextInput }
func (TextInputMulti) Kind() Kind { return KindTextInputMulti }
func (WordGuess) Kind() Kind      { return KindWordGuess }
func (Wordle) Kind() Kind         { return KindWordle }
func (Sequence) Kind() Kind       { return KindSequence }
func (Category) Kind() Kind       { return KindCategory }
func (NumberGrid) Kind() Kind     { return KindNumberGrid }
func (Path) Kind() Kind           { return KindPath }
func (CodeBreaker) Kind() Kind    { return KindCodeBreaker }
func (Memory) Kind() Kind         { return KindMemory }
func (Info) Kind() Kind           { return KindInfo }

func (MCQ) sealed()            {}
func (MCQMulti) sealed()       {}
func (TextInput) sealed()      {}
func (TextInputMulti) sealed() {}
func (WordGuess) sealed()      {}
func (Wordle) sealed()         {}
func (Sequence) sealed()       {}
func (Category) sealed()       {}
func (NumberGrid) sealed()     {}
func (Path) sealed()           {}
func (CodeBreaker) sealed()    {}
func (Memory) sealed()         {}
func (Info) sealed()           {}
