// Package bank holds the static question and tasting-sample banks.
// Entries are immutable once loaded; sessions work on copies.
package bank

import (
	"embed"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

//go:embed data/questions.json data/samples.json
var dataFS embed.FS

// QuestionType distinguishes the three answer shapes in the bank.
type QuestionType string

const (
	TypeSingle   QuestionType = "single"
	TypeMultiple QuestionType = "multiple"
	TypeBoolean  QuestionType = "boolean"
)

// TypeOrder returns the fixed presentation precedence for a question type:
// boolean questions come first in a session, then single, then multiple.
func TypeOrder(t QuestionType) int {
	switch t {
	case TypeBoolean:
		return 0
	case TypeSingle:
		return 1
	case TypeMultiple:
		return 2
	}
	return 3
}

// Answer is a question's canonical answer: one option text for single and
// boolean questions, a set of option texts for multiple-choice questions.
type Answer struct {
	Single string
	Multi  []string
}

// UnmarshalJSON accepts either a JSON string or a JSON array of strings.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Single = s
		a.Multi = nil
		return nil
	}
	var m []string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("answer must be a string or an array of strings")
	}
	a.Single = ""
	a.Multi = m
	return nil
}

// MarshalJSON emits the array form when the answer is a set.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multi != nil {
		return json.Marshal(a.Multi)
	}
	return json.Marshal(a.Single)
}

// Text renders the answer for display: set answers joined with ", ".
func (a Answer) Text() string {
	if a.Multi != nil {
		return strings.Join(a.Multi, ", ")
	}
	return a.Single
}

// Question is one entry of the question bank.
type Question struct {
	Text    string       `json:"question"`
	Type    QuestionType `json:"type"`
	Options []string     `json:"options"`
	Answer  Answer       `json:"answer"`
}

// Fingerprint returns the stable statistics key for this question. It must
// be computed from the canonical bank entry, never from a session copy with
// shuffled options.
func (q Question) Fingerprint() string {
	return Fingerprint(q.Text, q.Options)
}

// Fingerprint derives the statistics key from a question text and its
// canonical option list. Two questions sharing both collide; that is a
// data-quality concern for the bank, not a correctness bug here.
func Fingerprint(text string, options []string) string {
	return text + "||" + strings.Join(options, "|")
}

// Sample is one entry of the blind-tasting bank. Equipment and Agents are
// comma-joined token lists, split and trimmed at comparison time.
type Sample struct {
	Name      string  `json:"name"`
	Aroma     string  `json:"aroma"`
	ABV       float64 `json:"abv"`
	Score     float64 `json:"score"`
	Equipment string  `json:"equipment"`
	Agents    string  `json:"agents"`
}

// Key returns the stable statistics key used to bias sample ordering.
func (s Sample) Key() string {
	return s.Name + "||" + s.Aroma + "||" + FormatNumber(s.ABV)
}

// FormatNumber renders a bank number the way it is compared against user
// input: shortest decimal form, no trailing zeros.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// SplitTokens splits a comma-joined canonical value into trimmed tokens.
func SplitTokens(joined string) []string {
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

// TastingOptions are the selectable vocabularies for the blind-tasting form.
var TastingOptions = struct {
	Aroma     []string
	ABV       []string
	Equipment []string
	Agents    []string
}{
	Aroma: []string{
		"浓香型", "多粮浓香型", "清香型", "小曲清香型", "麸曲清香型", "大麸清香型",
		"酱香型", "米香型", "兼香型", "凤香型", "豉香型", "特香型", "芝麻香型",
		"董香型", "老白干型", "馥郁香型",
	},
	ABV:       []string{"30", "42", "45", "50", "52", "53", "54", "55"},
	Equipment: []string{"泥窖", "地缸", "石窖", "砖窖", "水泥窖", "瓷砖窖", "发酵罐", "陶罐"},
	Agents:    []string{"大曲", "小曲", "麸曲", "酵母"},
}

var (
	loadOnce  sync.Once
	questions []Question
	samples   []Sample
	loadErr   error
)

func load() {
	qb, err := dataFS.ReadFile("data/questions.json")
	if err != nil {
		loadErr = fmt.Errorf("read question bank: %w", err)
		return
	}
	questions, loadErr = ParseQuestions(qb)
	if loadErr != nil {
		return
	}

	sb, err := dataFS.ReadFile("data/samples.json")
	if err != nil {
		loadErr = fmt.Errorf("read sample bank: %w", err)
		return
	}
	samples, loadErr = ParseSamples(sb)
}

// Questions returns the embedded question bank, validated on first use.
func Questions() ([]Question, error) {
	loadOnce.Do(load)
	return questions, loadErr
}

// Samples returns the embedded tasting-sample bank, validated on first use.
func Samples() ([]Sample, error) {
	loadOnce.Do(load)
	return samples, loadErr
}

// ParseQuestions validates and decodes a question bank document.
func ParseQuestions(data []byte) ([]Question, error) {
	if err := validate(questionSchemaName, data); err != nil {
		return nil, fmt.Errorf("question bank: %w", err)
	}
	var qs []Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("question bank: %w", err)
	}
	return qs, nil
}

// ParseSamples validates and decodes a tasting-sample bank document.
func ParseSamples(data []byte) ([]Sample, error) {
	if err := validate(sampleSchemaName, data); err != nil {
		return nil, fmt.Errorf("sample bank: %w", err)
	}
	var ss []Sample
	if err := json.Unmarshal(data, &ss); err != nil {
		return nil, fmt.Errorf("sample bank: %w", err)
	}
	return ss, nil
}

// CountByType tallies available questions per type, used for clamping
// requested session sizes and for practice-mode defaults.
func CountByType(qs []Question) map[QuestionType]int {
	counts := make(map[QuestionType]int, 3)
	for _, q := range qs {
		counts[q.Type]++
	}
	return counts
}
