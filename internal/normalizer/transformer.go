package normalizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const presentDayPrefix = "present-day "

// qualifierPattern matches a leading hedge word. Its separator class is the
// same set isSpace accepts.
var qualifierPattern = regexp.MustCompile(`(?i)^(?:probably|possible|possibly|central)[\s\v\x{85}\x{1c}-\x{1f}\pZ]+`)

// Transformer turns raw country strings into canonical names.
// A Transformer is not safe for concurrent use.
type Transformer struct {
	lower cases.Caser
	title cases.Caser
}

// NewTransformer creates a new transformer instance.
func NewTransformer() *Transformer {
	return &Transformer{
		lower: cases.Lower(language.Und),
		title: cases.Title(language.Und),
	}
}

// Transform normalizes raw. It returns false when nothing is left to count.
func (t *Transformer) Transform(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	n := t.lower.String(trimSpace(raw))

	// Drop trailing "?", "(", ")" and whitespace, e.g. "france (?)".
	n = trimSpace(strings.TrimRightFunc(n, isTrailingNoise))

	n = trimSpace(qualifierPattern.ReplaceAllString(n, ""))

	if rest, ok := strings.CutPrefix(n, presentDayPrefix); ok {
		n = t.lower.String(trimSpace(rest))
	}

	if canonical, ok := Override(n); ok {
		return canonical, true
	}

	words := strings.FieldsFunc(n, isSpace)
	for i, w := range words {
		words[i] = t.capitalize(w)
	}

	name := strings.Join(words, " ")
	if name == "" {
		return "", false
	}

	return name, true
}

// capitalize title-cases the first character of word and lowercases the rest.
func (t *Transformer) capitalize(word string) string {
	_, size := utf8.DecodeRuneInString(word)
	return t.title.String(word[:size]) + t.lower.String(word[size:])
}

func isTrailingNoise(r rune) bool {
	return r == '?' || r == '(' || r == ')' || isSpace(r)
}

// isSpace extends unicode.IsSpace with the ASCII information separators
// U+001C to U+001F, which data exported from spreadsheets can carry.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}
