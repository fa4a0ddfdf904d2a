package ingest

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cognicore/docid/pkg/docid/stoplist"
)

// MinWordLength is the shortest lowercase token kept. Tokens of exactly this
// length survive only as uppercase acronyms ("AI", "ML").
const MinWordLength = 2

// Token is a filtered word with its source casing and lowercase form.
type Token struct {
	Original string
	Lower    string
}

// Tokenizer splits text into candidate words and drops noise
type Tokenizer struct {
	stops *stoplist.Manager
}

// NewTokenizer creates a tokenizer with the given stoplist. A nil stoplist
// uses stoplist.Default.
func NewTokenizer(stops *stoplist.Manager) *Tokenizer {
	if stops == nil {
		stops = stoplist.NewDefault()
	}
	return &Tokenizer{stops: stops}
}

// Tokenize splits text into tokens, keeping source order and duplicates.
// Case mapping is the full Unicode mapping, so a rune may map to several
// ("ß" uppercases to "SS", "İ" lowercases to "i" plus U+0307).
func (t *Tokenizer) Tokenize(text string) []Token {
	// Casers carry state and are not safe for concurrent use.
	lowerCaser := cases.Lower(language.Und)
	upperCaser := cases.Upper(language.Und)

	var tokens []Token
	for _, raw := range Split(text) {
		lower := lowerCaser.String(raw)
		if t.keep(raw, lower, upperCaser) {
			tokens = append(tokens, Token{Original: raw, Lower: lower})
		}
	}
	return tokens
}

// Split replaces every rune that is not a word character, whitespace or an
// accented Latin letter with a space and splits on whitespace runs.
func Split(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, text)
	return strings.Fields(cleaned)
}

// isWordRune accepts ASCII word characters and the U+00C0-U+024F and
// U+1E00-U+1EFF ranges (accented Latin letters).
func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	case r >= 0x00C0 && r <= 0x024F:
		return true
	case r >= 0x1E00 && r <= 0x1EFF:
		return true
	}
	return false
}

func (t *Tokenizer) keep(original, lower string, upper cases.Caser) bool {
	if utf8.RuneCountInString(lower) < MinWordLength {
		return false
	}
	if containsDigit(lower) {
		return false
	}
	if t.stops.IsStop(lower) {
		return false
	}
	if utf8.RuneCountInString(original) == MinWordLength && original != upper.String(original) {
		return false
	}
	return true
}

func containsDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}
