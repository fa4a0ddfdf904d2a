package ingest

import (
	"strings"
	"unicode/utf8"

	"github.com/cognicore/docid/pkg/docid/lexicon"
	"github.com/cognicore/docid/pkg/docid/trace"
)

// MinLemmaLength is the shortest stem a suffix strip may produce.
const MinLemmaLength = 3

// suffixes are tried in order; the first one whose stem is in the vocabulary wins.
var suffixes = []string{
	"ing", "ed", "es", "s", "er", "est", "ly", "tion", "sion", "ment",
	"ness", "ity", "able", "ible", "ful", "less", "ish", "ous", "ive",
}

// Lemmatizer reduces lowercase words to a root that exists in the vocabulary.
type Lemmatizer struct {
	vocab  *lexicon.Vocabulary
	tracer trace.Tracer
}

// NewLemmatizer creates a lemmatizer over vocab.
func NewLemmatizer(vocab *lexicon.Vocabulary, tracer trace.Tracer) *Lemmatizer {
	if tracer == nil {
		tracer = trace.Nop{}
	}
	return &Lemmatizer{vocab: vocab, tracer: tracer}
}

// Lemmatize returns the lemma of word, or word itself when no candidate root
// is in the vocabulary. doc only labels trace events.
func (l *Lemmatizer) Lemmatize(doc int, word string) string {
	if root, ok := irregular[word]; ok && l.vocab.Has(root) {
		l.tracer.Trace(doc, "irregular lemma", "word", word, "lemma", root)
		return root
	}

	for _, suffix := range suffixes {
		if !strings.HasSuffix(word, suffix) {
			continue
		}
		stem := strings.TrimSuffix(word, suffix)
		if utf8.RuneCountInString(stem) < MinLemmaLength {
			continue
		}
		if l.vocab.Has(stem) {
			l.tracer.Trace(doc, "suffix lemma", "word", word, "lemma", stem)
			return stem
		}
	}

	if strings.HasSuffix(word, "ies") && utf8.RuneCountInString(word) > 5 {
		stem := strings.TrimSuffix(word, "ies") + "y"
		if l.vocab.Has(stem) {
			l.tracer.Trace(doc, "ies lemma", "word", word, "lemma", stem)
			return stem
		}
	}

	return word
}
