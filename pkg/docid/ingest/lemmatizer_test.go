package ingest

import (
	"testing"

	"github.com/cognicore/docid/pkg/docid/lexicon"
	"github.com/cognicore/docid/pkg/docid/trace"
)

func TestLemmatizeIrregular(t *testing.T) {
	lem := NewLemmatizer(lexicon.FromWords([]string{"go", "child", "good", "run"}), nil)

	cases := map[string]string{
		"went":     "go",
		"children": "child",
		"better":   "good",
		"running":  "run",
	}
	for word, want := range cases {
		if got := lem.Lemmatize(0, word); got != want {
			t.Errorf("Lemmatize(%q) = %q, want %q", word, got, want)
		}
	}
}

func TestLemmatizeIrregularRequiresVocabulary(t *testing.T) {
	lem := NewLemmatizer(lexicon.FromWords([]string{"child"}), nil)

	if got := lem.Lemmatize(0, "went"); got != "went" {
		t.Errorf("Lemmatize(went) = %q, want unchanged when 'go' is unknown", got)
	}
}

func TestLemmatizeSuffix(t *testing.T) {
	lem := NewLemmatizer(lexicon.FromWords([]string{"translate", "document", "quick"}), nil)

	cases := map[string]string{
		"translates": "translate",
		"documents":  "document",
		"quickly":    "quick",
		"unknown":    "unknown",
	}
	for word, want := range cases {
		if got := lem.Lemmatize(0, word); got != want {
			t.Errorf("Lemmatize(%q) = %q, want %q", word, got, want)
		}
	}
}

func TestLemmatizeSuffixOrder(t *testing.T) {
	// "es" comes before "s", so "boxes" strips to "box" even though "boxe" exists.
	lem := NewLemmatizer(lexicon.FromWords([]string{"box", "boxe"}), nil)

	if got := lem.Lemmatize(0, "boxes"); got != "box" {
		t.Errorf("Lemmatize(boxes) = %q, want box", got)
	}
}

func TestLemmatizeMinimumStemLength(t *testing.T) {
	lem := NewLemmatizer(lexicon.FromWords([]string{"be", "ad"}), nil)

	if got := lem.Lemmatize(0, "ads"); got != "ads" {
		t.Errorf("Lemmatize(ads) = %q, stems shorter than %d must not be used", got, MinLemmaLength)
	}
}

func TestLemmatizeIes(t *testing.T) {
	lem := NewLemmatizer(lexicon.FromWords([]string{"study", "ty"}), nil)

	if got := lem.Lemmatize(0, "studies"); got != "study" {
		t.Errorf("Lemmatize(studies) = %q, want study", got)
	}
	// Too short for the -ies rule.
	if got := lem.Lemmatize(0, "ties"); got != "ties" {
		t.Errorf("Lemmatize(ties) = %q, want ties", got)
	}
}

func TestLemmatizeTraces(t *testing.T) {
	rec := &trace.Recorder{}
	lem := NewLemmatizer(lexicon.FromWords([]string{"translate"}), rec)

	lem.Lemmatize(4, "translates")

	msgs := rec.Messages(4)
	if len(msgs) != 1 || msgs[0] != "suffix lemma" {
		t.Errorf("Unexpected trace: %v", msgs)
	}
}
