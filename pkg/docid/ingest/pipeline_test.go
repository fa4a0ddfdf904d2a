package ingest

import (
	"reflect"
	"testing"

	"github.com/cognicore/docid/pkg/docid/lexicon"
)

func TestPipelineWithoutVocabulary(t *testing.T) {
	p := NewPipeline(NewTokenizer(nil), nil, nil)

	got := p.LemmasOnly(0, "Translates documents")
	want := []string{"translates", "documents"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LemmasOnly() = %v, want %v", got, want)
	}
}

func TestPipelineLemmasOnly(t *testing.T) {
	tokenizer := NewTokenizer(nil)
	vocab := BuildVocabulary(tokenizer, []string{"translate documents", "He translates document"})
	p := NewPipeline(tokenizer, vocab, nil)

	got := p.LemmasOnly(0, "He translates documents")
	want := []string{"translate", "document"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LemmasOnly() = %v, want %v", got, want)
	}
}

func TestPipelineWordPairsKeepCasing(t *testing.T) {
	vocab := lexicon.FromWords([]string{"translate", "translates", "ai"})
	p := NewPipeline(NewTokenizer(nil), vocab, nil)

	got := p.WordPairs(0, "Translates AI to French")
	want := []WordPair{
		{Original: "Translates", Lemmatized: "translate"},
		{Original: "AI", Lemmatized: "ai"},
		{Original: "French", Lemmatized: "french"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("WordPairs() = %+v, want %+v", got, want)
	}
}

func TestPipelineEmptyDocument(t *testing.T) {
	p := NewPipeline(NewTokenizer(nil), lexicon.FromWords([]string{"word"}), nil)

	if len(p.WordPairs(0, "is are be was of in")) != 0 {
		t.Error("fully filtered text should give no pairs")
	}
	if len(p.LemmasOnly(0, "")) != 0 {
		t.Error("empty text should give no lemmas")
	}
}

func TestBuildVocabulary(t *testing.T) {
	vocab := BuildVocabulary(NewTokenizer(nil), []string{"Translate AI", "translate 42 of", ""})

	if vocab.Len() != 2 || !vocab.Has("ai") || !vocab.Has("translate") {
		t.Errorf("expected vocabulary {ai, translate}, got %d words", vocab.Len())
	}
	if vocab.Has("42") || vocab.Has("of") || vocab.Has("Translate") {
		t.Error("filtered or uncased tokens should not be members")
	}
}
