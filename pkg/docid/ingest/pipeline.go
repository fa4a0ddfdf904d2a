package ingest

import (
	"github.com/cognicore/docid/pkg/docid/lexicon"
	"github.com/cognicore/docid/pkg/docid/trace"
)

// WordPair is a filtered word in source casing with its lemma.
type WordPair struct {
	Original   string
	Lemmatized string
}

// Pipeline runs text through tokenization, filtering and lemmatization
type Pipeline struct {
	tokenizer  *Tokenizer
	vocab      *lexicon.Vocabulary
	lemmatizer *Lemmatizer
	tracer     trace.Tracer
}

// NewPipeline creates a pipeline lemmatizing against vocab. Lemmatization is
// skipped while vocab is empty.
func NewPipeline(tokenizer *Tokenizer, vocab *lexicon.Vocabulary, tracer trace.Tracer) *Pipeline {
	if tracer == nil {
		tracer = trace.Nop{}
	}
	if vocab == nil {
		vocab = lexicon.New()
	}
	return &Pipeline{
		tokenizer:  tokenizer,
		vocab:      vocab,
		lemmatizer: NewLemmatizer(vocab, tracer),
		tracer:     tracer,
	}
}

// LemmasOnly returns the lemma of every filtered word in text, in order.
// Used for frequency counting.
func (p *Pipeline) LemmasOnly(doc int, text string) []string {
	tokens := p.tokenizer.Tokenize(text)
	lemmas := make([]string, len(tokens))
	for i, tok := range tokens {
		lemmas[i] = p.lemma(doc, tok.Lower)
	}
	p.tracer.Trace(doc, "preprocessed lemmas", "lemmas", lemmas)
	return lemmas
}

// WordPairs returns every filtered word of text in source casing alongside
// its lemma, in order. Used for ID generation.
func (p *Pipeline) WordPairs(doc int, text string) []WordPair {
	tokens := p.tokenizer.Tokenize(text)
	pairs := make([]WordPair, len(tokens))
	for i, tok := range tokens {
		pairs[i] = WordPair{Original: tok.Original, Lemmatized: p.lemma(doc, tok.Lower)}
	}
	p.tracer.Trace(doc, "preprocessed word pairs", "count", len(pairs))
	return pairs
}

func (p *Pipeline) lemma(doc int, lower string) string {
	if p.vocab.Len() == 0 {
		return lower
	}
	return p.lemmatizer.Lemmatize(doc, lower)
}

// BuildVocabulary collects the lowercase form of every filtered token across
// documents.
func BuildVocabulary(tokenizer *Tokenizer, documents []string) *lexicon.Vocabulary {
	vocab := lexicon.New()
	for _, doc := range documents {
		for _, tok := range tokenizer.Tokenize(doc) {
			vocab.Add(tok.Lower)
		}
	}
	return vocab
}
