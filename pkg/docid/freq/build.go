package freq

import (
	"github.com/cognicore/docid/pkg/docid/ingest"
	"github.com/cognicore/docid/pkg/docid/lexicon"
	"github.com/cognicore/docid/pkg/docid/trace"
)

// Build derives a fresh vocabulary from documents and counts, for every
// lemma, the number of documents containing it.
func Build(tokenizer *ingest.Tokenizer, documents []string, tracer trace.Tracer) (*Table, *lexicon.Vocabulary) {
	if tracer == nil {
		tracer = trace.Nop{}
	}

	vocab := ingest.BuildVocabulary(tokenizer, documents)
	tracer.Trace(trace.Batch, "vocabulary built", "size", vocab.Len())

	pipeline := ingest.NewPipeline(tokenizer, vocab, tracer)
	table := NewTable()
	for _, doc := range documents {
		table.AddDocument(unique(pipeline.LemmasOnly(trace.Batch, doc)))
	}

	tracer.Trace(trace.Batch, "frequencies built", "entries", table.Len(), "docs", table.TotalDocs(), "table", table.Sorted())
	return table, vocab
}

func unique(in []string) []string {
	set := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, val := range in {
		if _, ok := set[val]; ok {
			continue
		}
		set[val] = struct{}{}
		out = append(out, val)
	}
	return out
}
