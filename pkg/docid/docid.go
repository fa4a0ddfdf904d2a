// Package docid generates short, readable, unique identifiers for documents
// from their own most distinctive words.
package docid

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/oklog/ulid/v2"

	"github.com/cognicore/docid/internal/logger"
	"github.com/cognicore/docid/pkg/docid/extract"
	"github.com/cognicore/docid/pkg/docid/freq"
	"github.com/cognicore/docid/pkg/docid/ingest"
	"github.com/cognicore/docid/pkg/docid/internalerr"
	"github.com/cognicore/docid/pkg/docid/lexicon"
	"github.com/cognicore/docid/pkg/docid/selection"
	"github.com/cognicore/docid/pkg/docid/stoplist"
	"github.com/cognicore/docid/pkg/docid/store"
	"github.com/cognicore/docid/pkg/docid/trace"
)

// DefaultMinIDLength is the minimum identifier length used when none is configured.
const DefaultMinIDLength = 30

// PlaceholderPrefix starts the ID of a document with no usable words.
const PlaceholderPrefix = "document_"

// Generator turns a batch of documents into unique, readable identifiers.
// A Generator is not safe for concurrent use; use one per batch stream.
type Generator struct {
	minIDLength int
	maxMean     *float64
	threshold   float64
	html        bool

	logger    *log.Logger
	tracer    trace.Tracer
	tokenizer *ingest.Tokenizer
	entropy   *ulid.MonotonicEntropy

	table *freq.Table
	vocab *lexicon.Vocabulary
}

// Options configures a Generator
type Options struct {
	// MinIDLength is the joined length an ID must reach when the document has
	// enough distinct words.
	MinIDLength int
	// MaxMeanFrequency caps the mean document frequency of the chosen words.
	// Nil resolves to the corpus mean of each batch.
	MaxMeanFrequency *float64

	Verbose          bool
	VerboseDocuments []int

	// HTML strips markup from documents before processing.
	HTML bool

	Logger   *log.Logger       // warnings and batch summaries, defaults to stderr
	Tracer   trace.Tracer      // overrides Verbose/VerboseDocuments when set
	Stoplist *stoplist.Manager // defaults to stoplist.Default
}

// New validates opts and creates a Generator.
func New(opts Options) (*Generator, error) {
	const op = "docid.New"

	if opts.MinIDLength < 1 {
		return nil, internalerr.New(internalerr.KindConfig, op, "min id length must be a positive number")
	}
	if m := opts.MaxMeanFrequency; m != nil && (*m < 0 || math.IsNaN(*m)) {
		return nil, internalerr.New(internalerr.KindConfig, op, "max mean frequency must be nil or a non-negative number")
	}
	for _, d := range opts.VerboseDocuments {
		if d < 0 {
			return nil, internalerr.New(internalerr.KindConfig, op, fmt.Sprintf("verbose document index %d must not be negative", d))
		}
	}

	l := opts.Logger
	if l == nil {
		l = logger.New("docid")
	}

	tracer := opts.Tracer
	if tracer == nil {
		if opts.Verbose {
			tracer = trace.NewLogTracer(l, opts.VerboseDocuments)
		} else {
			tracer = trace.Nop{}
		}
	}

	var maxMean *float64
	if opts.MaxMeanFrequency != nil {
		v := *opts.MaxMeanFrequency
		maxMean = &v
	}

	stops := opts.Stoplist
	if stops == nil {
		stops = stoplist.NewDefault()
	}
	threshold := "corpus mean"
	if maxMean != nil {
		threshold = strconv.FormatFloat(*maxMean, 'f', -1, 64)
	}
	l.Debug("generator configured", "min_id_length", opts.MinIDLength, "max_mean_frequency", threshold, "stopwords", stops.Len(), "html", opts.HTML)

	return &Generator{
		minIDLength: opts.MinIDLength,
		maxMean:     maxMean,
		html:        opts.HTML,
		logger:      l,
		tracer:      tracer,
		tokenizer:   ingest.NewTokenizer(stops),
		entropy:     ulid.Monotonic(rand.Reader, 0),
	}, nil
}

// GenerateIDs returns one unique ID per document, index-aligned with
// documents. A non-empty cachePath names a frequency CSV to load instead of
// counting the documents; a missing or unreadable cache falls back to
// counting.
func (g *Generator) GenerateIDs(documents []string, cachePath string) ([]string, error) {
	var src freq.Source
	if strings.TrimSpace(cachePath) != "" {
		src = freq.CSVFile(cachePath)
	}
	return g.GenerateIDsFrom(context.Background(), documents, src)
}

// GenerateIDsFrom is GenerateIDs with an arbitrary frequency source. A nil
// src always counts the documents.
func (g *Generator) GenerateIDsFrom(ctx context.Context, documents []string, src freq.Source) ([]string, error) {
	if len(documents) == 0 {
		return nil, internalerr.New(internalerr.KindInput, "docid.GenerateIDs", "documents cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if g.html {
		documents = extract.All(documents)
	}

	if err := g.resolveFrequencies(ctx, documents, src); err != nil {
		return nil, err
	}
	g.resolveThreshold()

	pipeline := ingest.NewPipeline(g.tokenizer, g.vocab, g.tracer)
	selector := selection.New(selection.Params{
		MinIDLength:      g.minIDLength,
		MaxMeanFrequency: g.threshold,
	}, g.table, g.tracer)

	ids := make([]string, len(documents))
	used := make(map[string]struct{}, len(documents))
	for i, doc := range documents {
		id := g.generateID(pipeline, selector, i, doc)
		ids[i] = uniqueID(id, used)
		if ids[i] != id {
			g.tracer.Trace(i, "renamed duplicate id", "id", id, "unique", ids[i])
		}
	}
	return ids, nil
}

func (g *Generator) generateID(pipeline *ingest.Pipeline, selector *selection.Selector, i int, doc string) string {
	if strings.TrimSpace(doc) == "" {
		g.tracer.Trace(i, "empty document")
		return Placeholder(i)
	}
	g.tracer.Trace(i, "generating id", "document", doc)

	pairs := pipeline.WordPairs(i, doc)
	if len(pairs) == 0 {
		g.tracer.Trace(i, "no usable words")
		return Placeholder(i)
	}

	res := selector.Select(i, pairs)
	if len(res.Selected) == 0 {
		return Placeholder(i)
	}
	id := res.ID()
	g.tracer.Trace(i, "final id", "id", id)
	return id
}

// resolveFrequencies loads the table from src, or counts documents when src
// is nil or fails to load.
func (g *Generator) resolveFrequencies(ctx context.Context, documents []string, src freq.Source) error {
	if src != nil {
		table, skipped, err := src.Load(ctx)
		switch {
		case err == nil:
			for _, s := range skipped {
				g.logger.Warn("skipped malformed cache row", "source", src, "line", s.Line, "reason", s.Reason, "row", s.Text)
			}
			g.table = table
			g.vocab = lexicon.FromWords(table.Words())
			g.tracer.Trace(trace.Batch, "loaded frequencies", "source", src, "entries", table.Len())
			return nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		case errors.Is(err, internalerr.ErrNotFound):
			g.logger.Debug("no frequency cache, building from documents", "source", src)
		default:
			g.logger.Warn("falling back to building frequencies from documents", "source", src, "err", err)
		}
	}

	g.table, g.vocab = freq.Build(g.tokenizer, documents, g.tracer)
	return nil
}

func (g *Generator) resolveThreshold() {
	mean, ok := g.table.Mean()
	switch {
	case g.maxMean != nil:
		g.threshold = *g.maxMean
		if ok {
			g.logger.Info("corpus mean frequency", "mean", math.Round(mean*100)/100, "max_mean_frequency", g.threshold)
		}
	case ok:
		g.threshold = mean
		g.logger.Info("using corpus mean frequency", "mean", mean)
	default:
		g.threshold = selection.Unbounded
	}
}

// uniqueID returns id, or id with the first free "_<n>" suffix (n >= 2), and
// marks the result used.
func uniqueID(id string, used map[string]struct{}) string {
	candidate := id
	for n := 2; ; n++ {
		if _, taken := used[candidate]; !taken {
			break
		}
		candidate = id + "_" + strconv.Itoa(n)
	}
	used[candidate] = struct{}{}
	return candidate
}

// Placeholder returns the ID used for document i when it has no usable words.
func Placeholder(i int) string {
	return PlaceholderPrefix + strconv.Itoa(i)
}

// CacheFrequencies writes the frequency table of the last batch to path as CSV.
func (g *Generator) CacheFrequencies(path string) error {
	if err := freq.WriteCSV(path, g.table); err != nil {
		return fmt.Errorf("failed to cache frequencies to %s: %w", path, err)
	}
	return nil
}

// SaveFrequencies stores the frequency table of the last batch in st.
func (g *Generator) SaveFrequencies(ctx context.Context, st store.Store) error {
	if g.table == nil || g.table.Len() == 0 {
		return internalerr.New(internalerr.KindCache, "docid.SaveFrequencies", "no frequencies to cache")
	}
	return internalerr.Wrap(internalerr.KindCache, "docid.SaveFrequencies", st.SaveFrequencies(ctx, g.table.Sorted()))
}

// Frequencies returns the table of the last batch, nil before the first one.
func (g *Generator) Frequencies() *freq.Table {
	return g.table
}

// Vocabulary returns the vocabulary of the last batch, nil before the first one.
func (g *Generator) Vocabulary() *lexicon.Vocabulary {
	return g.vocab
}

// MaxMeanFrequency returns the threshold applied to the last batch. ok is
// false when no threshold applied (no configured value and an empty table).
func (g *Generator) MaxMeanFrequency() (threshold float64, ok bool) {
	if g.table == nil || math.IsInf(g.threshold, 1) {
		return 0, false
	}
	return g.threshold, true
}

// MinIDLength returns the configured minimum ID length.
func (g *Generator) MinIDLength() int {
	return g.minIDLength
}

// NewRunID returns a new monotonic ULID for labelling a batch.
func (g *Generator) NewRunID() string {
	return ulid.MustNew(ulid.Now(), g.entropy).String()
}

// NewRun packages a finished batch for a store. documents and ids must be
// index-aligned.
func (g *Generator) NewRun(documents, ids []string) store.Run {
	r := store.Run{
		ID:          g.NewRunID(),
		CreatedAt:   time.Now().UTC(),
		MinIDLength: g.MinIDLength(),
		Assignments: make([]store.Assignment, len(ids)),
	}
	if t, ok := g.MaxMeanFrequency(); ok {
		r.MaxMeanFrequency = &t
	}
	for i, id := range ids {
		var doc string
		if i < len(documents) {
			doc = documents[i]
		}
		r.Assignments[i] = store.Assignment{Index: i, Document: doc, ID: id}
	}
	return r
}
