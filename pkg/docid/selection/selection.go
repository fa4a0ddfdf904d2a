// Package selection picks the words that make up one document's identifier.
//
// Words are taken in document order until the joined identifier is long
// enough and the mean document frequency of the chosen words is low enough.
// Whenever the mean is too high the most frequent chosen word is evicted.
// If the identifier ends up too short, evicted words are restored rarest
// first at their original positions.
package selection

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cognicore/docid/pkg/docid/ingest"
	"github.com/cognicore/docid/pkg/docid/trace"
)

// Separator joins the words of an identifier.
const Separator = "_"

// Frequencies looks up the document frequency of a lemma, 0 when unknown.
type Frequencies interface {
	Count(lemma string) int64
}

// Candidate is a word considered for an identifier.
type Candidate struct {
	Word      string // original casing
	Lemma     string
	Frequency int64
	Position  int // index in the document's word-pair sequence
}

// Params bounds a selection. Use Unbounded for MaxMeanFrequency to disable
// eviction.
type Params struct {
	MinIDLength      int
	MaxMeanFrequency float64
}

// Unbounded is a MaxMeanFrequency that no mean exceeds.
var Unbounded = math.Inf(1)

// Selector runs selections against a fixed frequency table.
type Selector struct {
	params Params
	freqs  Frequencies
	tracer trace.Tracer
}

// New creates a Selector. A nil tracer discards events.
func New(params Params, freqs Frequencies, tracer trace.Tracer) *Selector {
	if tracer == nil {
		tracer = trace.Nop{}
	}
	return &Selector{params: params, freqs: freqs, tracer: tracer}
}

// Result is the outcome of one selection.
type Result struct {
	Selected []Candidate // ordered by Position
	Removed  []Candidate // evicted and never restored
}

// ID joins the selected words. It is empty when nothing was selected.
func (r Result) ID() string {
	return Join(r.Selected)
}

// Join joins candidate words with Separator.
func Join(cands []Candidate) string {
	words := make([]string, len(cands))
	for i, c := range cands {
		words[i] = c.Word
	}
	return strings.Join(words, Separator)
}

// state is the working set for a single document.
type state struct {
	*Selector
	doc      int
	selected []Candidate
	removed  []Candidate
	used     map[string]struct{}
	length   int
	total    int64
}

// Select chooses the identifier words for document doc from its word pairs.
func (s *Selector) Select(doc int, pairs []ingest.WordPair) Result {
	st := &state{Selector: s, doc: doc, used: make(map[string]struct{})}
	st.trace("selection started", "words", len(pairs))

	for pos, pair := range pairs {
		if st.isUsed(pair.Lemmatized) {
			st.trace("skipped duplicate", "word", pair.Original, "lemma", pair.Lemmatized, "position", pos)
			continue
		}
		st.add(pair, pos)
		if st.satisfied() {
			st.trace("constraints met")
			break
		}
		if st.mean() > s.params.MaxMeanFrequency {
			st.evictMostFrequent()
		}
	}

	st.restore()
	st.trace("selection finished", "id", Join(st.selected), "length", st.length)
	return Result{Selected: st.selected, Removed: st.removed}
}

func (st *state) trace(msg string, keyvals ...any) {
	st.tracer.Trace(st.doc, msg, keyvals...)
}

func (st *state) isUsed(lemma string) bool {
	_, ok := st.used[lemma]
	return ok
}

func (st *state) add(pair ingest.WordPair, pos int) {
	var count int64
	if st.freqs != nil {
		count = st.freqs.Count(pair.Lemmatized)
	}
	c := Candidate{Word: pair.Original, Lemma: pair.Lemmatized, Frequency: count, Position: pos}
	st.selected = append(st.selected, c)
	st.used[c.Lemma] = struct{}{}
	st.total += c.Frequency
	st.length = joinedLength(st.selected)
	st.trace("added", "word", c.Word, "lemma", c.Lemma, "count", c.Frequency, "position", c.Position)
}

func (st *state) mean() float64 {
	if len(st.selected) == 0 {
		return 0
	}
	return float64(st.total) / float64(len(st.selected))
}

func (st *state) satisfied() bool {
	mean := st.mean()
	minMet := st.length >= st.params.MinIDLength
	meanMet := mean <= st.params.MaxMeanFrequency
	st.trace("progress",
		"length", st.length,
		"mean", math.Round(mean*100)/100,
		"threshold", st.params.MaxMeanFrequency,
		"min_length_met", minMet,
		"mean_below_threshold", meanMet)
	return minMet && meanMet
}

// evictMostFrequent moves the highest-frequency selected word to the removed
// list. The earliest one wins ties.
func (st *state) evictMostFrequent() {
	idx := -1
	var max int64 = -1
	for i, c := range st.selected {
		if c.Frequency > max {
			max = c.Frequency
			idx = i
		}
	}
	if idx < 0 {
		return
	}

	c := st.selected[idx]
	st.selected = append(st.selected[:idx], st.selected[idx+1:]...)
	st.removed = append(st.removed, c)
	delete(st.used, c.Lemma)
	st.total -= c.Frequency
	st.length = joinedLength(st.selected)
	st.trace("removed highest count", "word", c.Word, "lemma", c.Lemma, "count", c.Frequency, "position", c.Position)
}

// restore re-inserts removed words, rarest first, until the identifier is long
// enough.
func (st *state) restore() {
	if st.length >= st.params.MinIDLength || len(st.removed) == 0 {
		return
	}
	st.trace("below minimum length", "length", st.length, "min", st.params.MinIDLength)

	pending := st.removed
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].Frequency < pending[j].Frequency
	})

	var kept []Candidate
	for i, c := range pending {
		if st.length >= st.params.MinIDLength {
			kept = append(kept, pending[i:]...)
			break
		}
		if st.isUsed(c.Lemma) {
			st.trace("skipped restoring duplicate", "word", c.Word, "lemma", c.Lemma)
			kept = append(kept, c)
			continue
		}
		at := insertionIndex(st.selected, c.Position)
		st.selected = append(st.selected, Candidate{})
		copy(st.selected[at+1:], st.selected[at:])
		st.selected[at] = c
		st.used[c.Lemma] = struct{}{}
		st.total += c.Frequency
		st.length = joinedLength(st.selected)
		st.trace("restored", "word", c.Word, "lemma", c.Lemma, "count", c.Frequency, "index", at, "length", st.length)
	}
	st.removed = kept
}

// insertionIndex returns the index of the first candidate at or after pos.
func insertionIndex(cands []Candidate, pos int) int {
	return sort.Search(len(cands), func(i int) bool {
		return cands[i].Position >= pos
	})
}

func joinedLength(cands []Candidate) int {
	if len(cands) == 0 {
		return 0
	}
	n := len(cands) - 1
	for _, c := range cands {
		n += utf8.RuneCountInString(c.Word)
	}
	return n
}
