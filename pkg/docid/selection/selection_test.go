package selection

import (
	"testing"

	"github.com/cognicore/docid/pkg/docid/ingest"
	"github.com/cognicore/docid/pkg/docid/trace"
)

type counts map[string]int64

func (c counts) Count(w string) int64 { return c[w] }

func pairs(words ...string) []ingest.WordPair {
	out := make([]ingest.WordPair, len(words))
	for i, w := range words {
		out[i] = ingest.WordPair{Original: w, Lemmatized: w}
	}
	return out
}

func words(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Word
	}
	return out
}

func TestSelectStopsAtMinLength(t *testing.T) {
	s := New(Params{MinIDLength: 10, MaxMeanFrequency: Unbounded}, counts{}, nil)
	res := s.Select(0, pairs("alpha", "beta", "gamma", "delta"))
	if got := res.ID(); got != "alpha_beta" {
		t.Errorf("ID() = %q, want alpha_beta", got)
	}
}

func TestSelectUsesAllWordsWhenShort(t *testing.T) {
	s := New(Params{MinIDLength: 100, MaxMeanFrequency: Unbounded}, counts{}, nil)
	res := s.Select(0, pairs("alpha", "beta"))
	if got := res.ID(); got != "alpha_beta" {
		t.Errorf("ID() = %q, want alpha_beta", got)
	}
}

func TestSelectSkipsDuplicateLemmas(t *testing.T) {
	s := New(Params{MinIDLength: 100, MaxMeanFrequency: Unbounded}, counts{}, nil)
	in := []ingest.WordPair{
		{Original: "Test", Lemmatized: "test"},
		{Original: "tests", Lemmatized: "test"},
		{Original: "document", Lemmatized: "document"},
	}
	res := s.Select(0, in)
	if got := res.ID(); got != "Test_document" {
		t.Errorf("ID() = %q, want Test_document", got)
	}
	if res.Selected[1].Position != 2 {
		t.Errorf("position = %d, want 2", res.Selected[1].Position)
	}
}

func TestSelectEvictsFrequentWords(t *testing.T) {
	freqs := counts{"common": 10, "rare": 1, "odd": 2}
	s := New(Params{MinIDLength: 8, MaxMeanFrequency: 3}, freqs, nil)

	res := s.Select(0, pairs("common", "rare", "odd"))
	if got := res.ID(); got != "rare_odd" {
		t.Errorf("ID() = %q, want rare_odd", got)
	}
	if len(res.Removed) != 1 || res.Removed[0].Word != "common" {
		t.Errorf("Removed = %v, want [common]", words(res.Removed))
	}
}

func TestSelectRestoresInDocumentOrder(t *testing.T) {
	freqs := counts{"common": 10, "rare": 1, "odd": 2}
	s := New(Params{MinIDLength: 100, MaxMeanFrequency: 3}, freqs, nil)

	res := s.Select(0, pairs("common", "rare", "odd"))
	if got := res.ID(); got != "common_rare_odd" {
		t.Errorf("ID() = %q, want common_rare_odd", got)
	}
	if len(res.Removed) != 0 {
		t.Errorf("Removed = %v, want none", words(res.Removed))
	}
}

func TestSelectEvictionTieTakesFirst(t *testing.T) {
	freqs := counts{"low": 0, "hia": 5, "hib": 5, "zed": 0}
	s := New(Params{MinIDLength: 8, MaxMeanFrequency: 3}, freqs, nil)

	res := s.Select(0, pairs("low", "hia", "hib", "zed"))
	if got := res.ID(); got != "low_hib_zed" {
		t.Errorf("ID() = %q, want low_hib_zed", got)
	}
	if len(res.Removed) != 1 || res.Removed[0].Word != "hia" {
		t.Errorf("Removed = %v, want [hia]", words(res.Removed))
	}
}

func TestSelectRestoreRarestFirstAndStops(t *testing.T) {
	freqs := counts{"alpha": 9, "bravo": 8, "charlie": 1}
	s := New(Params{MinIDLength: 13, MaxMeanFrequency: 1}, freqs, nil)

	res := s.Select(0, pairs("alpha", "bravo", "charlie"))
	if got := res.ID(); got != "bravo_charlie" {
		t.Errorf("ID() = %q, want bravo_charlie", got)
	}
	if len(res.Removed) != 1 || res.Removed[0].Word != "alpha" {
		t.Errorf("Removed = %v, want [alpha]", words(res.Removed))
	}
}

func TestSelectRestoreSkipsReusedLemma(t *testing.T) {
	freqs := counts{"big": 9, "tiny": 1}
	s := New(Params{MinIDLength: 100, MaxMeanFrequency: 2}, freqs, nil)
	in := []ingest.WordPair{
		{Original: "Big", Lemmatized: "big"},
		{Original: "tiny", Lemmatized: "tiny"},
		{Original: "big", Lemmatized: "big"},
	}

	res := s.Select(0, in)
	if got := res.ID(); got != "Big_tiny" {
		t.Errorf("ID() = %q, want Big_tiny", got)
	}
	if len(res.Removed) != 1 || res.Removed[0].Position != 2 {
		t.Errorf("Removed = %+v, want the second big", res.Removed)
	}
}

func TestSelectEmpty(t *testing.T) {
	s := New(Params{MinIDLength: 5, MaxMeanFrequency: Unbounded}, nil, nil)
	res := s.Select(0, nil)
	if res.ID() != "" || len(res.Selected) != 0 {
		t.Errorf("expected empty result, got %+v", res)
	}
}

func TestSelectCountsRunes(t *testing.T) {
	s := New(Params{MinIDLength: 9, MaxMeanFrequency: Unbounded}, counts{}, nil)
	res := s.Select(0, pairs("café", "noir", "extra"))
	if got := res.ID(); got != "café_noir" {
		t.Errorf("ID() = %q, want café_noir", got)
	}
}

func TestSelectZeroThreshold(t *testing.T) {
	freqs := counts{"seen": 1}
	s := New(Params{MinIDLength: 3, MaxMeanFrequency: 0}, freqs, nil)
	res := s.Select(0, pairs("seen", "unseen"))
	if got := res.ID(); got != "unseen" {
		t.Errorf("ID() = %q, want unseen", got)
	}
}

func TestSelectTraces(t *testing.T) {
	rec := &trace.Recorder{}
	s := New(Params{MinIDLength: 100, MaxMeanFrequency: 1}, counts{"common": 5}, rec)
	s.Select(3, pairs("common", "rare"))

	docs := rec.Docs()
	if len(docs) != 1 || docs[0] != 3 {
		t.Fatalf("Docs() = %v, want [3]", docs)
	}
	var evicted, restored bool
	for _, msg := range rec.Messages(3) {
		switch msg {
		case "removed highest count":
			evicted = true
		case "restored":
			restored = true
		}
	}
	if !evicted || !restored {
		t.Errorf("expected removal and restoration events, got %v", rec.Messages(3))
	}
}
