// Package freq holds corpus document-frequency statistics: how many documents
// contain each lemma.
package freq

import "sort"

// Entry is a lemma with its document count.
type Entry struct {
	Word  string
	Count int64
}

// Table maps lemmas to document counts. Entries keep their first insertion
// order so unsorted output is reproducible.
type Table struct {
	docs   int64
	counts map[string]int64
	order  []string
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{counts: make(map[string]int64)}
}

// FromEntries creates a table from entries. Later duplicates overwrite earlier ones.
func FromEntries(entries []Entry) *Table {
	t := NewTable()
	for _, e := range entries {
		t.Set(e.Word, e.Count)
	}
	return t
}

// AddDocument counts one document. Callers pass each lemma once per document;
// duplicates are counted again.
func (t *Table) AddDocument(uniqueLemmas []string) {
	t.docs++
	for _, w := range uniqueLemmas {
		t.Set(w, t.counts[w]+1)
	}
}

// Set assigns count to word.
func (t *Table) Set(word string, count int64) {
	if _, ok := t.counts[word]; !ok {
		t.order = append(t.order, word)
	}
	t.counts[word] = count
}

// Count returns the document frequency of word, 0 when absent.
func (t *Table) Count(word string) int64 {
	return t.counts[word]
}

// Has reports whether word has an entry.
func (t *Table) Has(word string) bool {
	_, ok := t.counts[word]
	return ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.counts)
}

// TotalDocs returns the number of documents added with AddDocument. Tables
// loaded from a cache report 0.
func (t *Table) TotalDocs() int64 {
	return t.docs
}

// Words returns every lemma in insertion order.
func (t *Table) Words() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Entries returns every entry in insertion order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.order))
	for i, w := range t.order {
		out[i] = Entry{Word: w, Count: t.counts[w]}
	}
	return out
}

// Sorted returns every entry by descending count; ties keep insertion order.
func (t *Table) Sorted() []Entry {
	out := t.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Mean returns the average document count per entry. ok is false for an
// empty table.
func (t *Table) Mean() (mean float64, ok bool) {
	if len(t.counts) == 0 {
		return 0, false
	}
	return float64(t.TotalCount()) / float64(len(t.counts)), true
}

// TotalCount returns the sum of all counts.
func (t *Table) TotalCount() int64 {
	var sum int64
	for _, c := range t.counts {
		sum += c
	}
	return sum
}
