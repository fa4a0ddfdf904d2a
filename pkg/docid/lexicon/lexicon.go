package lexicon

import "github.com/tchap/go-patricia/v2/patricia"

// Vocabulary is the set of lemma-eligible lowercase tokens of a corpus. The
// lemmatizer only accepts a stripped or mapped form when it is a member.
//
// Words are kept in a Patricia trie; stems and their inflections share
// prefixes.
type Vocabulary struct {
	trie *patricia.Trie
	size int
}

// New creates an empty vocabulary.
func New() *Vocabulary {
	return &Vocabulary{trie: patricia.NewTrie()}
}

// FromWords creates a vocabulary holding words.
func FromWords(words []string) *Vocabulary {
	v := New()
	for _, w := range words {
		v.Add(w)
	}
	return v
}

// Add inserts word. Empty words are ignored.
func (v *Vocabulary) Add(word string) {
	if word == "" {
		return
	}
	if v.trie.Insert(patricia.Prefix(word), struct{}{}) {
		v.size++
	}
}

// Has reports whether word is a member.
func (v *Vocabulary) Has(word string) bool {
	if word == "" {
		return false
	}
	return v.trie.Match(patricia.Prefix(word))
}

// Len returns the number of distinct words.
func (v *Vocabulary) Len() int {
	return v.size
}
