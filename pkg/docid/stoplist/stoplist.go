package stoplist

import "strings"

// Default is the fixed stopword set. It only holds auxiliary verb forms: short
// function words ("of", "to", "in") are already rejected by the length rule.
var Default = []string{"will", "was", "were", "been", "are", "is", "be", "am"}

// Manager answers stopword membership for lowercase tokens
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a stoplist manager from the given terms
func NewManager(initialStops []string) *Manager {
	stops := make(map[string]struct{}, len(initialStops))
	for _, s := range initialStops {
		stops[strings.ToLower(s)] = struct{}{}
	}
	return &Manager{stops: stops}
}

// NewDefault creates a manager holding Default.
func NewDefault() *Manager {
	return NewManager(Default)
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[token]
	return ok
}

// Len returns the number of stopwords
func (m *Manager) Len() int {
	return len(m.stops)
}
