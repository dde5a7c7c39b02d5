package mailbox

import (
	"strings"

	"github.com/nhle/mailterm/internal/model"
)

// Filter derives the active message sequence from a search query. An
// empty query is the identity: the active sequence is the store's full
// sequence in its original order. Matching is recomputed on every access
// (pull-based), so the filtered view can never hold identifiers that no
// longer exist in the store.
type Filter struct {
	query string
}

// NewFilter creates a filter with no active query.
func NewFilter() *Filter {
	return &Filter{}
}

// SetQuery updates the search query.
func (f *Filter) SetQuery(query string) {
	f.query = query
}

// Query returns the current search query.
func (f *Filter) Query() string {
	return f.query
}

// Active returns the sequence navigation indexes into: the filtered
// subset when a query is set, otherwise the store's full sequence.
func (f *Filter) Active(store *Store) []model.Message {
	return f.Apply(store.Current().Messages)
}

// Apply filters messages against the current query, preserving order.
// Cost is linear in mailbox size, which is fine at interactive scale.
func (f *Filter) Apply(messages []model.Message) []model.Message {
	if f.query == "" {
		return messages
	}

	matched := make([]model.Message, 0, len(messages))
	for _, m := range messages {
		if Matches(f.query, m) {
			matched = append(matched, m)
		}
	}
	return matched
}

// Matches reports whether a message matches the query: a case-insensitive
// substring match over the subject and sender.
func Matches(query string, m model.Message) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(m.Subject), q) ||
		strings.Contains(strings.ToLower(m.From), q)
}
