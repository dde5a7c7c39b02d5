package mailbox

import (
	"cmp"
	"slices"
	"sync"

	"github.com/nhle/mailterm/internal/model"
)

// FetchStatus describes the state of the mailbox snapshot.
type FetchStatus int

const (
	// StatusIdle means no fetch has been attempted yet.
	StatusIdle FetchStatus = iota

	// StatusLoading means a refresh is in flight. Previously fetched
	// messages remain visible (stale-while-revalidate).
	StatusLoading

	// StatusReady means the snapshot reflects a completed fetch.
	StatusReady

	// StatusFailed means the last refresh failed. Previously fetched
	// messages remain visible.
	StatusFailed
)

// String returns a short label for the status.
func (s FetchStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// Snapshot is a point-in-time view of the store. Messages is ordered by
// received time descending, ties broken by ID; callers must not mutate it.
type Snapshot struct {
	Messages []model.Message
	Status   FetchStatus
	Err      error
}

// Store holds the authoritative ordered message collection. The unit of
// mutation is the whole collection: messages are replaced wholesale on a
// successful refresh, never patched or removed individually. A Store is
// safe for concurrent use; the message slice itself is treated as
// immutable and swapped atomically under the lock.
type Store struct {
	mu       sync.RWMutex
	messages []model.Message
	status   FetchStatus
	err      error
}

// NewStore creates an empty store in the Idle state.
func NewStore() *Store {
	return &Store{status: StatusIdle}
}

// ReplaceAll swaps in a new message collection and sets the status to
// Ready. Messages are sorted by received time descending, ties broken by
// ID ascending. Dependents (filter, navigation) re-validate against the
// new collection on their next access rather than being notified.
func (s *Store) ReplaceAll(messages []model.Message) {
	sorted := make([]model.Message, len(messages))
	copy(sorted, messages)
	slices.SortStableFunc(sorted, func(a, b model.Message) int {
		if c := b.Received.Compare(a.Received); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = sorted
	s.status = StatusReady
	s.err = nil
}

// BeginLoading marks a refresh as in flight without discarding the
// existing messages, so the UI never blanks merely because a refresh
// started.
func (s *Store) BeginLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusLoading
}

// Fail records a refresh failure. Existing messages remain visible.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusFailed
	s.err = err
}

// Current returns the present snapshot. It never blocks on a fetch.
func (s *Store) Current() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Messages: s.messages, Status: s.status, Err: s.err}
}

// MarkRead flags the message with the given ID as read. The flag is
// transient session state; a refresh replaces the collection and resets
// it. The slice is rebuilt rather than edited in place so snapshots held
// by readers stay consistent.
func (s *Store) MarkRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.messages {
		if m.ID != id || m.Read {
			continue
		}
		updated := make([]model.Message, len(s.messages))
		copy(updated, s.messages)
		updated[i].Read = true
		s.messages = updated
		return
	}
}
