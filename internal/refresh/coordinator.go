// Package refresh manages the lifecycle of asynchronous mailbox
// refreshes: start, in-flight, success, failure, and supersession.
package refresh

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mailterm/internal/mailbox"
	"github.com/nhle/mailterm/internal/model"
	"github.com/nhle/mailterm/internal/provider"
	"github.com/nhle/mailterm/internal/status"
)

// fetchTimeout is the maximum time allowed for a single fetch.
const fetchTimeout = 30 * time.Second

// ResultMsg is delivered to the UI loop when a fetch completes. The
// generation ties it back to the Start call that issued it.
type ResultMsg struct {
	Generation uint64
	Messages   []model.Message
	Err        error
}

// Coordinator runs refreshes against the provider and writes the
// outcome into the store. Every Start bumps a monotonic generation
// counter; a completion is applied only while its generation is still
// current, so an older fetch's result can never overwrite a newer one.
// Cancellation is cooperative: a superseded fetch is not aborted, its
// result is discarded on arrival.
type Coordinator struct {
	store    *mailbox.Store
	provider provider.Provider
	notifier *status.Notifier

	mu         sync.Mutex
	generation uint64
}

// New creates a coordinator.
func New(
	store *mailbox.Store,
	p provider.Provider,
	notifier *status.Notifier,
) *Coordinator {
	return &Coordinator{store: store, provider: p, notifier: notifier}
}

// Start begins a refresh: it bumps the generation, marks the store as
// loading without discarding messages, and returns a command that
// performs the fetch and delivers a ResultMsg. Starting while a fetch
// is already in flight is allowed and abandons the older fetch's
// eventual result.
func (c *Coordinator) Start() tea.Cmd {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	c.store.BeginLoading()

	p := c.provider
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		messages, err := p.Fetch(ctx)
		return ResultMsg{Generation: gen, Messages: messages, Err: err}
	}
}

// Apply writes a completed fetch into the store and posts a status,
// unless the result is stale. Stale results are discarded silently.
// It reports whether the result was applied.
func (c *Coordinator) Apply(msg ResultMsg) bool {
	c.mu.Lock()
	current := c.generation
	c.mu.Unlock()

	if msg.Generation != current {
		return false
	}

	if msg.Err != nil {
		c.store.Fail(msg.Err)
		c.notifier.Errorf("Refresh failed: %v", msg.Err)
		return true
	}

	c.store.ReplaceAll(msg.Messages)
	c.notifier.Infof("Inbox refreshed (%d messages)", len(msg.Messages))
	return true
}

// Generation returns the current generation counter.
func (c *Coordinator) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}
