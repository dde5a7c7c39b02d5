package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newTestNotifier() (*Notifier, *fakeClock) {
	clock := newFakeClock()
	n := NewNotifier()
	n.now = clock.now
	return n, clock
}

func TestEmptyNotifierHasNoStatus(t *testing.T) {
	n, _ := newTestNotifier()
	_, _, ok := n.Current()
	assert.False(t, ok)
}

func TestPostAndCurrent(t *testing.T) {
	n, clock := newTestNotifier()

	n.Infof("Inbox refreshed (%d messages)", 4)
	clock.advance(2 * time.Second)

	st, age, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "Inbox refreshed (4 messages)", st.Text)
	assert.Equal(t, Info, st.Severity)
	assert.Equal(t, 2*time.Second, age)
}

func TestLatestPostWins(t *testing.T) {
	n, _ := newTestNotifier()

	n.Infof("first")
	n.Errorf("second: %v", "boom")

	st, _, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "second: boom", st.Text)
	assert.Equal(t, Error, st.Severity)
}

func TestPostResetsAge(t *testing.T) {
	n, clock := newTestNotifier()

	n.Infof("first")
	clock.advance(4 * time.Second)
	n.Infof("second")

	_, age, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), age)
}

func TestClearOlderThan(t *testing.T) {
	n, clock := newTestNotifier()
	n.Infof("hello")

	clock.advance(3 * time.Second)
	n.ClearOlderThan(5 * time.Second)
	_, _, ok := n.Current()
	assert.True(t, ok, "young statuses survive")

	clock.advance(2 * time.Second)
	n.ClearOlderThan(5 * time.Second)
	_, _, ok = n.Current()
	assert.False(t, ok, "aged-out statuses are removed")
}

func TestClear(t *testing.T) {
	n, _ := newTestNotifier()
	n.Errorf("boom")
	n.Clear()
	_, _, ok := n.Current()
	assert.False(t, ok)
}
