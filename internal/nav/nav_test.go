package nav

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/mailterm/internal/input"
	"github.com/nhle/mailterm/internal/mailbox"
	"github.com/nhle/mailterm/internal/model"
)

var navBase = time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

// fixture builds a store holding the given subjects, ordered as given
// (receive times descend with index so the store sort keeps the order),
// and a state machine over it.
func fixture(subjects ...string) (*State, *mailbox.Store, *mailbox.Filter) {
	messages := make([]model.Message, len(subjects))
	for i, subject := range subjects {
		messages[i] = model.Message{
			ID:       subject,
			From:     "sender@example.com",
			Subject:  subject,
			Received: navBase.Add(-time.Duration(i) * time.Hour),
		}
	}
	store := mailbox.NewStore()
	store.ReplaceAll(messages)
	filter := mailbox.NewFilter()
	return New(store, filter), store, filter
}

func ev(kind input.Kind) input.Event {
	return input.Event{Kind: kind}
}

func text(r rune) input.Event {
	return input.Event{Kind: input.KindText, Rune: r}
}

func TestListMovementClampsAtBounds(t *testing.T) {
	s, _, _ := fixture("a", "b", "c")

	s.Apply(ev(input.KindUp))
	assert.Equal(t, 0, s.Selected(), "up at the top stays at the top")

	s.Apply(ev(input.KindDown))
	s.Apply(ev(input.KindDown))
	assert.Equal(t, 2, s.Selected())

	s.Apply(ev(input.KindDown))
	assert.Equal(t, 2, s.Selected(), "down at the bottom stays at the bottom")
}

func TestListGoFirstGoLast(t *testing.T) {
	s, _, _ := fixture("a", "b", "c", "d")

	s.Apply(ev(input.KindGoLast))
	assert.Equal(t, 3, s.Selected())

	s.Apply(ev(input.KindGoFirst))
	assert.Equal(t, 0, s.Selected())
}

func TestSelectOpensDetailAndMarksRead(t *testing.T) {
	s, store, _ := fixture("a", "b", "c")

	s.Apply(ev(input.KindDown))
	s.Apply(ev(input.KindSelect))

	assert.Equal(t, ModeDetail, s.Mode())
	assert.True(t, store.Current().Messages[1].Read)
	assert.False(t, store.Current().Messages[0].Read)
}

func TestSelectOnEmptySequenceIsNoOp(t *testing.T) {
	s, _, _ := fixture()

	eff := s.Apply(ev(input.KindSelect))

	assert.Equal(t, EffectNone, eff)
	assert.Equal(t, ModeList, s.Mode(), "detail is unreachable with nothing to show")
}

func TestDetailTraversalMovesSelectionAndMarksRead(t *testing.T) {
	s, store, _ := fixture("a", "b", "c", "d")

	// Open message 0, step down twice while reading, then go back.
	s.Apply(ev(input.KindSelect))
	s.Apply(ev(input.KindDown))
	s.Apply(ev(input.KindDown))
	s.Apply(ev(input.KindBack))

	assert.Equal(t, ModeList, s.Mode())
	assert.Equal(t, 2, s.Selected(), "list selection reflects where reading ended")
	for i := 0; i < 3; i++ {
		assert.True(t, store.Current().Messages[i].Read, "message %d", i)
	}
	assert.False(t, store.Current().Messages[3].Read)
}

func TestDetailTraversalClampsAtEnds(t *testing.T) {
	s, _, _ := fixture("a", "b")

	s.Apply(ev(input.KindSelect))
	s.Apply(ev(input.KindUp))
	assert.Equal(t, 0, s.Selected())
	assert.Equal(t, ModeDetail, s.Mode())

	s.Apply(ev(input.KindDown))
	s.Apply(ev(input.KindDown))
	assert.Equal(t, 1, s.Selected())
}

func TestRefreshAndQuitEffects(t *testing.T) {
	s, _, _ := fixture("a")

	assert.Equal(t, EffectRefresh, s.Apply(ev(input.KindRefresh)))
	assert.Equal(t, EffectQuit, s.Apply(ev(input.KindQuit)))
	assert.Equal(t, EffectNone, s.Apply(ev(input.KindDown)))
}

func TestSearchNarrowsAsTyped(t *testing.T) {
	s, _, filter := fixture(
		"invoice march", "lunch plans", "Invoice april",
		"standup notes", "receipt",
	)

	s.Apply(ev(input.KindGoLast))
	s.Apply(ev(input.KindSearch))
	assert.Equal(t, ModeSearch, s.Mode())
	assert.Equal(t, "", filter.Query(), "entering search clears any prior query")

	for _, r := range "invoice" {
		s.Apply(text(r))
	}

	assert.Equal(t, "invoice", filter.Query())
	active := s.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "invoice march", active[0].Subject)
	assert.Equal(t, "Invoice april", active[1].Subject)

	// Movement while searching indexes into the filtered sequence.
	s.Apply(ev(input.KindDown))
	m, ok := s.SelectedMessage()
	require.True(t, ok)
	assert.Equal(t, "Invoice april", m.Subject)
}

func TestSearchBackspaceWidensAndResetsSelection(t *testing.T) {
	s, _, filter := fixture("alpha", "beta", "gamma")

	s.Apply(ev(input.KindSearch))
	s.Apply(text('b'))
	s.Apply(text('e'))
	require.Equal(t, "be", filter.Query())
	require.Len(t, s.Active(), 1)

	s.Apply(ev(input.KindDown))
	s.Apply(ev(input.KindBackspace))
	assert.Equal(t, "b", filter.Query())
	assert.Equal(t, 0, s.Selected())

	s.Apply(ev(input.KindBackspace))
	assert.Equal(t, "", filter.Query())
	assert.Len(t, s.Active(), 3)

	// Backspace on an empty query is harmless.
	s.Apply(ev(input.KindBackspace))
	assert.Equal(t, "", filter.Query())
}

func TestSearchBackspaceHandlesMultibyteRunes(t *testing.T) {
	s, _, filter := fixture("a")

	s.Apply(ev(input.KindSearch))
	s.Apply(text('é'))
	s.Apply(ev(input.KindBackspace))
	assert.Equal(t, "", filter.Query())
}

func TestSearchConfirmKeepsQueryActive(t *testing.T) {
	s, _, filter := fixture("invoice", "lunch", "other invoice")

	s.Apply(ev(input.KindSearch))
	for _, r := range "invoice" {
		s.Apply(text(r))
	}
	s.Apply(ev(input.KindConfirm))

	assert.Equal(t, ModeList, s.Mode())
	assert.Equal(t, "invoice", filter.Query(), "leaving search keeps the filter")
	assert.Len(t, s.Active(), 2)

	// Escape behaves the same as confirm.
	s.Apply(ev(input.KindSearch))
	s.Apply(text('x'))
	s.Apply(ev(input.KindEscape))
	assert.Equal(t, ModeList, s.Mode())
	assert.Equal(t, "x", filter.Query())
}

func TestHelpRestoresPreviousModeAndState(t *testing.T) {
	s, _, filter := fixture("a", "b", "c")

	// From list.
	s.Apply(ev(input.KindDown))
	s.Apply(ev(input.KindHelp))
	assert.Equal(t, ModeHelp, s.Mode())
	s.Apply(ev(input.KindDown))
	assert.Equal(t, ModeList, s.Mode(), "any key dismisses help")
	assert.Equal(t, 1, s.Selected(), "help leaves the selection alone")

	// From detail.
	s.Apply(ev(input.KindSelect))
	s.Apply(ev(input.KindHelp))
	s.Apply(text('z'))
	assert.Equal(t, ModeDetail, s.Mode())

	// From search, with the query preserved.
	s.Apply(ev(input.KindBack))
	s.Apply(ev(input.KindSearch))
	s.Apply(text('b'))
	s.Apply(ev(input.KindHelp))
	s.Apply(ev(input.KindQuit))
	assert.Equal(t, ModeSearch, s.Mode())
	assert.Equal(t, "b", filter.Query())
}

func TestOpenThirdMessageAndReturn(t *testing.T) {
	s, _, _ := fixture("newest", "middle", "oldest")

	s.Apply(ev(input.KindDown))
	s.Apply(ev(input.KindDown))
	require.Equal(t, 2, s.Selected())

	s.Apply(ev(input.KindSelect))
	assert.Equal(t, ModeDetail, s.Mode())
	m, ok := s.SelectedMessage()
	require.True(t, ok)
	assert.Equal(t, "oldest", m.Subject)

	s.Apply(ev(input.KindBack))
	assert.Equal(t, ModeList, s.Mode())
	assert.Equal(t, 2, s.Selected())
}

func TestFilterIndexesIntoMatchesNotRawSequence(t *testing.T) {
	subjects := make([]string, 10)
	for i := range subjects {
		subjects[i] = "message " + string(rune('a'+i))
	}
	subjects[2] = "invoice february"
	subjects[5] = "overdue invoice"
	s, _, _ := fixture(subjects...)

	s.Apply(ev(input.KindSearch))
	for _, r := range "invoice" {
		s.Apply(text(r))
	}

	require.Len(t, s.Active(), 2)
	assert.Equal(t, 0, s.Selected())

	// Down steps to the second match, not to raw position 6.
	s.Apply(ev(input.KindDown))
	m, ok := s.SelectedMessage()
	require.True(t, ok)
	assert.Equal(t, "overdue invoice", m.Subject)
}

func TestReconcileClampsAfterShrink(t *testing.T) {
	s, store, _ := fixture("a", "b", "c", "d", "e")
	s.Apply(ev(input.KindGoLast))
	require.Equal(t, 4, s.Selected())

	store.ReplaceAll([]model.Message{
		{ID: "x", Subject: "x", Received: navBase},
		{ID: "y", Subject: "y", Received: navBase.Add(-time.Hour)},
	})
	s.Reconcile()

	assert.Equal(t, 1, s.Selected())
	m, ok := s.SelectedMessage()
	require.True(t, ok)
	assert.Equal(t, "y", m.ID)
}

func TestReconcileLeavesDetailWhenEmptied(t *testing.T) {
	s, store, _ := fixture("a", "b")
	s.Apply(ev(input.KindSelect))
	require.Equal(t, ModeDetail, s.Mode())

	store.ReplaceAll(nil)
	s.Reconcile()

	assert.Equal(t, ModeList, s.Mode())
	assert.Equal(t, 0, s.Selected())
	_, ok := s.SelectedMessage()
	assert.False(t, ok)
}

func TestReconcileNoOpWhenSelectionStillValid(t *testing.T) {
	s, _, _ := fixture("a", "b", "c")
	s.Apply(ev(input.KindDown))

	s.Reconcile()

	assert.Equal(t, 1, s.Selected())
	assert.Equal(t, ModeList, s.Mode())
}

func TestSelectedMessageOnEmptyStore(t *testing.T) {
	s, _, _ := fixture()
	_, ok := s.SelectedMessage()
	assert.False(t, ok)
	assert.Equal(t, 0, s.Selected())
}

func TestUnknownEventIsIgnored(t *testing.T) {
	s, _, _ := fixture("a", "b")
	s.Apply(ev(input.KindDown))

	eff := s.Apply(ev(input.KindNone))

	assert.Equal(t, EffectNone, eff)
	assert.Equal(t, ModeList, s.Mode())
	assert.Equal(t, 1, s.Selected())
}
