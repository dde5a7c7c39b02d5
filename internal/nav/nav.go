// Package nav implements the modal navigation state machine: the
// current view mode, the selected position in the active sequence, and
// the transition logic that interprets input events. It performs no I/O
// and cannot fail; out-of-range positions are clamped, never rejected.
package nav

import (
	"unicode/utf8"

	"github.com/nhle/mailterm/internal/input"
	"github.com/nhle/mailterm/internal/mailbox"
	"github.com/nhle/mailterm/internal/model"
)

// Mode is the active view mode.
type Mode int

const (
	ModeList Mode = iota
	ModeDetail
	ModeSearch
	ModeHelp
)

// String returns a short label for the mode.
func (m Mode) String() string {
	switch m {
	case ModeDetail:
		return "detail"
	case ModeSearch:
		return "search"
	case ModeHelp:
		return "help"
	default:
		return "list"
	}
}

// Effect is a side effect a transition asks the caller to perform.
// Navigation itself never does I/O.
type Effect int

const (
	// EffectNone means the transition was fully handled internally.
	EffectNone Effect = iota

	// EffectRefresh asks the caller to start a mailbox refresh.
	EffectRefresh

	// EffectQuit signals the caller to terminate the session.
	EffectQuit
)

// State is the navigation state machine. It reads the store through the
// filter: the sequence it indexes into is the filtered subset when a
// query is active, otherwise the full store sequence.
type State struct {
	store  *mailbox.Store
	filter *mailbox.Filter

	mode     Mode
	previous Mode
	selected int
}

// New creates a state machine starting in List mode at position 0.
func New(store *mailbox.Store, filter *mailbox.Filter) *State {
	return &State{store: store, filter: filter, mode: ModeList}
}

// Mode returns the active mode.
func (s *State) Mode() Mode {
	return s.mode
}

// Selected returns the selected index into the active sequence.
func (s *State) Selected() int {
	return s.selected
}

// Active returns the sequence navigation currently indexes into.
func (s *State) Active() []model.Message {
	return s.filter.Active(s.store)
}

// SelectedMessage returns the message at the selected position, if the
// active sequence is non-empty.
func (s *State) SelectedMessage() (model.Message, bool) {
	active := s.Active()
	if len(active) == 0 {
		return model.Message{}, false
	}
	i := clamp(s.selected, 0, len(active)-1)
	return active[i], true
}

// Apply runs one transition. All transition logic lives here.
func (s *State) Apply(ev input.Event) Effect {
	switch s.mode {
	case ModeList:
		return s.applyList(ev)
	case ModeDetail:
		return s.applyDetail(ev)
	case ModeSearch:
		return s.applySearch(ev)
	case ModeHelp:
		// Any key dismisses help and restores the remembered mode;
		// selection and query are untouched.
		s.mode = s.previous
		return EffectNone
	}
	return EffectNone
}

func (s *State) applyList(ev input.Event) Effect {
	switch ev.Kind {
	case input.KindDown:
		s.move(1)
	case input.KindUp:
		s.move(-1)
	case input.KindGoFirst:
		s.selected = 0
	case input.KindGoLast:
		if n := len(s.Active()); n > 0 {
			s.selected = n - 1
		}
	case input.KindSelect:
		// Detail is unreachable while the active sequence is empty.
		if m, ok := s.SelectedMessage(); ok {
			s.mode = ModeDetail
			s.store.MarkRead(m.ID)
		}
	case input.KindRefresh:
		return EffectRefresh
	case input.KindSearch:
		s.mode = ModeSearch
		s.filter.SetQuery("")
	case input.KindHelp:
		s.enterHelp()
	case input.KindQuit:
		return EffectQuit
	}
	return EffectNone
}

func (s *State) applyDetail(ev input.Event) Effect {
	switch ev.Kind {
	case input.KindBack, input.KindEscape:
		// Selection stays where it was.
		s.mode = ModeList
	case input.KindDown:
		s.move(1)
		s.markSelectedRead()
	case input.KindUp:
		s.move(-1)
		s.markSelectedRead()
	case input.KindHelp:
		s.enterHelp()
	}
	return EffectNone
}

func (s *State) applySearch(ev input.Event) Effect {
	switch ev.Kind {
	case input.KindText:
		s.filter.SetQuery(s.filter.Query() + string(ev.Rune))
		s.selected = 0
	case input.KindBackspace:
		if q := s.filter.Query(); q != "" {
			_, size := utf8.DecodeLastRuneInString(q)
			s.filter.SetQuery(q[:len(q)-size])
		}
		s.selected = 0
	case input.KindConfirm, input.KindEscape:
		s.mode = ModeList
		s.clampSelected()
	case input.KindHelp:
		s.enterHelp()
	}
	return EffectNone
}

// Reconcile re-validates the selection against the active sequence.
// The caller runs it on every render tick and after store mutations, so
// a background refresh shrinking the mailbox can never leave the
// selection out of range. An emptied sequence also forces Detail back
// to List, since Detail is unreachable with nothing to show.
func (s *State) Reconcile() {
	active := s.Active()
	if len(active) == 0 {
		s.selected = 0
		if s.mode == ModeDetail {
			s.mode = ModeList
		}
		return
	}
	s.clampSelected()
}

// move shifts the selection by delta, clamped to the active sequence.
// No-op when the sequence is empty.
func (s *State) move(delta int) {
	n := len(s.Active())
	if n == 0 {
		return
	}
	s.selected = clamp(s.selected+delta, 0, n-1)
}

func (s *State) clampSelected() {
	if n := len(s.Active()); n > 0 {
		s.selected = clamp(s.selected, 0, n-1)
	} else {
		s.selected = 0
	}
}

func (s *State) enterHelp() {
	// Help remembers where it came from and does not nest.
	if s.mode == ModeHelp {
		return
	}
	s.previous = s.mode
	s.mode = ModeHelp
}

func (s *State) markSelectedRead() {
	if m, ok := s.SelectedMessage(); ok {
		s.store.MarkRead(m.ID)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
