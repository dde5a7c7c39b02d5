// Package input defines the abstract input-event set the navigation
// state machine consumes, decoupled from the concrete key-binding
// scheme. Mapping terminal keys to events happens here so that vim
// letters and arrow keys are indistinguishable downstream.
package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mailterm/internal/keys"
)

// Kind enumerates the abstract input events.
type Kind int

const (
	KindNone Kind = iota
	KindUp
	KindDown
	KindSelect
	KindBack
	KindGoFirst
	KindGoLast
	KindRefresh
	KindSearch
	KindHelp
	KindText
	KindBackspace
	KindConfirm
	KindEscape
	KindQuit
)

// Event is one abstract input event. Rune is set for KindText.
type Event struct {
	Kind Kind
	Rune rune
}

// FromKey translates a terminal key press into an Event. When textEntry
// is true (search mode), printable runes become text input and only the
// editing keys keep their meaning.
func FromKey(msg tea.KeyMsg, km *keys.KeyMap, textEntry bool) Event {
	if textEntry {
		switch msg.Type {
		case tea.KeyEnter:
			return Event{Kind: KindConfirm}
		case tea.KeyEsc:
			return Event{Kind: KindEscape}
		case tea.KeyBackspace:
			return Event{Kind: KindBackspace}
		case tea.KeyRunes:
			if len(msg.Runes) > 0 {
				return Event{Kind: KindText, Rune: msg.Runes[0]}
			}
		case tea.KeySpace:
			return Event{Kind: KindText, Rune: ' '}
		}
		return Event{Kind: KindNone}
	}

	switch {
	case key.Matches(msg, km.Up):
		return Event{Kind: KindUp}
	case key.Matches(msg, km.Down):
		return Event{Kind: KindDown}
	case key.Matches(msg, km.Select):
		return Event{Kind: KindSelect}
	case key.Matches(msg, km.Back):
		return Event{Kind: KindBack}
	case key.Matches(msg, km.GoFirst):
		return Event{Kind: KindGoFirst}
	case key.Matches(msg, km.GoLast):
		return Event{Kind: KindGoLast}
	case key.Matches(msg, km.Refresh):
		return Event{Kind: KindRefresh}
	case key.Matches(msg, km.Search):
		return Event{Kind: KindSearch}
	case key.Matches(msg, km.Help):
		return Event{Kind: KindHelp}
	case key.Matches(msg, km.Quit):
		return Event{Kind: KindQuit}
	}
	return Event{Kind: KindNone}
}
