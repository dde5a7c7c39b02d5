package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/nhle/mailterm/internal/keys"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestFromKeyNavigationBindings(t *testing.T) {
	km := keys.DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want Kind
	}{
		{"vim down", runeKey('j'), KindDown},
		{"vim up", runeKey('k'), KindUp},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, KindDown},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, KindUp},
		{"enter opens", tea.KeyMsg{Type: tea.KeyEnter}, KindSelect},
		{"vim right opens", runeKey('l'), KindSelect},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, KindBack},
		{"vim left goes back", runeKey('h'), KindBack},
		{"go first", runeKey('g'), KindGoFirst},
		{"go last", runeKey('G'), KindGoLast},
		{"refresh", runeKey('r'), KindRefresh},
		{"search", runeKey('/'), KindSearch},
		{"help", runeKey('?'), KindHelp},
		{"quit", runeKey('q'), KindQuit},
		{"unbound rune", runeKey('x'), KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := FromKey(tt.msg, km, false)
			assert.Equal(t, tt.want, ev.Kind)
		})
	}
}

func TestFromKeyTextEntry(t *testing.T) {
	km := keys.DefaultKeyMap()

	// While typing a query, binding letters are literal text.
	ev := FromKey(runeKey('j'), km, true)
	assert.Equal(t, KindText, ev.Kind)
	assert.Equal(t, 'j', ev.Rune)

	ev = FromKey(runeKey('q'), km, true)
	assert.Equal(t, KindText, ev.Kind)
	assert.Equal(t, 'q', ev.Rune)

	ev = FromKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, km, true)
	assert.Equal(t, KindText, ev.Kind)
	assert.Equal(t, ' ', ev.Rune)

	// Editing keys keep their meaning.
	assert.Equal(t, KindConfirm, FromKey(tea.KeyMsg{Type: tea.KeyEnter}, km, true).Kind)
	assert.Equal(t, KindEscape, FromKey(tea.KeyMsg{Type: tea.KeyEsc}, km, true).Kind)
	assert.Equal(t, KindBackspace, FromKey(tea.KeyMsg{Type: tea.KeyBackspace}, km, true).Kind)

	// Anything else is ignored rather than misread as navigation.
	assert.Equal(t, KindNone, FromKey(tea.KeyMsg{Type: tea.KeyTab}, km, true).Kind)
}
