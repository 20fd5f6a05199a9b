package core

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
)

// DebounceMsg is delivered when a debounce window closes. Gen is the
// generation the timer was armed with; holders of a newer generation
// treat the message as a cancelled timer and ignore it.
type DebounceMsg struct {
	ID  string
	Gen int
}

// Debounce arms a one-shot timer. There is no explicit cancel: arming
// with a newer generation supersedes every timer still in flight, which
// gives last-write-wins semantics to whoever consumes the messages.
func Debounce(id string, gen int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return DebounceMsg{ID: id, Gen: gen}
	})
}
