// Package browser is the file list pane: a cursor-navigable directory
// listing whose movements drive the preview engine. Every navigation
// keystroke is published as a command-tagged event; the preview session
// decides what, if anything, to do with it.
package browser

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/glimpse-tui/glimpse/internal/tui/components/core"
	"github.com/glimpse-tui/glimpse/internal/tui/events"
	"github.com/glimpse-tui/glimpse/internal/tui/styles"
)

// Command identifiers for navigation events. These names are what the
// preview session's trigger set is configured with.
const (
	CmdMoveNext       = "move-next"
	CmdMovePrevious   = "move-previous"
	CmdMark           = "mark"
	CmdUnmark         = "unmark"
	CmdUnmarkBackward = "unmark-backward"
	CmdDeleteMarker   = "delete-marker"
	CmdGotoFile       = "goto-file"
	CmdOpenFile       = "open-file"
)

// entry is one row in the listing.
type entry struct {
	name  string
	path  string
	isDir bool
	size  int64
}

// Model is the file browser component.
type Model struct {
	core.SizeableBase
	core.FocusableBase

	dir     string
	entries []entry
	cursor  int
	offset  int
	marks   map[string]bool

	broker *events.Broker

	// onOpen is called when a regular file is opened for editing;
	// the root model uses it to register the externally-owned
	// representation.
	onOpen func(path string)
}

// Ensure Model implements required interfaces
var _ core.Component = (*Model)(nil)
var _ core.Sizeable = (*Model)(nil)
var _ core.Focusable = (*Model)(nil)
var _ core.Pane = (*Model)(nil)

// New creates a browser rooted at dir.
func New(dir string, broker *events.Broker) *Model {
	return &Model{
		dir:    dir,
		marks:  make(map[string]bool),
		broker: broker,
	}
}

// SetOnOpen installs the open-file callback.
func (m *Model) SetOnOpen(fn func(path string)) {
	m.onOpen = fn
}

// Owner implements core.Pane; the browser is a user pane.
func (m *Model) Owner() string { return "user" }

// PrimaryTarget implements core.Pane.
func (m *Model) PrimaryTarget() bool { return true }

// Dir returns the directory currently listed.
func (m *Model) Dir() string { return m.dir }

// SelectedPath returns the path under the cursor.
func (m *Model) SelectedPath() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return "", false
	}
	return m.entries[m.cursor].path, true
}

// Load reads dir into the listing, directories first.
func (m *Model) Load(dir string) error {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	entries := make([]entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if strings.HasPrefix(de.Name(), ".") {
			continue
		}
		e := entry{
			name:  de.Name(),
			path:  filepath.Join(dir, de.Name()),
			isDir: de.IsDir(),
		}
		if info, err := de.Info(); err == nil {
			e.size = info.Size()
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir != entries[j].isDir {
			return entries[i].isDir
		}
		return entries[i].name < entries[j].name
	})

	m.dir = dir
	m.entries = entries
	m.cursor = 0
	m.offset = 0
	return nil
}

// Init implements the Component interface
func (m *Model) Init() tea.Cmd {
	if err := m.Load(m.dir); err != nil {
		m.publishStatus("Cannot read "+m.dir, "error")
	}
	return nil
}

// Update implements the Component interface
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.Focused() {
		return m, nil
	}

	switch keyMsg.String() {
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
		m.scrollIntoView()
		m.publishNav(CmdMoveNext)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollIntoView()
		m.publishNav(CmdMovePrevious)
	case "G":
		m.cursor = len(m.entries) - 1
		m.scrollIntoView()
		m.publishNav(CmdGotoFile)
	case "g":
		m.cursor = 0
		m.offset = 0
		m.publishNav(CmdGotoFile)
	case "m":
		if path, ok := m.SelectedPath(); ok {
			m.marks[path] = true
		}
		m.publishNav(CmdMark)
	case "u":
		if path, ok := m.SelectedPath(); ok {
			delete(m.marks, path)
		}
		m.publishNav(CmdUnmark)
	case "backspace":
		if m.cursor > 0 {
			m.cursor--
			m.scrollIntoView()
		}
		if path, ok := m.SelectedPath(); ok {
			delete(m.marks, path)
		}
		m.publishNav(CmdUnmarkBackward)
	case "U":
		m.marks = make(map[string]bool)
		m.publishNav(CmdDeleteMarker)
	case "enter", "l":
		m.openSelected()
	case "h":
		m.ascend()
	}

	return m, nil
}

// openSelected descends into a directory or opens a file for editing.
func (m *Model) openSelected() {
	path, ok := m.SelectedPath()
	if !ok {
		return
	}
	if m.entries[m.cursor].isDir {
		if err := m.Load(path); err != nil {
			m.publishStatus("Cannot read "+path, "error")
			return
		}
		m.publishDirChanged()
		m.publishNav(CmdOpenFile)
		return
	}
	if m.onOpen != nil {
		m.onOpen(path)
	}
	m.publishNav(CmdOpenFile)
}

// ascend moves to the parent directory.
func (m *Model) ascend() {
	parent := filepath.Dir(m.dir)
	if parent == m.dir {
		return
	}
	if err := m.Load(parent); err != nil {
		m.publishStatus("Cannot read "+parent, "error")
		return
	}
	m.publishDirChanged()
	m.publishNav(CmdOpenFile)
}

// scrollIntoView keeps the cursor inside the visible window.
func (m *Model) scrollIntoView() {
	visible := m.Height
	if visible <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}

// View implements the Component interface
func (m *Model) View() string {
	theme := styles.CurrentTheme()

	cursorStyle := lipgloss.NewStyle().
		Foreground(theme.FgSelected).
		Background(theme.BgHighlight).
		Bold(true)
	dirStyle := lipgloss.NewStyle().Foreground(theme.Blue).Bold(true)
	fileStyle := lipgloss.NewStyle().Foreground(theme.FgBase)
	markStyle := lipgloss.NewStyle().Foreground(theme.Warning)

	visible := m.Height
	if visible <= 0 {
		visible = len(m.entries)
	}

	var b strings.Builder
	for i := m.offset; i < len(m.entries) && i < m.offset+visible; i++ {
		e := m.entries[i]

		mark := " "
		if m.marks[e.path] {
			mark = markStyle.Render(styles.MarkIcon)
		}

		icon := styles.FileIcon
		if e.isDir {
			icon = styles.DirIcon
		}

		name := e.name
		if e.isDir {
			name += "/"
		}
		name = runewidth.Truncate(name, max(1, m.Width-6), "…")

		line := mark + " " + icon + " " + name
		switch {
		case i == m.cursor:
			line = cursorStyle.Render(line)
		case e.isDir:
			line = dirStyle.Render(line)
		default:
			line = fileStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.entries) == 0 {
		b.WriteString(styles.CurrentTheme().S().Muted.Render("  (empty)"))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) publishNav(command string) {
	path, _ := m.SelectedPath()
	m.broker.Publish(events.Event{
		Type: events.NavigationEvent,
		Payload: events.NavigationPayload{
			Path:    path,
			Command: command,
		},
	})
}

func (m *Model) publishDirChanged() {
	m.broker.Publish(events.Event{
		Type:    events.DirChangedEvent,
		Payload: events.DirChangedPayload{Dir: m.dir},
	})
}

func (m *Model) publishStatus(message, level string) {
	m.broker.Publish(events.Event{
		Type: events.StatusMessageEvent,
		Payload: events.StatusMessagePayload{
			Message: message,
			Type:    level,
		},
	})
}
