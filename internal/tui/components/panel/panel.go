// Package panel renders preview artifacts in a dedicated viewport
// pane. The pane is marked as engine-owned so the rest of the UI
// treats it as disposable: only one preview pane exists at a time and
// the preview session may close it whenever the selection moves on.
package panel

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/bubbles/v2/viewport"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/glimpse-tui/glimpse/internal/preview"
	"github.com/glimpse-tui/glimpse/internal/tui/components/core"
	"github.com/glimpse-tui/glimpse/internal/tui/styles"
)

// PaneOwner tags the preview pane so window management can tell it
// apart from panes the user opened deliberately.
const PaneOwner = "glimpse-preview"

// Model is the preview panel component.
type Model struct {
	viewport viewport.Model
	width    int
	height   int

	artifact *preview.Artifact
	hexMode  bool
	open     bool
}

// Ensure Model implements required interfaces
var _ core.Component = (*Model)(nil)
var _ core.Sizeable = (*Model)(nil)
var _ core.Pane = (*Model)(nil)

// New creates an empty, closed preview panel.
func New() *Model {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	return &Model{viewport: vp}
}

// Owner implements core.Pane.
func (m *Model) Owner() string { return PaneOwner }

// PrimaryTarget implements core.Pane; preview panes are skipped by
// ordinary focus cycling.
func (m *Model) PrimaryTarget() bool { return false }

// Init implements the Component interface
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the preview panel
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SetSize sets the panel dimensions
func (m *Model) SetSize(width, height int) tea.Cmd {
	m.width = width
	m.height = height

	m.viewport = viewport.New(
		viewport.WithWidth(width),
		viewport.WithHeight(max(0, height-2)),
	)
	m.viewport.MouseWheelEnabled = true

	m.refreshContent()
	return nil
}

// Show displays an artifact, replacing whatever was shown before.
func (m *Model) Show(a *preview.Artifact) {
	m.artifact = a
	m.hexMode = false
	m.open = true
	m.refreshContent()
	m.viewport.GotoTop()
}

// Close empties and hides the panel. It never destroys the artifact;
// content lifetime belongs to the preview cache.
func (m *Model) Close() {
	m.artifact = nil
	m.open = false
	m.viewport.SetContent("")
}

// IsOpen reports whether the panel is showing something.
func (m *Model) IsOpen() bool { return m.open }

// Displaying returns the path currently on screen, if any.
func (m *Model) Displaying() (string, bool) {
	if m.artifact == nil {
		return "", false
	}
	return m.artifact.Path, true
}

// ToggleHex flips the displayed preview between its rendered form and
// a raw hex dump of the same bytes. It acts on whatever is on screen;
// cache bookkeeping is untouched.
func (m *Model) ToggleHex() bool {
	if m.artifact == nil {
		return false
	}
	m.hexMode = !m.hexMode
	m.refreshContent()
	m.viewport.GotoTop()
	return true
}

// refreshContent re-renders the artifact into the viewport.
func (m *Model) refreshContent() {
	if m.artifact == nil {
		return
	}
	m.viewport.SetContent(m.renderBody())
}

// renderBody formats the artifact's content for display.
func (m *Model) renderBody() string {
	a := m.artifact
	data := a.Handle.Bytes()

	if m.hexMode {
		if a.Partial {
			// A truncated preview keeps its marker through the flip.
			return preview.HexDump(trimMarker(data)) + preview.TruncationMarker
		}
		return preview.HexDump(data)
	}

	switch a.Kind {
	case preview.KindDirectory:
		return styles.CurrentTheme().S().Text.Render(string(data))
	case preview.KindImage:
		return m.imageSummary()
	default:
	}

	if strings.EqualFold(filepath.Ext(a.Path), ".md") {
		if r := styles.GetMarkdownRenderer(m.width); r != nil {
			if out, err := r.Render(string(data)); err == nil {
				return out
			}
		}
	}
	return styles.Highlight(string(data), a.Path)
}

// imageSummary is the stand-in body for image files: terminals without
// graphics support get the file's vitals instead of raw bytes.
func (m *Model) imageSummary() string {
	a := m.artifact
	theme := styles.CurrentTheme()
	return fmt.Sprintf("%s\n\n%s\n%s",
		theme.S().Title.Render(filepath.Base(a.Path)),
		theme.S().Muted.Render(fmt.Sprintf("image file, %d bytes", a.Size)),
		theme.S().Muted.Render("(inline image display not supported by this terminal)"),
	)
}

// View renders the panel with its header line.
func (m *Model) View() string {
	if !m.open || m.artifact == nil {
		return ""
	}
	theme := styles.CurrentTheme()

	name := filepath.Base(m.artifact.Path)
	badge := ""
	if m.artifact.Partial {
		badge = " " + styles.PartialIcon
	}
	if m.hexMode {
		badge += " " + styles.HexIcon
	}
	header := theme.S().Title.Render(name) +
		theme.S().Muted.Render(fmt.Sprintf("%s  %d bytes", badge, m.artifact.Size))

	divider := lipgloss.NewStyle().
		Foreground(theme.Border).
		Render(strings.Repeat("─", max(1, m.width)))

	return header + "\n" + divider + "\n" + m.viewport.View()
}

// trimMarker strips the truncation marker so hex mode dumps only the
// bytes that came from the file.
func trimMarker(data []byte) []byte {
	s := string(data)
	if cut, ok := strings.CutSuffix(s, preview.TruncationMarker); ok {
		return []byte(cut)
	}
	return data
}
