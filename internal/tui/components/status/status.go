// Package status implements the one-line status bar: persistent
// context on the left (directory, selection position, preview state)
// and transient messages on the right.
package status

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/glimpse-tui/glimpse/internal/tui/styles"
)

// MessageType represents the type of status message
type MessageType int

const (
	Info MessageType = iota
	Warning
	Error
	Success
)

// StatusMessage represents a status bar message
type StatusMessage struct {
	Content   string
	Type      MessageType
	Timestamp time.Time
}

// Component implements a status bar that shows temporary messages
type Component struct {
	message *StatusMessage
	width   int

	dir         string
	position    string
	previewInfo string

	clearAfter time.Duration
}

// New creates a new status bar component
func New() *Component {
	return &Component{
		clearAfter: 5 * time.Second,
	}
}

// SetMessage sets a status message with the given type
func (c *Component) SetMessage(content string, msgType MessageType) tea.Cmd {
	c.message = &StatusMessage{
		Content:   content,
		Type:      msgType,
		Timestamp: time.Now(),
	}

	ts := c.message.Timestamp
	return tea.Tick(c.clearAfter, func(time.Time) tea.Msg {
		return clearMessageMsg{timestamp: ts}
	})
}

// ShowInfo shows an info message
func (c *Component) ShowInfo(message string) tea.Cmd {
	return c.SetMessage(message, Info)
}

// ShowWarning shows a warning message
func (c *Component) ShowWarning(message string) tea.Cmd {
	return c.SetMessage(message, Warning)
}

// ShowError shows an error message
func (c *Component) ShowError(message string) tea.Cmd {
	return c.SetMessage(message, Error)
}

// ShowSuccess shows a success message
func (c *Component) ShowSuccess(message string) tea.Cmd {
	return c.SetMessage(message, Success)
}

// SetContext updates the persistent left-hand segments.
func (c *Component) SetContext(dir, position, previewInfo string) {
	c.dir = dir
	c.position = position
	c.previewInfo = previewInfo
}

// SetSize implements the Sizeable interface
func (c *Component) SetSize(width, height int) tea.Cmd {
	c.width = width
	return nil
}

// clearMessageMsg is sent when a status message should be cleared
type clearMessageMsg struct {
	timestamp time.Time
}

// Init implements the Component interface
func (c *Component) Init() tea.Cmd {
	return nil
}

// Update implements the Component interface
func (c *Component) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearMessageMsg:
		// Only clear if this is for the current message
		if c.message != nil && msg.timestamp.Equal(c.message.Timestamp) {
			c.message = nil
		}
	}

	return c, nil
}

// View implements the Component interface
func (c *Component) View() string {
	if c.width == 0 {
		return ""
	}

	theme := styles.CurrentTheme()

	statusStyle := lipgloss.NewStyle().
		Width(c.width).
		Height(1).
		Background(theme.BgSubtle).
		Foreground(theme.FgBase).
		Padding(0, 1)

	left := c.dir
	if c.position != "" {
		left += "  " + c.position
	}
	if c.previewInfo != "" {
		left += "  " + c.previewInfo
	}

	right := ""
	if c.message != nil {
		right = c.formatMessage()
	}

	availableWidth := c.width - 2
	if runewidth.StringWidth(left)+runewidth.StringWidth(right) > availableWidth {
		right = runewidth.Truncate(right, 40, "…")
		remaining := availableWidth - runewidth.StringWidth(right) - 1
		if remaining > 0 {
			left = runewidth.Truncate(left, remaining, "…")
		}
	}

	content := left
	if right != "" {
		spacesNeeded := availableWidth - runewidth.StringWidth(left) - runewidth.StringWidth(right)
		if spacesNeeded > 0 {
			content += fmt.Sprintf("%*s%s", spacesNeeded, "", right)
		} else {
			content += " " + right
		}
	}

	return statusStyle.Render(content)
}

// formatMessage formats the status message with appropriate styling
func (c *Component) formatMessage() string {
	if c.message == nil {
		return ""
	}

	switch c.message.Type {
	case Success:
		return styles.CheckIcon + " " + c.message.Content
	case Warning:
		return styles.WarningIcon + " " + c.message.Content
	case Error:
		return styles.ErrorIcon + " " + c.message.Content
	default:
		return c.message.Content
	}
}
