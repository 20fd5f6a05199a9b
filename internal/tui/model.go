package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/glimpse-tui/glimpse/internal/config"
	"github.com/glimpse-tui/glimpse/internal/host"
	"github.com/glimpse-tui/glimpse/internal/preview"
	"github.com/glimpse-tui/glimpse/internal/tui/components/browser"
	"github.com/glimpse-tui/glimpse/internal/tui/components/core"
	"github.com/glimpse-tui/glimpse/internal/tui/components/panel"
	"github.com/glimpse-tui/glimpse/internal/tui/components/status"
	"github.com/glimpse-tui/glimpse/internal/tui/events"
	"github.com/glimpse-tui/glimpse/internal/tui/styles"
	"github.com/glimpse-tui/glimpse/internal/watcher"
)

// debounceID tags preview debounce timers so other timers in the
// program can share the DebounceMsg type.
const debounceID = "preview"

// Model is the root TUI model: a file browser pane, the preview panel
// the engine owns, and a status bar. All preview decisions live in the
// session coordinator; the model's job is to execute its directives.
type Model struct {
	width  int
	height int

	// Components
	browser   *browser.Model
	panel     *panel.Model
	statusBar *status.Component

	// Event system
	eventBroker *events.Broker
	eventSub    <-chan events.Event

	// Preview engine
	registry  *host.Registry
	fsHost    *host.FS
	cache     *preview.Cache
	session   *preview.Session
	placement preview.PlacementPolicy

	watcher *watcher.FileWatcher

	cfg *config.Config

	previewEnabled bool
	showHelp       bool
}

// New assembles the full application around dir.
func New(dir string, cfg *config.Config, eventBroker *events.Broker) (*Model, error) {
	registry := host.NewRegistry()
	fsHost := host.NewFS(registry)

	classifier, err := preview.NewClassifier(preview.ClassifierOptions{
		IgnoredExtensionPattern: cfg.IgnoredExtensionPattern,
		ImageExtensionPattern:   cfg.ImageExtensionPattern,
		MaxPreviewableSize:      cfg.MaxPreviewableSize,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid classifier config: %w", err)
	}

	renderer := preview.NewRenderer(fsHost, cfg.OversizedChunkSize)
	cache := preview.NewCache(fsHost, classifier, renderer, cfg.EvictionSizeThreshold)

	m := &Model{
		browser:        browser.New(dir, eventBroker),
		panel:          panel.New(),
		statusBar:      status.New(),
		eventBroker:    eventBroker,
		registry:       registry,
		fsHost:         fsHost,
		cache:          cache,
		cfg:            cfg,
		previewEnabled: true,
		placement: preview.DefaultPlacement(preview.PlacementOptions{
			SplitThreshold: cfg.SplitThreshold,
			MinPanelWidth:  cfg.MinPanelWidth,
		}),
	}

	m.session = preview.NewSession(m, fsHost, cache, classifier, preview.SessionOptions{
		Delay:           cfg.DebounceDelay(),
		TriggerCommands: cfg.TriggerCommands,
	})

	// Renderer notices (ignored files and the like) surface on the
	// status bar.
	renderer.OnNotice = func(msg string) {
		eventBroker.PublishAsync(events.Event{
			Type: events.StatusMessageEvent,
			Payload: events.StatusMessagePayload{
				Message: msg,
				Type:    "info",
			},
		})
	}

	// Opening a file registers its external representation; previews
	// of an open file reuse it instead of re-reading disk.
	m.browser.SetOnOpen(m.toggleOpen)

	m.watcher = watcher.NewWatcher(cfg.DebounceDelay(), func(paths []string) {
		eventBroker.PublishAsync(events.Event{
			Type:    events.PreviewInvalidateEvent,
			Payload: events.InvalidatePayload{Paths: paths},
		})
	})

	m.eventSub = eventBroker.Subscribe()
	return m, nil
}

// Init initializes the TUI model and all components
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd

	cmds = append(cmds, m.browser.Init())
	cmds = append(cmds, m.panel.Init())
	cmds = append(cmds, m.statusBar.Init())
	cmds = append(cmds, m.browser.Focus())

	m.session.Activate()

	if err := m.watcher.Watch(m.browser.Dir()); err != nil {
		cmds = append(cmds, m.statusBar.ShowWarning("file watching unavailable: "+err.Error()))
	}

	// Preview whatever starts out selected.
	cmds = append(cmds, m.navigate(browser.CmdGotoFile))

	cmds = append(cmds, m.listenForEvents())
	return tea.Batch(cmds...)
}

// Update handles all TUI updates and routes to components
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle events that come as messages
	if event, ok := msg.(events.Event); ok {
		cmd := m.handleEvent(event)
		cmds = append(cmds, cmd, m.listenForEvents())
		return m, tea.Batch(cmds...)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cmds = append(cmds, m.applyLayout())
		return m, tea.Batch(cmds...)

	case core.DebounceMsg:
		if msg.ID == debounceID {
			cmds = append(cmds, m.execDirective(m.session.OnTimerFired(msg.Gen)))
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.showHelp {
			switch msg.String() {
			case "esc", "?", "q":
				m.closeHelp()
			case "p":
				// Let the toggle surface its misuse error.
				m.eventBroker.Publish(events.Event{Type: events.PreviewToggleEvent})
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "ctrl+c":
			m.shutdown()
			return m, tea.Quit
		case "?":
			m.openHelp()
			return m, nil
		case "x":
			m.eventBroker.Publish(events.Event{Type: events.PreviewHexToggleEvent})
			return m, nil
		case "p":
			m.eventBroker.Publish(events.Event{Type: events.PreviewToggleEvent})
			return m, nil
		}
	}

	// Everything else goes to the components.
	var cmd tea.Cmd

	var browserModel tea.Model
	browserModel, cmd = m.browser.Update(msg)
	if bm, ok := browserModel.(*browser.Model); ok {
		m.browser = bm
	}
	cmds = append(cmds, cmd)

	var panelModel tea.Model
	panelModel, cmd = m.panel.Update(msg)
	if pm, ok := panelModel.(*panel.Model); ok {
		m.panel = pm
	}
	cmds = append(cmds, cmd)

	var statusModel tea.Model
	statusModel, cmd = m.statusBar.Update(msg)
	if sm, ok := statusModel.(*status.Component); ok {
		m.statusBar = sm
	}
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// CurrentSelectionPath implements preview.Context.
func (m *Model) CurrentSelectionPath() (string, bool) {
	return m.browser.SelectedPath()
}

// VisibleElsewhere implements preview.Context: a path with a
// registered external representation is already on screen somewhere
// and must not be previewed over.
func (m *Model) VisibleElsewhere(path string) bool {
	return m.registry.Has(path)
}

// listenForEvents pumps the next broker event into Update as a message.
func (m *Model) listenForEvents() tea.Cmd {
	return func() tea.Msg {
		event := <-m.eventSub
		return event
	}
}

// handleEvent routes broker events.
func (m *Model) handleEvent(event events.Event) tea.Cmd {
	switch event.Type {
	case events.NavigationEvent:
		if payload, ok := event.Payload.(events.NavigationPayload); ok {
			return m.onNavigation(payload)
		}

	case events.DirChangedEvent:
		if payload, ok := event.Payload.(events.DirChangedPayload); ok {
			// Re-point invalidation at the directory now on screen.
			if err := m.watcher.Watch(payload.Dir); err != nil {
				return m.statusBar.ShowWarning("file watching unavailable: " + err.Error())
			}
		}

	case events.PreviewInvalidateEvent:
		if payload, ok := event.Payload.(events.InvalidatePayload); ok {
			return m.onInvalidate(payload.Paths)
		}

	case events.BrowserFocusGainedEvent:
		m.session.Activate()
		return m.navigate(browser.CmdGotoFile)

	case events.BrowserFocusLostEvent:
		return m.execDirective(m.session.Deactivate())

	case events.PreviewToggleEvent:
		return m.togglePreview()

	case events.PreviewHexToggleEvent:
		if !m.panel.ToggleHex() {
			return m.statusBar.ShowInfo("no preview to hex view")
		}

	case events.StatusMessageEvent:
		if payload, ok := event.Payload.(events.StatusMessagePayload); ok {
			switch payload.Type {
			case "warning":
				return m.statusBar.ShowWarning(payload.Message)
			case "error":
				return m.statusBar.ShowError(payload.Message)
			case "success":
				return m.statusBar.ShowSuccess(payload.Message)
			default:
				return m.statusBar.ShowInfo(payload.Message)
			}
		}
	}
	return nil
}

// onNavigation feeds one browser movement into the session coordinator.
func (m *Model) onNavigation(payload events.NavigationPayload) tea.Cmd {
	m.refreshStatusContext()
	if !m.previewEnabled {
		return nil
	}
	d := m.session.OnNavigate(preview.SelectionEvent{
		Path:    payload.Path,
		Command: payload.Command,
		Time:    time.Now(),
	})
	return m.execDirective(d)
}

// navigate synthesizes a navigation event for the current selection.
func (m *Model) navigate(command string) tea.Cmd {
	path, _ := m.browser.SelectedPath()
	return m.onNavigation(events.NavigationPayload{Path: path, Command: command})
}

// execDirective carries out a session directive.
func (m *Model) execDirective(d preview.Directive) tea.Cmd {
	switch d.Kind {
	case preview.DirectiveArm:
		return core.Debounce(debounceID, d.Gen, d.Delay)

	case preview.DirectiveRender:
		a, err := m.session.Render(d.Path)
		if err != nil {
			m.panel.Close()
			m.refreshStatusContext()
			return m.statusBar.ShowError("cannot preview " + filepath.Base(d.Path))
		}
		if a == nil {
			// Ignored; the renderer already raised its notice.
			m.panel.Close()
			m.refreshStatusContext()
			return nil
		}
		m.panel.Show(a)
		m.refreshStatusContext()
		return nil

	case preview.DirectiveClose:
		m.panel.Close()
		m.refreshStatusContext()
		return nil
	}
	return nil
}

// onInvalidate drops stale cache entries and refreshes the panel if
// the file it is showing changed on disk.
func (m *Model) onInvalidate(paths []string) tea.Cmd {
	displayed, showing := m.panel.Displaying()
	var refresh bool
	for _, p := range paths {
		m.cache.Invalidate(p)
		if showing && p == displayed {
			refresh = true
		}
	}
	if refresh {
		return m.execDirective(preview.Directive{
			Kind: preview.DirectiveRender,
			Path: displayed,
		})
	}
	return nil
}

// togglePreview flips automatic previewing on or off.
func (m *Model) togglePreview() tea.Cmd {
	if m.showHelp {
		return m.statusBar.ShowError(preview.ErrMisuse.Error())
	}
	if m.previewEnabled {
		m.previewEnabled = false
		cmd := m.execDirective(m.session.Teardown())
		return tea.Batch(cmd, m.statusBar.ShowInfo("preview off"))
	}
	m.previewEnabled = true
	m.session.Activate()
	return tea.Batch(m.navigate(browser.CmdGotoFile), m.statusBar.ShowInfo("preview on"))
}

// openHelp shows the overlay; the browser loses focus so the session
// tears down exactly as it would for any other context switch.
func (m *Model) openHelp() {
	m.showHelp = true
	m.browser.Blur()
	m.eventBroker.Publish(events.Event{Type: events.BrowserFocusLostEvent})
}

func (m *Model) closeHelp() {
	m.showHelp = false
	m.browser.Focus()
	m.eventBroker.Publish(events.Event{Type: events.BrowserFocusGainedEvent})
}

// toggleOpen registers or releases the external representation for a
// file the user opened from the browser.
func (m *Model) toggleOpen(path string) {
	if m.registry.Has(path) {
		m.registry.Deregister(path)
		m.publishStatus("Closed "+filepath.Base(path), "info")
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		m.publishStatus("Cannot open "+filepath.Base(path), "error")
		return
	}
	m.registry.Register(path, host.NewMemHandle(path, data))
	m.publishStatus("Opened "+filepath.Base(path), "success")
}

func (m *Model) publishStatus(message, level string) {
	m.eventBroker.Publish(events.Event{
		Type: events.StatusMessageEvent,
		Payload: events.StatusMessagePayload{
			Message: message,
			Type:    level,
		},
	})
}

// refreshStatusContext rebuilds the status bar's persistent segments.
func (m *Model) refreshStatusContext() {
	position := ""
	if path, ok := m.browser.SelectedPath(); ok {
		position = filepath.Base(path)
	}

	previewInfo := "preview off"
	if m.previewEnabled {
		previewInfo = "preview " + m.session.State().String()
	}

	m.statusBar.SetContext(m.browser.Dir(), position, previewInfo)
}

// applyLayout recomputes component sizes from the placement policy.
func (m *Model) applyLayout() tea.Cmd {
	const statusHeight = 1
	contentHeight := m.height - statusHeight

	place := m.placement(preview.Geometry{Width: m.width, Height: contentHeight})

	var cmds []tea.Cmd
	if place.Side == preview.SideRight {
		cmds = append(cmds, m.browser.SetSize(m.width-place.Size, contentHeight))
		cmds = append(cmds, m.panel.SetSize(place.Size, contentHeight))
	} else {
		cmds = append(cmds, m.browser.SetSize(m.width, contentHeight-place.Size))
		cmds = append(cmds, m.panel.SetSize(m.width, place.Size))
	}
	cmds = append(cmds, m.statusBar.SetSize(m.width, statusHeight))
	return tea.Batch(cmds...)
}

// shutdown releases everything the engine holds before the program
// exits.
func (m *Model) shutdown() {
	m.execDirective(m.session.Deactivate())
	m.watcher.Stop()
	m.eventBroker.Clear()
}

// View renders the entire TUI.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.showHelp {
		return m.helpView()
	}

	const statusHeight = 1
	contentHeight := m.height - statusHeight
	theme := styles.CurrentTheme()

	place := m.placement(preview.Geometry{Width: m.width, Height: contentHeight})

	browserStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderFocus)
	panelStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	var content string
	if m.panel.IsOpen() {
		if place.Side == preview.SideRight {
			browserView := browserStyle.
				Width(m.width - place.Size - 2).
				Height(contentHeight - 2).
				Render(m.browser.View())
			panelView := panelStyle.
				Width(place.Size - 2).
				Height(contentHeight - 2).
				Render(m.panel.View())
			content = lipgloss.JoinHorizontal(lipgloss.Top, browserView, panelView)
		} else {
			browserView := browserStyle.
				Width(m.width - 2).
				Height(contentHeight - place.Size - 2).
				Render(m.browser.View())
			panelView := panelStyle.
				Width(m.width - 2).
				Height(place.Size - 2).
				Render(m.panel.View())
			content = lipgloss.JoinVertical(lipgloss.Left, browserView, panelView)
		}
	} else {
		content = browserStyle.
			Width(m.width - 2).
			Height(contentHeight - 2).
			Render(m.browser.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, content, m.statusBar.View())
}

// helpView is the full-screen key reference overlay.
func (m *Model) helpView() string {
	theme := styles.CurrentTheme()

	title := theme.S().Title.Render("Glimpse")
	body := theme.S().Text.Render(`
  j / ↓      next file
  k / ↑      previous file
  g / G      first / last file
  enter / l  open file or enter directory
  h          parent directory
  m / u      mark / unmark
  backspace  unmark previous
  U          clear all marks
  x          hex view of truncated preview
  p          toggle automatic preview
  ?          this help
  q          quit`)

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderFocus).
		Padding(1, 2).
		Render(title + "\n" + body)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
