package events

// EventType identifies the type of event
type EventType string

const (
	// Navigation events
	NavigationEvent EventType = "nav.selection"
	DirChangedEvent EventType = "nav.dir"

	// Focus events
	BrowserFocusGainedEvent EventType = "focus.browser.gained"
	BrowserFocusLostEvent   EventType = "focus.browser.lost"

	// Preview events
	PreviewToggleEvent     EventType = "preview.toggle"
	PreviewHexToggleEvent  EventType = "preview.hex.toggle"
	PreviewInvalidateEvent EventType = "preview.invalidate"

	// UI events
	StatusMessageEvent EventType = "ui.status"
)

// Event represents an event in the system
type Event struct {
	Type    EventType
	Payload interface{}
}

// Event payload types

// NavigationPayload is a browser navigation event tagged with the
// command that produced it.
type NavigationPayload struct {
	Path    string
	Command string
}

// DirChangedPayload announces that the browser now lists a different
// directory.
type DirChangedPayload struct {
	Dir string
}

// InvalidatePayload carries paths whose previews went stale on disk.
type InvalidatePayload struct {
	Paths []string
}

// StatusMessagePayload is a transient status bar message.
type StatusMessagePayload struct {
	Message string
	Type    string // "info", "warning", "error", "success"
}
