// Package watcher invalidates stale previews when files change on
// disk.
//
// An fsnotify backend reports raw events for the browsed directory;
// the watcher debounces them (cancel-and-restart on every new change)
// and, once things settle, hands the changed paths to a callback. The
// TUI wires that callback to the preview cache's Invalidate, so a file
// modified underneath a cached preview gets re-rendered on the next
// selection instead of showing stale content.
//
// The callback runs on the watcher's goroutine; the TUI bridges it
// back onto the UI loop through the event broker.
package watcher
