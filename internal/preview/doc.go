// Package preview is the engine behind the automatic preview panel.
//
// A navigation event in the browser flows through a debouncing session
// coordinator into a deduplicating cache, which classifies the selected
// path, dispatches to the matching render strategy and hands the
// resulting artifact back for display. Closed previews trigger a
// bounded eviction pass; session teardown wipes partial artifacts
// wholesale.
//
// The engine is UI-free: it consumes the host.Host collaborator surface
// and a small Context interface, and answers with Directives the UI
// loop executes. All of it runs synchronously on the UI loop; the only
// suspension point is the debounce timer, represented by a generation
// counter so a stale timer is simply an ignored message.
package preview
