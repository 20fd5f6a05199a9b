package preview

import "errors"

// Sentinel errors for the failure modes the engine distinguishes.
// Everything here is contained at the session coordinator; none of
// these ever propagate into the host UI loop.
var (
	// ErrUnreadable marks a stat or read failure. The path is simply
	// not previewed; no panel is shown.
	ErrUnreadable = errors.New("path is not readable")

	// ErrDestroyFailed marks an artifact that cannot be safely
	// discarded during eviction or teardown. The eviction pass skips
	// it and moves on.
	ErrDestroyFailed = errors.New("artifact cannot be destroyed")

	// ErrMisuse marks the preview feature being driven outside a file
	// browsing context. Surfaced to the user as a correctable error.
	ErrMisuse = errors.New("previews only work in a file browsing context")
)
