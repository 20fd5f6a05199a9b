package preview

import (
	"fmt"

	"github.com/glimpse-tui/glimpse/internal/host"
)

// Artifact is a rendered preview representation.
//
// Managed reports ownership: a managed artifact was created by this
// engine and is destroyed by it. Managed=false marks a representation
// that existed for reasons unrelated to previewing (the file is open
// elsewhere in the UI); such artifacts are immutable to this engine and
// are never evicted or destroyed.
type Artifact struct {
	Path    string
	Kind    Kind
	Handle  host.Handle
	Size    int64
	Partial bool
	Managed bool
}

// Destroy releases a managed artifact's content. Destroying an
// unmanaged artifact is a no-op. A handle that is unsafe to discard
// reports ErrDestroyFailed and stays alive.
func (a *Artifact) Destroy() error {
	if !a.Managed {
		return nil
	}
	if err := a.Handle.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrDestroyFailed, err)
	}
	return nil
}
