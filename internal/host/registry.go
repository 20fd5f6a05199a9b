package host

import "github.com/glimpse-tui/glimpse/internal/csync"

// Registry tracks content representations that exist for reasons
// unrelated to previewing, keyed by path. The preview engine treats
// anything found here as externally owned: it is returned as-is and is
// never evicted or closed.
//
// It is safe for concurrent use; the disk watcher goroutine reads it
// while the UI loop writes.
type Registry struct {
	handles *csync.Map[string, Handle]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: csync.NewMap[string, Handle]()}
}

// Register records an externally-owned handle for path.
func (r *Registry) Register(path string, h Handle) {
	r.handles.Set(path, h)
}

// Deregister forgets the handle for path. The handle itself is left
// alone; its owner closes it.
func (r *Registry) Deregister(path string) {
	r.handles.Delete(path)
}

// Lookup returns the externally-owned handle for path, if any.
func (r *Registry) Lookup(path string) (Handle, bool) {
	return r.handles.Get(path)
}

// Has reports whether path has an externally-owned representation.
func (r *Registry) Has(path string) bool {
	return r.handles.Has(path)
}
