package host

import "fmt"

// MemHandle is an in-memory content representation. It backs both full
// opens (content read from disk) and detached partial copies that are
// deliberately not bound to the real file, so they cannot be saved and
// do not collide if the real file is opened elsewhere.
type MemHandle struct {
	name     string
	data     []byte
	readOnly bool
	modified bool
	closed   bool
}

// NewMemHandle creates a handle over data.
func NewMemHandle(name string, data []byte) *MemHandle {
	return &MemHandle{name: name, data: data}
}

// NewDetachedHandle creates a read-only handle over data that is not
// bound to any file on disk.
func NewDetachedHandle(name string, data []byte) *MemHandle {
	return &MemHandle{name: name, data: data, readOnly: true}
}

// Name returns the handle's label.
func (h *MemHandle) Name() string { return h.name }

// Bytes returns the content.
func (h *MemHandle) Bytes() []byte { return h.data }

// Len returns the content length.
func (h *MemHandle) Len() int64 { return int64(len(h.data)) }

// ReadOnly reports whether the content may be edited.
func (h *MemHandle) ReadOnly() bool { return h.readOnly }

// SetModified marks the content as changed since creation. A modified
// handle refuses to close, so an eviction pass skips it.
func (h *MemHandle) SetModified(modified bool) { h.modified = modified }

// Closed reports whether the handle has been released.
func (h *MemHandle) Closed() bool { return h.closed }

// Close releases the content. Modified handles are unsafe to discard
// and return an error instead.
func (h *MemHandle) Close() error {
	if h.modified {
		return fmt.Errorf("handle %q has unsaved modifications", h.name)
	}
	h.closed = true
	h.data = nil
	return nil
}
