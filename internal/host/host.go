// Package host is the surface the preview engine consumes from the
// surrounding file browser: metadata lookups, quiet content opens and
// ranged reads. The engine never touches the filesystem directly, which
// keeps it testable against in-memory doubles.
package host

// Metadata is the live file metadata a classification is derived from.
// It is re-read on every call; nothing here is cached.
type Metadata struct {
	Size      int64
	IsDir     bool
	IsRegular bool
	Readable  bool
}

// Handle is an opaque content representation. What backs it (a read
// file, a formatted directory listing, a detached partial copy) is the
// producer's business.
type Handle interface {
	// Name is a human-readable label for the content.
	Name() string

	// Bytes returns the content. Callers must not mutate it.
	Bytes() []byte

	// Len returns the content length in bytes.
	Len() int64

	// Close releases the representation. A handle that is unsafe to
	// discard (modified since creation) returns an error and stays
	// alive.
	Close() error
}

// Host provides content access for previewing. "Quiet" operations
// suppress side effects that are irrelevant to a preview: no history
// tracking, no per-file local configuration, no non-essential notices.
type Host interface {
	// Stat returns live metadata for path.
	Stat(path string) (Metadata, error)

	// QuietFullOpen returns the full content of a regular file.
	QuietFullOpen(path string) (Handle, error)

	// QuietDirectoryListing returns a rendered listing of a directory.
	QuietDirectoryListing(path string) (Handle, error)

	// ReadByteRange reads up to length bytes starting at offset. A
	// short file yields a short slice, not an error.
	ReadByteRange(path string, offset, length int64) ([]byte, error)

	// Representation reports a content handle for path that already
	// exists for reasons unrelated to previewing, if any. Such handles
	// are externally owned and must never be closed by the caller.
	Representation(path string) (Handle, bool)
}
