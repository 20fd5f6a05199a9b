package host

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FS is the real-filesystem Host. Externally-owned representations are
// looked up in an optional Registry, so content already open elsewhere
// in the UI is reused instead of re-read.
type FS struct {
	registry *Registry
}

// NewFS creates a filesystem host. registry may be nil.
func NewFS(registry *Registry) *FS {
	return &FS{registry: registry}
}

// Stat returns live metadata for path.
func (fs *FS) Stat(path string) (Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("stat %s: %w", path, err)
	}
	return Metadata{
		Size:      info.Size(),
		IsDir:     info.IsDir(),
		IsRegular: info.Mode().IsRegular(),
		Readable:  readable(path),
	}, nil
}

// QuietFullOpen reads the whole file into a managed handle.
func (fs *FS) QuietFullOpen(path string) (Handle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return NewMemHandle(filepath.Base(path), data), nil
}

// QuietDirectoryListing renders a sorted listing of a directory,
// directories first, one entry per line.
func (fs *FS) QuietDirectoryListing(path string) (Handle, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir() != entries[j].IsDir() {
			return entries[i].IsDir()
		}
		return entries[i].Name() < entries[j].Name()
	})

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", path)
	for _, entry := range entries {
		if entry.IsDir() {
			fmt.Fprintf(&b, "  %s/\n", entry.Name())
			continue
		}
		size := int64(0)
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}
		fmt.Fprintf(&b, "  %-40s %8d\n", entry.Name(), size)
	}
	if len(entries) == 0 {
		b.WriteString("  (empty)\n")
	}
	return NewMemHandle(filepath.Base(path)+"/", []byte(b.String())), nil
}

// ReadByteRange reads up to length bytes starting at offset. Short
// files yield short slices.
func (fs *FS) ReadByteRange(path string, offset, length int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if offset > 0 {
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seek %s: %w", path, err)
		}
	}
	buf := make([]byte, length)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return buf[:n], nil
}

// Representation consults the registry for an externally-owned handle.
func (fs *FS) Representation(path string) (Handle, bool) {
	if fs.registry == nil {
		return nil, false
	}
	return fs.registry.Lookup(path)
}

// readable reports whether the current process can open path for
// reading. Cheaper permission bits lie on some filesystems, so just
// try.
func readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}
