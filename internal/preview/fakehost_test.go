package preview

import (
	"fmt"
	"time"

	"github.com/glimpse-tui/glimpse/internal/host"
)

// fakeFile is one entry in the fake host's filesystem.
type fakeFile struct {
	data []byte
	meta host.Metadata
}

// fakeHost is an in-memory host.Host for engine tests. It records
// every content open so tests can assert render counts.
type fakeHost struct {
	files map[string]fakeFile
	reps  map[string]host.Handle
	opens []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		files: make(map[string]fakeFile),
		reps:  make(map[string]host.Handle),
	}
}

func (f *fakeHost) addFile(path string, data []byte) {
	f.files[path] = fakeFile{
		data: data,
		meta: host.Metadata{Size: int64(len(data)), IsRegular: true, Readable: true},
	}
}

func (f *fakeHost) addSized(path string, size int64) {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte('a' + i%26)
	}
	f.files[path] = fakeFile{
		data: data,
		meta: host.Metadata{Size: size, IsRegular: true, Readable: true},
	}
}

func (f *fakeHost) addDir(path string) {
	f.files[path] = fakeFile{
		data: []byte(path + "/\n"),
		meta: host.Metadata{IsDir: true, Readable: true},
	}
}

func (f *fakeHost) Stat(path string) (host.Metadata, error) {
	ff, ok := f.files[path]
	if !ok {
		return host.Metadata{}, fmt.Errorf("no such file: %s", path)
	}
	return ff.meta, nil
}

func (f *fakeHost) QuietFullOpen(path string) (host.Handle, error) {
	ff, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	f.opens = append(f.opens, path)
	return host.NewMemHandle(path, ff.data), nil
}

func (f *fakeHost) QuietDirectoryListing(path string) (host.Handle, error) {
	ff, ok := f.files[path]
	if !ok || !ff.meta.IsDir {
		return nil, fmt.Errorf("not a directory: %s", path)
	}
	f.opens = append(f.opens, path)
	return host.NewMemHandle(path+"/", ff.data), nil
}

func (f *fakeHost) ReadByteRange(path string, offset, length int64) ([]byte, error) {
	ff, ok := f.files[path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	f.opens = append(f.opens, path)
	data := ff.data
	if offset >= int64(len(data)) {
		return nil, nil
	}
	data = data[offset:]
	if int64(len(data)) > length {
		data = data[:length]
	}
	return data, nil
}

func (f *fakeHost) Representation(path string) (host.Handle, bool) {
	h, ok := f.reps[path]
	return h, ok
}

// fakeContext is a browser stand-in for session tests.
type fakeContext struct {
	selection string
	visible   map[string]bool
}

func (c *fakeContext) CurrentSelectionPath() (string, bool) {
	return c.selection, c.selection != ""
}

func (c *fakeContext) VisibleElsewhere(path string) bool {
	return c.visible[path]
}

// testClassifier compiles the default test patterns.
func testClassifier(maxSize int64) *Classifier {
	c, err := NewClassifier(ClassifierOptions{
		IgnoredExtensionPattern: `^(mkv|webm|mp4|mp3|flac|zip|iso)$`,
		ImageExtensionPattern:   `^(png|jpe?g|gif|bmp|webp)$`,
		MaxPreviewableSize:      maxSize,
	})
	if err != nil {
		panic(err)
	}
	return c
}

func navEvent(path, command string) SelectionEvent {
	return SelectionEvent{Path: path, Command: command, Time: time.Now()}
}
