package preview

import (
	"fmt"

	"github.com/glimpse-tui/glimpse/internal/host"
)

// Renderer turns a classified target into a preview artifact. One
// strategy per kind; the dispatch is a closed switch over the kind set.
//
// OnNotice, when set, receives informational notices (an ignored path,
// for example). It mirrors the watcher's onChange callback style so the
// engine stays free of UI imports.
type Renderer struct {
	host      host.Host
	chunkSize int64
	OnNotice  func(string)
}

// NewRenderer creates a renderer reading through h. chunkSize caps how
// many bytes an oversized file contributes to its partial preview.
func NewRenderer(h host.Host, chunkSize int64) *Renderer {
	return &Renderer{host: h, chunkSize: chunkSize}
}

// Render produces the artifact for t, or nil for kinds that yield no
// preview. Read failures come back wrapped in ErrUnreadable; the caller
// treats them as "not previewable" and shows nothing.
func (r *Renderer) Render(t Target) (*Artifact, error) {
	switch t.Kind {
	case KindIgnored:
		r.notice(fmt.Sprintf("Ignoring %s", t.Path))
		return nil, nil
	case KindOversized:
		return r.renderOversized(t)
	case KindDirectory:
		return r.renderDirectory(t)
	case KindDefault, KindImage:
		return r.renderFull(t)
	default:
		return nil, fmt.Errorf("no renderer for kind %s", t.Kind)
	}
}

// renderFull opens the complete content in quiet mode: no history
// tracking, no per-file local configuration, no incidental notices.
func (r *Renderer) renderFull(t Target) (*Artifact, error) {
	h, err := r.host.QuietFullOpen(t.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return &Artifact{
		Path:    t.Path,
		Kind:    t.Kind,
		Handle:  h,
		Size:    h.Len(),
		Managed: true,
	}, nil
}

func (r *Renderer) renderDirectory(t Target) (*Artifact, error) {
	h, err := r.host.QuietDirectoryListing(t.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	return &Artifact{
		Path:    t.Path,
		Kind:    KindDirectory,
		Handle:  h,
		Size:    h.Len(),
		Managed: true,
	}, nil
}

// renderOversized reads only the leading chunk into a detached
// read-only handle. The handle is deliberately not bound to the real
// file: it cannot be saved and does not collide if the file is opened
// elsewhere. Non-text chunks switch to a hex view. The truncation
// marker is always appended.
func (r *Renderer) renderOversized(t Target) (*Artifact, error) {
	data, err := r.host.ReadByteRange(t.Path, 0, r.chunkSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	// The chunk may alias the host's own buffer; never grow it in
	// place.
	var content []byte
	if IsText(data) {
		content = append(content, data...)
	} else {
		content = []byte(HexDump(data))
	}
	content = append(content, []byte(TruncationMarker)...)

	h := host.NewDetachedHandle(t.Path+" (partial)", content)
	return &Artifact{
		Path:    t.Path,
		Kind:    KindOversized,
		Handle:  h,
		Size:    h.Len(),
		Partial: true,
		Managed: true,
	}, nil
}

func (r *Renderer) notice(msg string) {
	if r.OnNotice != nil {
		r.OnNotice(msg)
	}
}
