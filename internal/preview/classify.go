package preview

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/glimpse-tui/glimpse/internal/host"
)

// Kind tags the render strategy for a selected path. The set is closed;
// the renderer dispatches over it exhaustively.
type Kind int

const (
	// KindDefault is a previewable regular file rendered in full.
	KindDefault Kind = iota

	// KindIgnored is filtered out by the ignored-extension pattern.
	KindIgnored

	// KindOversized exceeds the maximum previewable size and gets a
	// partial, detached rendering.
	KindOversized

	// KindImage matches the image-extension pattern.
	KindImage

	// KindDirectory is a directory, previewed as a listing.
	KindDirectory
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindIgnored:
		return "ignored"
	case KindOversized:
		return "oversized"
	case KindImage:
		return "image"
	case KindDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// Target is the result of classifying a path against live metadata.
// Targets are never cached: metadata can change between calls, so
// classification is recomputed every time.
type Target struct {
	Path string
	Kind Kind
}

// ClassifierOptions configure a Classifier.
type ClassifierOptions struct {
	// IgnoredExtensionPattern matches extensions (without the dot)
	// that are never previewed. Empty disables filtering.
	IgnoredExtensionPattern string

	// ImageExtensionPattern matches extensions rendered as images.
	ImageExtensionPattern string

	// MaxPreviewableSize is the size in bytes above which a file gets
	// a partial preview instead of a full one.
	MaxPreviewableSize int64
}

// Classifier maps a path plus its metadata to a render strategy. It is
// pure: the only outside input is the metadata the caller passes in.
type Classifier struct {
	ignored *regexp.Regexp // nil disables filtering
	image   *regexp.Regexp
	maxSize int64
}

// NewClassifier compiles the configured patterns.
func NewClassifier(opts ClassifierOptions) (*Classifier, error) {
	c := &Classifier{maxSize: opts.MaxPreviewableSize}

	if opts.IgnoredExtensionPattern != "" {
		re, err := regexp.Compile(opts.IgnoredExtensionPattern)
		if err != nil {
			return nil, fmt.Errorf("ignored extension pattern: %w", err)
		}
		c.ignored = re
	}
	if opts.ImageExtensionPattern != "" {
		re, err := regexp.Compile(opts.ImageExtensionPattern)
		if err != nil {
			return nil, fmt.Errorf("image extension pattern: %w", err)
		}
		c.image = re
	}
	return c, nil
}

// Classify decides the render strategy for path. Decision order:
// ignored extension, oversized, image extension, directory, default.
// A blank or absent extension never matches an extension pattern.
func (c *Classifier) Classify(path string, meta host.Metadata) Target {
	ext := extension(path)

	switch {
	case !meta.IsDir && ext != "" && c.ignored != nil && c.ignored.MatchString(ext):
		return Target{Path: path, Kind: KindIgnored}
	case meta.Size > c.maxSize:
		return Target{Path: path, Kind: KindOversized}
	case ext != "" && c.image != nil && c.image.MatchString(ext):
		return Target{Path: path, Kind: KindImage}
	case meta.IsDir:
		return Target{Path: path, Kind: KindDirectory}
	default:
		return Target{Path: path, Kind: KindDefault}
	}
}

// extension returns the lower-cased extension of path without the
// leading dot, or "" when there is none.
func extension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" || ext == "." {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
