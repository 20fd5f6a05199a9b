package preview

import (
	"fmt"

	"github.com/glimpse-tui/glimpse/internal/host"
)

// Cache dedups rendered previews and delegates to the renderer on
// miss. Two stores: fully-rendered artifacts sit in an
// insertion-ordered map so size-based eviction can walk oldest-first;
// partial artifacts sit in a plain map that is only ever wiped
// wholesale. Externally-owned representations pass straight through
// and are never registered in either store.
//
// The cache is driven from the UI loop only and therefore unlocked.
type Cache struct {
	host       host.Host
	classifier *Classifier
	renderer   *Renderer

	full    map[string]*Artifact
	order   []string // insertion order of full, oldest first
	partial map[string]*Artifact

	// threshold is the cumulative size of fully-rendered managed
	// artifacts at which eviction starts reclaiming.
	threshold int64
}

// NewCache creates a cache over h with the given eviction threshold.
func NewCache(h host.Host, classifier *Classifier, renderer *Renderer, threshold int64) *Cache {
	return &Cache{
		host:       h,
		classifier: classifier,
		renderer:   renderer,
		full:       make(map[string]*Artifact),
		partial:    make(map[string]*Artifact),
		threshold:  threshold,
	}
}

// GetOrRender returns the preview artifact for path, rendering at most
// once. A nil artifact with nil error means the path yields no preview
// (an ignored kind). Classification is recomputed on every miss;
// existing entries are returned unchanged, identity included.
func (c *Cache) GetOrRender(path string) (*Artifact, error) {
	if h, ok := c.host.Representation(path); ok {
		// Exists for unrelated reasons; reuse, never track.
		return &Artifact{
			Path:    path,
			Kind:    KindDefault,
			Handle:  h,
			Size:    h.Len(),
			Managed: false,
		}, nil
	}

	if a, ok := c.full[path]; ok {
		return a, nil
	}
	if a, ok := c.partial[path]; ok {
		return a, nil
	}

	meta, err := c.host.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}
	target := c.classifier.Classify(path, meta)

	a, err := c.renderer.Render(target)
	if err != nil || a == nil {
		return nil, err
	}

	if a.Partial {
		c.partial[path] = a
	} else {
		c.full[path] = a
		c.order = append(c.order, path)
	}
	return a, nil
}

// EvictOne runs one eviction pass. It is called once per closed
// preview, not per render: while the cumulative size of live
// fully-rendered managed artifacts is at or above the threshold and a
// candidate other than displayed exists, the single oldest candidate is
// destroyed and the pass stops. A destruction failure is tolerated by
// skipping; no other candidate is tried in the same pass.
func (c *Cache) EvictOne(displayed string) {
	if c.managedSize() < c.threshold {
		return
	}
	for _, path := range c.order {
		if path == displayed {
			continue
		}
		a := c.full[path]
		if a == nil || !a.Managed {
			continue
		}
		if err := a.Destroy(); err == nil {
			c.remove(path)
		}
		return
	}
}

// WipePartial destroys the partial store in full. Partial artifacts
// are cheap and short-lived; there is no incremental policy for them.
// Destruction failures do not abort the remainder of the wipe.
func (c *Cache) WipePartial() {
	for path, a := range c.partial {
		_ = a.Destroy()
		delete(c.partial, path)
	}
}

// Invalidate drops the entry for path from either store, so the next
// selection re-renders it. Driven by the disk watcher when a previewed
// file changes underneath the cache.
func (c *Cache) Invalidate(path string) {
	if a, ok := c.full[path]; ok {
		_ = a.Destroy()
		c.remove(path)
	}
	if a, ok := c.partial[path]; ok {
		_ = a.Destroy()
		delete(c.partial, path)
	}
}

// Len returns the number of tracked artifacts across both stores.
func (c *Cache) Len() int {
	return len(c.full) + len(c.partial)
}

// managedSize sums the sizes of live fully-rendered managed artifacts.
func (c *Cache) managedSize() int64 {
	var total int64
	for _, a := range c.full {
		if a.Managed {
			total += a.Size
		}
	}
	return total
}

// remove deletes path from the full store and its order record.
func (c *Cache) remove(path string) {
	delete(c.full, path)
	for i, p := range c.order {
		if p == path {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
