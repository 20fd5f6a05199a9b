package preview

import (
	"errors"
	"testing"

	"github.com/glimpse-tui/glimpse/internal/host"
)

func newTestCache(h *fakeHost, threshold int64) *Cache {
	classifier := testClassifier(1048576)
	return NewCache(h, classifier, NewRenderer(h, 10240), threshold)
}

func TestCache_DedupIdentity(t *testing.T) {
	h := newFakeHost()
	h.addFile("notes.txt", []byte("hello"))
	c := newTestCache(h, 1000000)

	first, err := c.GetOrRender("notes.txt")
	if err != nil {
		t.Fatalf("GetOrRender: %v", err)
	}
	second, err := c.GetOrRender("notes.txt")
	if err != nil {
		t.Fatalf("GetOrRender: %v", err)
	}
	if first != second {
		t.Error("second lookup returned a different artifact")
	}
	if len(h.opens) != 1 {
		t.Errorf("content opened %d times, want 1", len(h.opens))
	}
}

func TestCache_PartialStoreDedups(t *testing.T) {
	h := newFakeHost()
	h.addSized("big.log", 5000000)
	c := newTestCache(h, 1000000)

	first, _ := c.GetOrRender("big.log")
	second, _ := c.GetOrRender("big.log")
	if first == nil || first != second {
		t.Error("partial artifact not deduplicated")
	}
}

func TestCache_ExternalRepresentationIsUnmanaged(t *testing.T) {
	h := newFakeHost()
	h.addFile("open.go", []byte("package main"))
	h.reps["open.go"] = host.NewMemHandle("open.go", []byte("edited elsewhere"))
	c := newTestCache(h, 1000000)

	a, err := c.GetOrRender("open.go")
	if err != nil {
		t.Fatalf("GetOrRender: %v", err)
	}
	if a.Managed {
		t.Error("externally-owned representation came back managed")
	}
	if string(a.Handle.Bytes()) != "edited elsewhere" {
		t.Error("existing representation was not reused")
	}
	if len(h.opens) != 0 {
		t.Error("render happened despite existing representation")
	}
	if c.Len() != 0 {
		t.Error("external representation was registered for eviction tracking")
	}
}

func TestCache_IgnoredYieldsNothing(t *testing.T) {
	h := newFakeHost()
	h.addFile("movie.mkv", []byte("x"))
	c := newTestCache(h, 1000000)

	a, err := c.GetOrRender("movie.mkv")
	if err != nil || a != nil {
		t.Errorf("got (%+v, %v), want (nil, nil)", a, err)
	}
	if c.Len() != 0 {
		t.Error("ignored path left an entry behind")
	}
}

func TestCache_UnreadableWrapped(t *testing.T) {
	h := newFakeHost()
	c := newTestCache(h, 1000000)

	if _, err := c.GetOrRender("missing"); !errors.Is(err, ErrUnreadable) {
		t.Errorf("err = %v, want ErrUnreadable", err)
	}
}

func TestCache_EvictOne_OldestFirst(t *testing.T) {
	h := newFakeHost()
	h.addSized("a.txt", 600000)
	h.addSized("b.txt", 500000)
	c := newTestCache(h, 1000000)

	a, _ := c.GetOrRender("a.txt")
	b, _ := c.GetOrRender("b.txt")

	// Teardown shape: neither displayed, total 1.1M over a 1M threshold.
	c.EvictOne("")

	if !a.Handle.(*host.MemHandle).Closed() {
		t.Error("oldest artifact survived the pass")
	}
	if b.Handle.(*host.MemHandle).Closed() {
		t.Error("newer artifact was destroyed in the same pass")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d after one pass, want 1", c.Len())
	}
}

func TestCache_EvictOne_AtMostOnePerPass(t *testing.T) {
	h := newFakeHost()
	h.addSized("a.txt", 600000)
	h.addSized("b.txt", 600000)
	h.addSized("c.txt", 600000)
	c := newTestCache(h, 1000000)

	c.GetOrRender("a.txt")
	c.GetOrRender("b.txt")
	c.GetOrRender("c.txt")

	c.EvictOne("")
	if c.Len() != 2 {
		t.Fatalf("first pass destroyed %d entries, want 1", 3-c.Len())
	}
	c.EvictOne("")
	if c.Len() != 1 {
		t.Fatalf("second pass left %d entries, want 1", c.Len())
	}
	// 600000 < threshold now; nothing more to reclaim.
	c.EvictOne("")
	if c.Len() != 1 {
		t.Error("pass below threshold still destroyed an entry")
	}
}

func TestCache_EvictOne_SkipsDisplayed(t *testing.T) {
	h := newFakeHost()
	h.addSized("a.txt", 600000)
	h.addSized("b.txt", 500000)
	c := newTestCache(h, 1000000)

	a, _ := c.GetOrRender("a.txt")
	b, _ := c.GetOrRender("b.txt")

	c.EvictOne("a.txt")

	if a.Handle.(*host.MemHandle).Closed() {
		t.Error("currently displayed artifact was destroyed")
	}
	if !b.Handle.(*host.MemHandle).Closed() {
		t.Error("non-displayed candidate survived")
	}
}

func TestCache_EvictOne_DestroyFailureSkipsPass(t *testing.T) {
	h := newFakeHost()
	h.addSized("a.txt", 600000)
	h.addSized("b.txt", 500000)
	c := newTestCache(h, 1000000)

	a, _ := c.GetOrRender("a.txt")
	b, _ := c.GetOrRender("b.txt")
	a.Handle.(*host.MemHandle).SetModified(true)

	c.EvictOne("")

	// The failed candidate stays, and no other candidate is tried in
	// the same invocation.
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if b.Handle.(*host.MemHandle).Closed() {
		t.Error("pass retried another candidate after a destroy failure")
	}
}

func TestCache_ThresholdOvershootBounded(t *testing.T) {
	h := newFakeHost()
	h.addSized("a.txt", 400000)
	h.addSized("b.txt", 400000)
	h.addSized("c.txt", 400000)
	c := newTestCache(h, 1000000)

	c.GetOrRender("a.txt")
	c.GetOrRender("b.txt")
	c.GetOrRender("c.txt")

	c.EvictOne("")

	// After a pass the cumulative size may exceed the threshold by at
	// most the size of the single most-recently-retained entry.
	if got := c.managedSize(); got > 1000000+400000 {
		t.Errorf("managed size %d exceeds threshold by more than one entry", got)
	}
}

func TestCache_WipePartial(t *testing.T) {
	h := newFakeHost()
	h.addSized("big.log", 5000000)
	h.addFile("notes.txt", []byte("keep me"))
	c := newTestCache(h, 1000000)

	p, _ := c.GetOrRender("big.log")
	f, _ := c.GetOrRender("notes.txt")

	c.WipePartial()

	if !p.Handle.(*host.MemHandle).Closed() {
		t.Error("partial artifact survived the wipe")
	}
	if f.Handle.(*host.MemHandle).Closed() {
		t.Error("wipe touched the fully-rendered store")
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestCache_Invalidate(t *testing.T) {
	h := newFakeHost()
	h.addFile("notes.txt", []byte("v1"))
	c := newTestCache(h, 1000000)

	first, _ := c.GetOrRender("notes.txt")
	c.Invalidate("notes.txt")
	h.addFile("notes.txt", []byte("v2"))

	second, err := c.GetOrRender("notes.txt")
	if err != nil {
		t.Fatalf("GetOrRender after invalidate: %v", err)
	}
	if second == first {
		t.Error("invalidated entry was returned again")
	}
	if string(second.Handle.Bytes()) != "v2" {
		t.Error("stale content after invalidation")
	}
}
