package preview

import (
	"testing"
	"time"

	"github.com/glimpse-tui/glimpse/internal/host"
)

var testTriggers = []string{
	"move-next", "move-previous", "mark", "unmark",
	"unmark-backward", "delete-marker", "goto-file", "open-file",
}

func newTestSession(h *fakeHost, ctx *fakeContext) (*Session, *Cache) {
	classifier := testClassifier(1048576)
	cache := NewCache(h, classifier, NewRenderer(h, 10240), 1000000)
	s := NewSession(ctx, h, cache, classifier, SessionOptions{
		Delay:           250 * time.Millisecond,
		TriggerCommands: testTriggers,
	})
	s.Activate()
	return s, cache
}

func TestSession_FirstEligibleRendersImmediately(t *testing.T) {
	h := newFakeHost()
	h.addFile("a.txt", []byte("a"))
	h.addFile("b.txt", []byte("b"))
	ctx := &fakeContext{selection: "a.txt"}
	s, _ := newTestSession(h, ctx)

	d := s.OnNavigate(navEvent("a.txt", "move-next"))
	if d.Kind != DirectiveRender || d.Path != "a.txt" {
		t.Fatalf("first eligible selection: got %+v, want immediate render", d)
	}

	// The latch is one-shot: the next event goes through the timer.
	ctx.selection = "b.txt"
	d = s.OnNavigate(navEvent("b.txt", "move-next"))
	if d.Kind != DirectiveArm {
		t.Fatalf("second selection: got %+v, want armed timer", d)
	}
	if d.Delay != 250*time.Millisecond {
		t.Errorf("Delay = %v", d.Delay)
	}
}

func TestSession_RapidEventsCoalesce(t *testing.T) {
	h := newFakeHost()
	h.addFile("a.txt", []byte("a"))
	h.addFile("b.txt", []byte("b"))
	h.addFile("c.txt", []byte("c"))
	ctx := &fakeContext{selection: "a.txt"}
	s, _ := newTestSession(h, ctx)

	// Burn the one-shot latch.
	first := s.OnNavigate(navEvent("a.txt", "move-next"))
	if _, err := s.Render(first.Path); err != nil {
		t.Fatal(err)
	}

	// Events for a, b, c arrive faster than the delay; each arming
	// cancels the previous generation.
	ctx.selection = "a.txt"
	d1 := s.OnNavigate(navEvent("a.txt", "move-next"))
	ctx.selection = "b.txt"
	d2 := s.OnNavigate(navEvent("b.txt", "move-next"))
	ctx.selection = "c.txt"
	d3 := s.OnNavigate(navEvent("c.txt", "move-next"))

	// Stale timers fire into the void.
	if d := s.OnTimerFired(d1.Gen); d.Kind != DirectiveNone {
		t.Errorf("stale gen %d produced %+v", d1.Gen, d)
	}
	if d := s.OnTimerFired(d2.Gen); d.Kind != DirectiveNone {
		t.Errorf("stale gen %d produced %+v", d2.Gen, d)
	}

	d := s.OnTimerFired(d3.Gen)
	if d.Kind != DirectiveRender || d.Path != "c.txt" {
		t.Fatalf("settled timer: got %+v, want render of c.txt", d)
	}
	if _, err := s.Render(d.Path); err != nil {
		t.Fatal(err)
	}

	// Only the first render and c ever hit the host.
	for _, p := range h.opens {
		if p == "b.txt" {
			t.Error("intermediate path b.txt was rendered")
		}
	}
}

func TestSession_TimerRendersPathCurrentAtFiring(t *testing.T) {
	h := newFakeHost()
	h.addFile("a.txt", []byte("a"))
	h.addFile("b.txt", []byte("b"))
	ctx := &fakeContext{selection: "a.txt"}
	s, _ := newTestSession(h, ctx)

	s.OnNavigate(navEvent("a.txt", "move-next")) // latch
	d := s.OnNavigate(navEvent("a.txt", "move-next"))

	// Selection moves after the timer was armed but before it fires;
	// eligibility and path are re-derived at firing time.
	ctx.selection = "b.txt"
	fired := s.OnTimerFired(d.Gen)
	if fired.Kind != DirectiveRender || fired.Path != "b.txt" {
		t.Errorf("got %+v, want render of b.txt", fired)
	}
}

func TestSession_IneligibleTriggerClosesPanel(t *testing.T) {
	h := newFakeHost()
	h.addFile("a.txt", []byte("a"))
	ctx := &fakeContext{selection: "a.txt"}
	s, _ := newTestSession(h, ctx)

	d := s.OnNavigate(navEvent("a.txt", "move-next"))
	if _, err := s.Render(d.Path); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateDisplayed {
		t.Fatalf("state = %s", s.State())
	}

	// Cursor lands on something unreadable.
	ctx.selection = "missing"
	d = s.OnNavigate(navEvent("missing", "move-next"))
	if d.Kind != DirectiveClose {
		t.Errorf("got %+v, want close", d)
	}
	if s.State() != StateIdle {
		t.Errorf("state = %s, want idle", s.State())
	}
}

func TestSession_CloseWipesPartialStore(t *testing.T) {
	h := newFakeHost()
	h.addSized("bigdata.bin", 5000000)
	ctx := &fakeContext{selection: "bigdata.bin"}
	s, cache := newTestSession(h, ctx)

	d := s.OnNavigate(navEvent("bigdata.bin", "move-next"))
	a, err := s.Render(d.Path)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Partial || cache.Len() != 1 {
		t.Fatalf("want one partial artifact tracked, got Partial=%v Len=%d", a.Partial, cache.Len())
	}

	// Cursor lands on something unreadable; the close must take the
	// partial store with it, not leave it for teardown.
	ctx.selection = "missing"
	d = s.OnNavigate(navEvent("missing", "move-next"))
	if d.Kind != DirectiveClose {
		t.Fatalf("got %+v, want close", d)
	}
	if cache.Len() != 0 {
		t.Errorf("partial artifact survived the close, cache.Len() = %d", cache.Len())
	}
}

func TestSession_IneligibleNonTriggerDoesNothing(t *testing.T) {
	h := newFakeHost()
	ctx := &fakeContext{selection: "missing"}
	s, _ := newTestSession(h, ctx)

	d := s.OnNavigate(navEvent("missing", "unrelated-command"))
	if d.Kind != DirectiveNone {
		t.Errorf("got %+v, want none", d)
	}
}

func TestSession_VisibleElsewhereIsIneligible(t *testing.T) {
	h := newFakeHost()
	h.addFile("a.txt", []byte("a"))
	ctx := &fakeContext{
		selection: "a.txt",
		visible:   map[string]bool{"a.txt": true},
	}
	s, _ := newTestSession(h, ctx)

	d := s.OnNavigate(navEvent("a.txt", "move-next"))
	if d.Kind != DirectiveClose {
		t.Errorf("got %+v, want close for path visible elsewhere", d)
	}
}

func TestSession_DeactivateTearsDownAndResetsLatch(t *testing.T) {
	h := newFakeHost()
	h.addFile("a.txt", []byte("a"))
	h.addSized("big.log", 5000000)
	ctx := &fakeContext{selection: "big.log"}
	s, cache := newTestSession(h, ctx)

	d := s.OnNavigate(navEvent("big.log", "move-next"))
	if _, err := s.Render(d.Path); err != nil {
		t.Fatal(err)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected one partial entry, got %d", cache.Len())
	}

	d = s.Deactivate()
	if d.Kind != DirectiveClose {
		t.Errorf("Deactivate: got %+v, want close", d)
	}
	if cache.Len() != 0 {
		t.Error("partial store survived teardown")
	}
	if s.Active() {
		t.Error("session still active after focus loss")
	}

	// Navigation while inactive does nothing at all.
	ctx.selection = "a.txt"
	if d := s.OnNavigate(navEvent("a.txt", "move-next")); d.Kind != DirectiveNone {
		t.Errorf("inactive session produced %+v", d)
	}

	// Reactivation resets the one-shot latch.
	s.Activate()
	if d := s.OnNavigate(navEvent("a.txt", "move-next")); d.Kind != DirectiveRender {
		t.Errorf("after reactivation: got %+v, want immediate render", d)
	}
}

func TestSession_PendingTimerCancelledByTeardown(t *testing.T) {
	h := newFakeHost()
	h.addFile("a.txt", []byte("a"))
	h.addFile("b.txt", []byte("b"))
	ctx := &fakeContext{selection: "a.txt"}
	s, _ := newTestSession(h, ctx)

	s.OnNavigate(navEvent("a.txt", "move-next")) // latch
	ctx.selection = "b.txt"
	d := s.OnNavigate(navEvent("b.txt", "move-next"))
	if d.Kind != DirectiveArm {
		t.Fatalf("got %+v", d)
	}

	s.Deactivate()
	s.Activate()
	if fired := s.OnTimerFired(d.Gen); fired.Kind != DirectiveNone {
		t.Errorf("timer survived teardown: %+v", fired)
	}
}

func TestSession_RenderEvictsOnPathChange(t *testing.T) {
	h := newFakeHost()
	h.addSized("a.txt", 600000)
	h.addSized("b.txt", 500000)
	h.addSized("c.txt", 100)
	ctx := &fakeContext{selection: "a.txt"}
	s, _ := newTestSession(h, ctx)

	a, _ := s.Render("a.txt")
	b, _ := s.Render("b.txt")
	// Showing c closes b's preview; a and b total 1.1M, over the 1M
	// threshold, so the oldest non-displayed entry goes.
	if _, err := s.Render("c.txt"); err != nil {
		t.Fatal(err)
	}

	if !a.Handle.(*host.MemHandle).Closed() {
		t.Error("oldest closed preview was not evicted")
	}
	if b.Handle.(*host.MemHandle).Closed() {
		t.Error("eviction destroyed more than one entry")
	}
}

func TestSession_UnreadableRenderFallsBackToIdle(t *testing.T) {
	h := newFakeHost()
	ctx := &fakeContext{selection: "gone"}
	s, _ := newTestSession(h, ctx)

	if a, _ := s.Render("gone"); a != nil {
		t.Fatalf("got artifact %+v for unreadable path", a)
	}
	if s.State() != StateIdle || s.Displayed() != "" {
		t.Errorf("state = %s displayed = %q", s.State(), s.Displayed())
	}
}
