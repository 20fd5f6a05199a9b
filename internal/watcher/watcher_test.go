package watcher

import (
	"sort"
	"sync"
	"testing"
	"time"
)

// collector gathers onChange invocations safely across goroutines.
type collector struct {
	mu      sync.Mutex
	batches [][]string
}

func (c *collector) onChange(paths []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sort.Strings(paths)
	c.batches = append(c.batches, paths)
}

func (c *collector) snapshot() [][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([][]string(nil), c.batches...)
}

func TestWatcher_DebouncesBurstIntoOneBatch(t *testing.T) {
	var col collector
	w := NewWatcher(50*time.Millisecond, col.onChange)
	defer w.Stop()

	w.FileChanged("a.txt")
	w.FileChanged("b.txt")
	w.FileChanged("a.txt")

	time.Sleep(150 * time.Millisecond)

	batches := col.snapshot()
	if len(batches) != 1 {
		t.Fatalf("got %d batches, want 1: %v", len(batches), batches)
	}
	want := []string{"a.txt", "b.txt"}
	got := batches[0]
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("batch = %v, want %v", got, want)
	}
}

func TestWatcher_NewChangeRestartsTimer(t *testing.T) {
	var col collector
	w := NewWatcher(80*time.Millisecond, col.onChange)
	defer w.Stop()

	w.FileChanged("a.txt")
	time.Sleep(40 * time.Millisecond)
	w.FileChanged("b.txt")
	time.Sleep(40 * time.Millisecond)

	// Only 40ms since the last change; nothing should have fired yet.
	if batches := col.snapshot(); len(batches) != 0 {
		t.Fatalf("fired before the window settled: %v", batches)
	}

	time.Sleep(100 * time.Millisecond)
	if batches := col.snapshot(); len(batches) != 1 {
		t.Errorf("got %d batches after settling, want 1", len(batches))
	}
}

func TestWatcher_IgnoresNoise(t *testing.T) {
	var col collector
	w := NewWatcher(30*time.Millisecond, col.onChange)
	defer w.Stop()

	w.FileChanged(".hidden")
	w.FileChanged("project/.git/index")
	w.FileChanged("notes.swp")

	time.Sleep(100 * time.Millisecond)
	if batches := col.snapshot(); len(batches) != 0 {
		t.Errorf("ignored paths produced batches: %v", batches)
	}
}

func TestWatcher_RewatchFollowsDirectory(t *testing.T) {
	var col collector
	w := NewWatcher(50*time.Millisecond, col.onChange)
	defer w.Stop()

	first := t.TempDir()
	second := t.TempDir()

	if err := w.Watch(first); err != nil {
		t.Fatalf("Watch(%s): %v", first, err)
	}
	if got := w.Dir(); got != first {
		t.Fatalf("Dir() = %s, want %s", got, first)
	}

	// Descending into another directory re-points the watch and drops
	// the old one.
	if err := w.Watch(second); err != nil {
		t.Fatalf("Watch(%s): %v", second, err)
	}
	if got := w.Dir(); got != second {
		t.Errorf("Dir() = %s, want %s", got, second)
	}
}

func TestWatcher_StopCancelsPending(t *testing.T) {
	var col collector
	w := NewWatcher(50*time.Millisecond, col.onChange)

	w.FileChanged("a.txt")
	w.Stop()

	time.Sleep(120 * time.Millisecond)
	if batches := col.snapshot(); len(batches) != 0 {
		t.Errorf("stopped watcher still fired: %v", batches)
	}
}
