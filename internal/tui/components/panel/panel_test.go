package panel

import (
	"strings"
	"testing"

	"github.com/glimpse-tui/glimpse/internal/host"
	"github.com/glimpse-tui/glimpse/internal/preview"
)

func fullArtifact(path string, data []byte) *preview.Artifact {
	h := host.NewMemHandle(path, data)
	return &preview.Artifact{
		Path:    path,
		Kind:    preview.KindDefault,
		Handle:  h,
		Size:    h.Len(),
		Managed: true,
	}
}

func partialArtifact(path string, chunk []byte) *preview.Artifact {
	data := append(append([]byte(nil), chunk...), []byte(preview.TruncationMarker)...)
	h := host.NewDetachedHandle(path+" (partial)", data)
	return &preview.Artifact{
		Path:    path,
		Kind:    preview.KindOversized,
		Handle:  h,
		Size:    h.Len(),
		Partial: true,
		Managed: true,
	}
}

func TestToggleHex_FullPreview(t *testing.T) {
	p := New()
	p.SetSize(80, 24)
	p.Show(fullArtifact("notes.txt", []byte("hello hex")))

	if !p.ToggleHex() {
		t.Fatal("ToggleHex refused a full preview")
	}
	body := p.renderBody()
	if !strings.HasPrefix(body, "00000000  ") {
		t.Errorf("expected hex dump, got %q", body)
	}
	if strings.Contains(body, preview.TruncationMarker) {
		t.Error("full preview gained a truncation marker in hex view")
	}

	// Flipping back restores the rendered form.
	if !p.ToggleHex() {
		t.Fatal("ToggleHex refused to flip back")
	}
	if body := p.renderBody(); strings.HasPrefix(body, "00000000  ") {
		t.Error("still in hex view after second toggle")
	}
}

func TestToggleHex_PartialKeepsMarker(t *testing.T) {
	p := New()
	p.SetSize(80, 24)
	p.Show(partialArtifact("bigdata.log", []byte("abcdefgh")))

	if !p.ToggleHex() {
		t.Fatal("ToggleHex refused a partial preview")
	}
	body := p.renderBody()
	if !strings.HasPrefix(body, "00000000  ") {
		t.Errorf("expected hex dump, got %q", body)
	}
	if !strings.HasSuffix(body, preview.TruncationMarker) {
		t.Error("truncation marker missing from hex view of partial preview")
	}
	if strings.Contains(strings.TrimSuffix(body, preview.TruncationMarker), "truncated") {
		t.Error("marker bytes leaked into the dumped chunk")
	}
}

func TestToggleHex_NothingShown(t *testing.T) {
	p := New()
	if p.ToggleHex() {
		t.Error("ToggleHex succeeded with no artifact on screen")
	}
}
