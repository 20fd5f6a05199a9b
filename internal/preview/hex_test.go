package preview

import (
	"strings"
	"testing"
)

func TestIsText(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"plain ascii", []byte("hello, world\n"), true},
		{"utf8 multibyte", []byte("héllo wörld — ☺"), true},
		{"empty", nil, true},
		{"nul byte", []byte{'a', 0x00, 'b'}, false},
		{"invalid utf8", []byte{0xff, 0xfe, 0x41}, false},
		// A chunked read can cut a rune at the boundary; the tail of a
		// valid stream must still count as text.
		{"rune split at chunk boundary", []byte("abc\xe2\x80"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsText(tt.data); got != tt.want {
				t.Errorf("IsText(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestHexDump(t *testing.T) {
	got := HexDump([]byte("ABCDEFGHIJKLMNOPQR"))
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d rows, want 2:\n%s", len(lines), got)
	}
	if !strings.HasPrefix(lines[0], "00000000  41 42 43") {
		t.Errorf("first row = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "00000010  51 52") {
		t.Errorf("second row = %q", lines[1])
	}
	if !strings.Contains(lines[0], "|ABCDEFGHIJKLMNOP|") {
		t.Errorf("printable gutter missing: %q", lines[0])
	}
	if !strings.Contains(lines[1], "|QR|") {
		t.Errorf("short row gutter = %q", lines[1])
	}
}

func TestHexDump_NonPrintable(t *testing.T) {
	got := HexDump([]byte{0x00, 0x1f, 0x7f, 'A'})
	if !strings.Contains(got, "|...A|") {
		t.Errorf("non-printables not dotted: %q", got)
	}
}

func TestHexDump_Empty(t *testing.T) {
	if got := HexDump(nil); got != "" {
		t.Errorf("HexDump(nil) = %q, want empty", got)
	}
}
