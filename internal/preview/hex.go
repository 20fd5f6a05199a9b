package preview

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
)

// TruncationMarker is appended to every partial preview so a capped
// rendering is never mistaken for the whole file.
const TruncationMarker = "\n--- preview truncated ---\n"

const hexRowBytes = 16

// IsText reports whether data is plausibly decodable as text: valid
// UTF-8 with no NUL bytes. A ranged read can split a multi-byte rune at
// the end of the chunk, so a trailing incomplete rune is tolerated.
func IsText(data []byte) bool {
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			// Tolerate a rune cut off by the chunk boundary.
			if len(data) < utf8.UTFMax && !utf8.FullRune(data) {
				return true
			}
			return false
		}
		data = data[size:]
	}
	return true
}

// HexDump renders data as a classic offset / hex / printable-gutter
// dump, 16 bytes per row.
func HexDump(data []byte) string {
	var b strings.Builder
	for off := 0; off < len(data); off += hexRowBytes {
		end := off + hexRowBytes
		if end > len(data) {
			end = len(data)
		}
		row := data[off:end]

		fmt.Fprintf(&b, "%08x  ", off)
		for i := 0; i < hexRowBytes; i++ {
			if i < len(row) {
				fmt.Fprintf(&b, "%02x ", row[i])
			} else {
				b.WriteString("   ")
			}
			if i == hexRowBytes/2-1 {
				b.WriteByte(' ')
			}
		}
		b.WriteString(" |")
		for _, c := range row {
			if c < 0x20 || c > 0x7e {
				c = '.'
			}
			b.WriteByte(c)
		}
		b.WriteString("|\n")
	}
	return b.String()
}
