// Package textenc decodes archive entry names for display. RGSS archives
// from the RPG Maker XP/VX era sometimes embed Shift-JIS encoded names
// rather than UTF-8; this package supplies the fallback decode used only
// when printing names to a terminal, never when deciding what bytes to
// write for an extracted file.
package textenc

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// DecodeEntryName returns b as a UTF-8 string for display. If b is already
// valid UTF-8 it is returned unchanged; otherwise a Shift-JIS decode is
// attempted, falling back to a raw (possibly mangled) UTF-8
// reinterpretation if that also fails.
func DecodeEntryName(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}
