// Package archive implements the RGSS archive container format used by
// RPG Maker XP (rgssad, V1) and RPG Maker VX/VX Ace (rgss2a/rgss3a, V3).
// This is format-critical code: every byte layout here is normative and
// must round-trip bit-for-bit with the games that read these archives.
package archive

// Magic is the fixed 7-byte signature every RGSS archive starts with.
var Magic = [7]byte{'R', 'G', 'S', 'S', 'A', 'D', 0x00}

// Version identifies which on-disk layout an archive uses.
type Version byte

const (
	// VersionUnknown marks a header byte this package does not recognise.
	VersionUnknown Version = 0
	// VersionV1 is the sequential layout used by rgssad (RPG Maker XP).
	VersionV1 Version = 1
	// VersionV3 is the table-of-contents layout used by rgss2a/rgss3a
	// (RPG Maker VX / VX Ace).
	VersionV3 Version = 3
)

// maxNameLen is the V1 reader's end-of-archive heuristic: a decrypted name
// length of 0 or greater than this is treated as the end of the archive
// rather than a legitimate entry. No archive in the wild has been observed
// with a name this long; this ceiling is documented, not derived.
const maxNameLen = 1024

// HeaderSize is the number of bytes every archive starts with: the 7-byte
// magic plus the 1-byte version tag.
const HeaderSize = 8

// Entry describes one file packed inside an archive.
type Entry struct {
	// Name is the archive-relative name, with backslash path separators as
	// stored on disk.
	Name string
	// Size is the uncompressed payload size in bytes.
	Size uint32
	// Offset is the absolute byte offset of the encrypted payload within
	// the archive file.
	Offset int64
	// ContentSeed is the per-entry 32-bit seed used to re-key the content
	// cipher when extracting this entry's payload.
	ContentSeed uint32
}
