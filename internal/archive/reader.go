package archive

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"rgsstrans/internal/cipher"
	"rgsstrans/internal/rgerrors"
)

// Reader parses an RGSS archive's entry table and extracts entry payloads
// on demand. It keeps only the archive path and the entry table in memory;
// payload bytes are re-read per extraction.
type Reader struct {
	path    string
	version Version
	entries []Entry
}

// Open reads an archive's header and full entry table from path.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	version, err := detectVersion(f)
	if err != nil {
		return nil, err
	}

	r := &Reader{path: path, version: version}
	switch version {
	case VersionV1:
		if err := r.readV1(f); err != nil {
			return nil, err
		}
	case VersionV3:
		if err := r.readV3(f); err != nil {
			return nil, err
		}
	default:
		return nil, rgerrors.ErrUnsupportedVersion
	}
	return r, nil
}

// detectVersion reads the 8-byte header and validates the magic.
func detectVersion(r io.Reader) (Version, error) {
	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return VersionUnknown, rgerrors.NewFormatError("read header", err)
	}
	if !(header[0] == Magic[0] && header[1] == Magic[1] && header[2] == Magic[2] &&
		header[3] == Magic[3] && header[4] == Magic[4] && header[5] == Magic[5] && header[6] == Magic[6]) {
		return VersionUnknown, rgerrors.ErrInvalidFormat
	}
	switch Version(header[7]) {
	case VersionV1:
		return VersionV1, nil
	case VersionV3:
		return VersionV3, nil
	default:
		return VersionUnknown, rgerrors.ErrUnsupportedVersion
	}
}

// Version reports which on-disk layout this archive uses.
func (r *Reader) Version() Version { return r.version }

// Entries returns the archive's entries in the order they appear on disk.
func (r *Reader) Entries() []Entry {
	return r.entries
}

func (r *Reader) readV1(f *os.File) error {
	if _, err := f.Seek(HeaderSize, io.SeekStart); err != nil {
		return err
	}

	k := cipher.New(cipher.V1)
	for {
		nameLenEnc, err := readUint32LE(f)
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			break
		}
		if err != nil {
			return rgerrors.NewFormatError("read v1 name length", err)
		}
		nameLen := k.XorUint32(nameLenEnc)
		if nameLen == 0 || nameLen > maxNameLen {
			break
		}

		nameEnc := make([]byte, nameLen)
		if _, err := io.ReadFull(f, nameEnc); err != nil {
			return rgerrors.NewFormatError("read v1 name", err)
		}
		k.XorStringV1(nameEnc)
		name := string(nameEnc)

		sizeEnc, err := readUint32LE(f)
		if err != nil {
			return rgerrors.NewFormatError("read v1 size", err)
		}
		size := k.XorUint32(sizeEnc)

		// The content seed is the keystream state captured immediately
		// after the size field is decrypted, before the payload is skipped.
		contentSeed := k.State()

		offset, err := f.Seek(0, io.SeekCurrent)
		if err != nil {
			return err
		}

		if _, err := f.Seek(int64(size), io.SeekCurrent); err != nil {
			return rgerrors.NewFormatError("skip v1 payload", err)
		}

		r.entries = append(r.entries, Entry{
			Name:        name,
			Size:        size,
			Offset:      offset,
			ContentSeed: contentSeed,
		})
	}
	return nil
}

func (r *Reader) readV3(f *os.File) error {
	if _, err := f.Seek(HeaderSize, io.SeekStart); err != nil {
		return err
	}

	initialSeed, err := readUint32LE(f)
	if err != nil {
		return rgerrors.NewFormatError("read v3 initial seed", err)
	}

	k := cipher.WithState(cipher.V3, initialSeed)
	k.Step()

	for {
		offsetEnc, err := readUint32LE(f)
		if err != nil {
			return rgerrors.NewFormatError("read v3 offset", err)
		}
		offset := k.XorUint32(offsetEnc)
		if offset == 0 {
			break
		}

		sizeEnc, err := readUint32LE(f)
		if err != nil {
			return rgerrors.NewFormatError("read v3 size", err)
		}
		size := k.XorUint32(sizeEnc)

		seedEnc, err := readUint32LE(f)
		if err != nil {
			return rgerrors.NewFormatError("read v3 content seed", err)
		}
		contentSeed := k.XorUint32(seedEnc)

		nameLenEnc, err := readUint32LE(f)
		if err != nil {
			return rgerrors.NewFormatError("read v3 name length", err)
		}
		nameLen := k.XorUint32(nameLenEnc)

		nameEnc := make([]byte, nameLen)
		if _, err := io.ReadFull(f, nameEnc); err != nil {
			return rgerrors.NewFormatError("read v3 name", err)
		}
		k.XorStringV3(nameEnc)

		r.entries = append(r.entries, Entry{
			Name:        string(nameEnc),
			Size:        size,
			Offset:      int64(offset),
			ContentSeed: contentSeed,
		})
	}
	return nil
}

// ExtractToMemory decrypts and returns the payload bytes of one entry.
func (r *Reader) ExtractToMemory(e Entry) ([]byte, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if _, err := f.Seek(e.Offset, io.SeekStart); err != nil {
		return nil, err
	}

	payload := make([]byte, e.Size)
	if _, err := io.ReadFull(f, payload); err != nil {
		return nil, rgerrors.NewFormatError("read payload", err)
	}

	k := cipher.WithState(keystreamVersion(r.version), e.ContentSeed)
	k.XorContent(payload)
	return payload, nil
}

// ExtractAll decrypts every entry and writes it under outputDir, using the
// entry's name (with backslashes normalised to the host separator) as the
// relative path. Parent directories are created on demand.
func (r *Reader) ExtractAll(outputDir string) error {
	for _, e := range r.entries {
		if err := r.ExtractEntry(e.Name, outputDir); err != nil {
			return err
		}
	}
	return nil
}

// ExtractEntry decrypts the named entry and writes it under outputDir.
func (r *Reader) ExtractEntry(name, outputDir string) error {
	entry, ok := r.find(name)
	if !ok {
		return fmt.Errorf("%w: %s", rgerrors.ErrEntryNotFound, name)
	}

	data, err := r.ExtractToMemory(entry)
	if err != nil {
		return err
	}

	relPath := strings.ReplaceAll(entry.Name, "\\", string(filepath.Separator))
	fullPath := filepath.Join(outputDir, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fullPath, data, 0o644)
}

func (r *Reader) find(name string) (Entry, bool) {
	for _, e := range r.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

func keystreamVersion(v Version) cipher.Version {
	if v == VersionV1 {
		return cipher.V1
	}
	return cipher.V3
}

func readUint32LE(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}
