// Package transpath locates and rewrites values inside generic JSON trees
// (as produced by encoding/json into map[string]interface{}/[]interface{})
// using a structured path of key/index segments, and matches such paths
// against wildcard patterns.
package transpath

import (
	"encoding/json"
	"strconv"
	"strings"

	"rgsstrans/internal/rgerrors"
)

// SegmentKind distinguishes object-key access from array-index access.
type SegmentKind int

const (
	KeySegment SegmentKind = iota
	IndexSegment
)

// Segment is one step in a Path: either an object key or an array index.
type Segment struct {
	Kind  SegmentKind
	Key   string
	Index int
}

// Key builds an object-key segment.
func Key(k string) Segment { return Segment{Kind: KeySegment, Key: k} }

// Index builds an array-index segment.
func Index(i int) Segment { return Segment{Kind: IndexSegment, Index: i} }

func (s Segment) String() string {
	if s.Kind == IndexSegment {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

// Path is a structured route to a value inside a JSON tree, e.g.
// events.5.pages.0.list.12.parameters.0.
type Path struct {
	segments []Segment
}

// New returns the empty (root) path.
func New() Path { return Path{} }

// FromSegments builds a path from an explicit segment list.
func FromSegments(segments []Segment) Path {
	return Path{segments: append([]Segment(nil), segments...)}
}

// Parse parses the dotted string form. A segment that is entirely decimal
// digits is an index; anything else is a key. An empty segment (consecutive
// or leading/trailing dots) is an error.
func Parse(s string) (Path, error) {
	if s == "" {
		return New(), nil
	}
	parts := strings.Split(s, ".")
	segments := make([]Segment, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			return Path{}, rgerrors.NewPathError(s, rgerrors.ErrInvalidFormat)
		}
		if isDecimal(part) {
			idx, err := strconv.Atoi(part)
			if err != nil {
				return Path{}, rgerrors.NewPathError(part, err)
			}
			segments = append(segments, Index(idx))
			continue
		}
		segments = append(segments, Key(part))
	}
	return Path{segments: segments}, nil
}

func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segments) }

// IsEmpty reports whether this is the root path.
func (p Path) IsEmpty() bool { return len(p.segments) == 0 }

// Segments returns the path's segments. The caller must not mutate it.
func (p Path) Segments() []Segment { return p.segments }

// AppendKey returns a new path with a key segment appended.
func (p Path) AppendKey(key string) Path {
	return Path{segments: append(append([]Segment(nil), p.segments...), Key(key))}
}

// AppendIndex returns a new path with an index segment appended.
func (p Path) AppendIndex(index int) Path {
	return Path{segments: append(append([]Segment(nil), p.segments...), Index(index))}
}

// Append returns a new path with other's segments appended to p's.
func (p Path) Append(other Path) Path {
	combined := append(append([]Segment(nil), p.segments...), other.segments...)
	return Path{segments: combined}
}

// Parent returns all but the last segment, and false if p is already root.
func (p Path) Parent() (Path, bool) {
	if len(p.segments) == 0 {
		return Path{}, false
	}
	return Path{segments: p.segments[:len(p.segments)-1]}, true
}

// Last returns the final segment, and false if p is root.
func (p Path) Last() (Segment, bool) {
	if len(p.segments) == 0 {
		return Segment{}, false
	}
	return p.segments[len(p.segments)-1], true
}

// Get walks json (a decoded map[string]interface{}/[]interface{} tree) along
// p's segments and returns the value found, or false if any segment fails
// to resolve.
func (p Path) Get(json interface{}) (interface{}, bool) {
	current := json
	for _, seg := range p.segments {
		switch seg.Kind {
		case KeySegment:
			obj, ok := current.(map[string]interface{})
			if !ok {
				return nil, false
			}
			current, ok = obj[seg.Key]
			if !ok {
				return nil, false
			}
		case IndexSegment:
			arr, ok := current.([]interface{})
			if !ok || seg.Index < 0 || seg.Index >= len(arr) {
				return nil, false
			}
			current = arr[seg.Index]
		}
	}
	return current, true
}

// Set writes value at p's location inside *root. An empty path replaces
// *root entirely. Non-empty paths mutate the parent container in place, so
// the map/slice referenced from *root must already exist up to the parent.
func (p Path) Set(root *interface{}, value interface{}) error {
	if len(p.segments) == 0 {
		*root = value
		return nil
	}

	parentPath, _ := p.Parent()
	parent, ok := parentPath.Get(*root)
	if !ok {
		return rgerrors.NewPathError(parentPath.String(), rgerrors.ErrEntryNotFound)
	}

	last, _ := p.Last()
	switch last.Kind {
	case KeySegment:
		obj, ok := parent.(map[string]interface{})
		if !ok {
			return rgerrors.NewPathError(last.String(), rgerrors.ErrNotAnObject)
		}
		obj[last.Key] = value
		return nil
	case IndexSegment:
		arr, ok := parent.([]interface{})
		if !ok {
			return rgerrors.NewPathError(last.String(), rgerrors.ErrNotAnArray)
		}
		if last.Index < 0 || last.Index >= len(arr) {
			return rgerrors.NewPathError(last.String(), rgerrors.ErrIndexOutOfRange)
		}
		arr[last.Index] = value
		return nil
	default:
		return rgerrors.ErrInvalidFormat
	}
}

// String returns the dotted-string representation, e.g. "events.5.pages.0".
func (p Path) String() string {
	parts := make([]string, len(p.segments))
	for i, seg := range p.segments {
		parts[i] = seg.String()
	}
	return strings.Join(parts, ".")
}

// UnitID builds a translation unit identifier from this path and a suffix,
// e.g. "events.1.pages.0.list.5_dialogue". An empty suffix yields the bare
// path string.
func (p Path) UnitID(suffix string) string {
	base := p.String()
	if suffix == "" {
		return base
	}
	return base + "_" + suffix
}

// MarshalJSON encodes the path as its dotted string form.
func (p Path) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a dotted string form back into a Path.
func (p *Path) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
