package xlate

import (
	"sort"
	"strings"

	"rgsstrans/internal/transpath"
)

// TranslationStatus tracks where a unit sits in the translation workflow.
type TranslationStatus string

const (
	StatusPending       TranslationStatus = "pending"
	StatusTranslated    TranslationStatus = "translated"
	StatusReviewed      TranslationStatus = "reviewed"
	StatusNeedsRevision TranslationStatus = "needs_revision"
	StatusSkipped       TranslationStatus = "skipped"
)

// IsComplete reports whether this status represents a finished unit.
func (s TranslationStatus) IsComplete() bool {
	return s == StatusReviewed || s == StatusSkipped
}

// NeedsAttention reports whether this status should surface in a review queue.
func (s TranslationStatus) NeedsAttention() bool {
	return s == StatusPending || s == StatusNeedsRevision
}

// TranslationContext carries the surrounding information a translator or
// machine translation pass needs: where the text came from and what
// preceded it.
type TranslationContext struct {
	FileName       *string  `json:"file_name,omitempty"`
	MapName        *string  `json:"map_name,omitempty"`
	EventName      *string  `json:"event_name,omitempty"`
	PageIndex      *int     `json:"page_index,omitempty"`
	PrecedingLines []string `json:"preceding_lines"`
	Tags           []string `json:"tags"`
}

// AddTag appends a classification tag (e.g. "comment", "plugin:Foo").
func (c *TranslationContext) AddTag(tag string) {
	c.Tags = append(c.Tags, tag)
}

// TranslationUnit is a single piece of translatable text with its location
// and metadata.
type TranslationUnit struct {
	ID         string             `json:"id"`
	Path       transpath.Path     `json:"path"`
	Code       EventCode          `json:"code"`
	Original   string             `json:"original"`
	Translated *string            `json:"translated,omitempty"`
	Speaker    *string            `json:"speaker,omitempty"`
	Context    TranslationContext `json:"context"`
	Status     TranslationStatus  `json:"status"`
}

// NewTranslationUnit builds a pending, untranslated unit.
func NewTranslationUnit(id string, path transpath.Path, code EventCode, original string) TranslationUnit {
	return TranslationUnit{
		ID:       id,
		Path:     path,
		Code:     code,
		Original: original,
		Status:   StatusPending,
	}
}

// WithSpeaker attaches a speaker name.
func (u TranslationUnit) WithSpeaker(speaker *string) TranslationUnit {
	u.Speaker = speaker
	return u
}

// WithContext attaches surrounding context.
func (u TranslationUnit) WithContext(ctx TranslationContext) TranslationUnit {
	u.Context = ctx
	return u
}

// WithTranslation sets the translated text and marks the unit translated.
func (u TranslationUnit) WithTranslation(translation string) TranslationUnit {
	u.Translated = &translation
	u.Status = StatusTranslated
	return u
}

// IsTranslated reports whether a translation has been recorded.
func (u TranslationUnit) IsTranslated() bool { return u.Translated != nil }

// IsEmpty reports whether the original text is blank.
func (u TranslationUnit) IsEmpty() bool { return strings.TrimSpace(u.Original) == "" }

// EffectiveText returns the translation if present, otherwise the original.
func (u TranslationUnit) EffectiveText() string {
	if u.Translated != nil {
		return *u.Translated
	}
	return u.Original
}

// NeedsTranslation reports whether the original text contains CJK
// characters (Hiragana, Katakana, Hangul, or CJK ideographs).
func (u TranslationUnit) NeedsTranslation() bool {
	for _, r := range u.Original {
		switch {
		case r >= 0x3040 && r <= 0x309F: // Hiragana
			return true
		case r >= 0x30A0 && r <= 0x30FF: // Katakana
			return true
		case r >= 0xAC00 && r <= 0xD7AF: // Hangul syllables
			return true
		case r >= 0x4E00 && r <= 0x9FFF: // CJK unified ideographs
			return true
		}
	}
	return false
}

// TranslationFileMetadata summarizes a TranslationFile's units.
type TranslationFileMetadata struct {
	TotalUnits int      `json:"total_units"`
	Translated int      `json:"translated"`
	Reviewed   int      `json:"reviewed"`
	Speakers   []string `json:"speakers"`
}

// TranslationFile is the extracted-text aggregate written by an extract
// operation and read back by an inject operation. It carries no extraction
// timestamp: this package has no code path that should call time.Now(), so
// a caller that wants one stamps it onto the serialized form itself (the
// CLI's extract subcommand does this when it writes the file to disk).
type TranslationFile struct {
	Version    string                  `json:"version"`
	SourceFile string                  `json:"source_file"`
	Units      []TranslationUnit       `json:"units"`
	Metadata   TranslationFileMetadata `json:"metadata"`
}

// NewTranslationFile starts an empty translation file for sourceFile.
func NewTranslationFile(sourceFile string) *TranslationFile {
	return &TranslationFile{
		Version:    "1.0",
		SourceFile: sourceFile,
	}
}

// AddUnit appends a unit and refreshes the metadata summary.
func (f *TranslationFile) AddUnit(u TranslationUnit) {
	f.Units = append(f.Units, u)
	f.updateMetadata()
}

// AddUnits appends multiple units and refreshes the metadata summary.
func (f *TranslationFile) AddUnits(units []TranslationUnit) {
	f.Units = append(f.Units, units...)
	f.updateMetadata()
}

func (f *TranslationFile) updateMetadata() {
	translated, reviewed := 0, 0
	speakerSet := make(map[string]struct{})
	for _, u := range f.Units {
		if u.IsTranslated() {
			translated++
		}
		if u.Status == StatusReviewed {
			reviewed++
		}
		if u.Speaker != nil {
			speakerSet[*u.Speaker] = struct{}{}
		}
	}
	speakers := make([]string, 0, len(speakerSet))
	for s := range speakerSet {
		speakers = append(speakers, s)
	}
	sort.Strings(speakers)

	f.Metadata = TranslationFileMetadata{
		TotalUnits: len(f.Units),
		Translated: translated,
		Reviewed:   reviewed,
		Speakers:   speakers,
	}
}

// UnitsByStatus returns every unit with the given status.
func (f *TranslationFile) UnitsByStatus(status TranslationStatus) []TranslationUnit {
	var out []TranslationUnit
	for _, u := range f.Units {
		if u.Status == status {
			out = append(out, u)
		}
	}
	return out
}

// CompletionPercentage returns the share of units that are complete or
// translated, as a value in [0, 100]. An empty file is 100% complete.
func (f *TranslationFile) CompletionPercentage() float64 {
	if len(f.Units) == 0 {
		return 100.0
	}
	complete := 0
	for _, u := range f.Units {
		if u.Status.IsComplete() || u.IsTranslated() {
			complete++
		}
	}
	return float64(complete) / float64(len(f.Units)) * 100.0
}
