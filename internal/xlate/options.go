package xlate

import (
	"strings"
	"unicode"
)

// ExtractionOptions tunes what extract pulls out of an event command list
// and how it shapes the result.
type ExtractionOptions struct {
	TrimWhitespace        bool
	MergeDialogueLines    bool
	DialogueLineSeparator string
	ExtractComments       bool
	SkipCommentPrefixes   []string
	IncludeEmpty          bool
	MaxPrecedingLines     int
	ExtractPlugins        bool
	ExtractScriptText     bool
	// ScriptTextPrefix is the literal prefix a 657 script continuation must
	// start with to be treated as translatable text; empty means the
	// ScriptTextHandler's own configured prefix is used instead.
	ScriptTextPrefix string
}

// DefaultExtractionOptions mirrors the engine's built-in defaults.
func DefaultExtractionOptions() ExtractionOptions {
	return ExtractionOptions{
		MergeDialogueLines:    true,
		DialogueLineSeparator: "\n",
		ExtractComments:       true,
		SkipCommentPrefixes:   []string{";"},
		MaxPrecedingLines:     5,
		ExtractPlugins:        true,
		ExtractScriptText:     true,
		ScriptTextPrefix:      "テキスト = ",
	}
}

// ForMachineTranslation tunes extraction for feeding a machine translation
// pipeline: whitespace is trimmed, dialogue lines are joined with spaces
// rather than newlines, and comments (which rarely need translating) are
// skipped.
func ForMachineTranslation() ExtractionOptions {
	o := DefaultExtractionOptions()
	o.TrimWhitespace = true
	o.DialogueLineSeparator = " "
	o.ExtractComments = false
	o.MaxPrecedingLines = 3
	return o
}

// ShouldSkipComment reports whether text begins with a skip prefix.
func (o ExtractionOptions) ShouldSkipComment(text string) bool {
	for _, prefix := range o.SkipCommentPrefixes {
		if strings.HasPrefix(text, prefix) {
			return true
		}
	}
	return false
}

// InjectionOptions tunes how translated text is written back into an event
// command list.
type InjectionOptions struct {
	// MaxLineLength splits dialogue into multiple 401 commands once exceeded;
	// 0 means unlimited.
	MaxLineLength           int
	WordAwareSplit          bool
	PreserveLineBreaks      bool
	CreateBackup            bool
	ValidateBeforeInject    bool
	SkipMissingTranslations bool
}

// DefaultInjectionOptions mirrors the engine's built-in defaults.
func DefaultInjectionOptions() InjectionOptions {
	return InjectionOptions{
		WordAwareSplit:          true,
		PreserveLineBreaks:      true,
		CreateBackup:            true,
		ValidateBeforeInject:    true,
		SkipMissingTranslations: true,
	}
}

// WithMaxLineLength returns a copy with MaxLineLength set.
func (o InjectionOptions) WithMaxLineLength(length int) InjectionOptions {
	o.MaxLineLength = length
	return o
}

// SplitText breaks text into the lines that should become individual 401
// commands, honoring MaxLineLength and PreserveLineBreaks.
func (o InjectionOptions) SplitText(text string) []string {
	if o.MaxLineLength <= 0 {
		return splitLines(text)
	}
	if o.PreserveLineBreaks {
		var result []string
		for _, line := range splitLines(text) {
			result = append(result, o.splitLine(line, o.MaxLineLength)...)
		}
		return result
	}
	flat := strings.ReplaceAll(text, "\n", " ")
	return o.splitLine(flat, o.MaxLineLength)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\n")
	for i, p := range parts {
		parts[i] = strings.TrimSuffix(p, "\r")
	}
	return parts
}

func (o InjectionOptions) splitLine(line string, maxLen int) []string {
	if len(line) <= maxLen {
		return []string{line}
	}
	if o.WordAwareSplit {
		return o.splitAtWords(line, maxLen)
	}
	return o.splitAtChars(line, maxLen)
}

func (o InjectionOptions) splitAtWords(text string, maxLen int) []string {
	var result []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			result = append(result, current.String())
			current.Reset()
		}
	}

	for _, word := range strings.Fields(text) {
		switch {
		case current.Len() == 0:
			if len(word) > maxLen {
				result = append(result, o.splitAtChars(word, maxLen)...)
			} else {
				current.WriteString(word)
			}
		case current.Len()+1+len(word) <= maxLen:
			current.WriteByte(' ')
			current.WriteString(word)
		default:
			flush()
			if len(word) > maxLen {
				result = append(result, o.splitAtChars(word, maxLen)...)
			} else {
				current.WriteString(word)
			}
		}
	}
	flush()
	return result
}

// splitAtChars splits on rune boundaries, counting CJK characters as width
// 2 to approximate their visual width relative to ASCII.
func (o InjectionOptions) splitAtChars(text string, maxLen int) []string {
	var result []string
	var current strings.Builder
	currentLen := 0

	for _, r := range text {
		width := 1
		if r > unicode.MaxASCII {
			width = 2
		}
		if currentLen+width > maxLen && current.Len() > 0 {
			result = append(result, current.String())
			current.Reset()
			currentLen = 0
		}
		current.WriteRune(r)
		currentLen += width
	}
	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}

// ParserOptions bundles extraction and injection tuning for a single run.
type ParserOptions struct {
	Extraction ExtractionOptions
	Injection  InjectionOptions
}

// NewParserOptions returns the built-in defaults for both directions.
func NewParserOptions() ParserOptions {
	return ParserOptions{
		Extraction: DefaultExtractionOptions(),
		Injection:  DefaultInjectionOptions(),
	}
}

func (p ParserOptions) WithExtraction(o ExtractionOptions) ParserOptions {
	p.Extraction = o
	return p
}

func (p ParserOptions) WithInjection(o InjectionOptions) ParserOptions {
	p.Injection = o
	return p
}
