package xlate

import "strings"

// ExtractionContext carries state across a single event page's command
// list: the active speaker, recent dialogue for translator context, and
// identity fields threaded down into every unit's TranslationContext.
type ExtractionContext struct {
	FileName          string
	MapName           *string
	EventName         *string
	EventID           *int
	PageIndex         int
	CurrentSpeaker    *string
	precedingLines    []string
	maxPrecedingLines int
}

// NewExtractionContext starts a context for fileName with the default
// preceding-line window.
func NewExtractionContext(fileName string) *ExtractionContext {
	return &ExtractionContext{FileName: fileName, maxPrecedingLines: 5}
}

func (c *ExtractionContext) WithMapName(name string) *ExtractionContext {
	c.MapName = &name
	return c
}

func (c *ExtractionContext) WithEventName(name string) *ExtractionContext {
	c.EventName = &name
	return c
}

func (c *ExtractionContext) WithEventID(id int) *ExtractionContext {
	c.EventID = &id
	return c
}

func (c *ExtractionContext) WithPageIndex(index int) *ExtractionContext {
	c.PageIndex = index
	return c
}

func (c *ExtractionContext) WithMaxPrecedingLines(max int) *ExtractionContext {
	c.maxPrecedingLines = max
	return c
}

// SetSpeaker updates the current speaker, or clears it if nil.
func (c *ExtractionContext) SetSpeaker(speaker *string) {
	c.CurrentSpeaker = speaker
}

// AddPrecedingLine records a dialogue line for translator context,
// dropping the oldest once the window is full. Blank lines are ignored.
func (c *ExtractionContext) AddPrecedingLine(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	if len(c.precedingLines) >= c.maxPrecedingLines {
		c.precedingLines = c.precedingLines[1:]
	}
	c.precedingLines = append(c.precedingLines, line)
}

// PrecedingLines returns a copy of the current preceding-line window.
func (c *ExtractionContext) PrecedingLines() []string {
	return append([]string(nil), c.precedingLines...)
}

// ClearPrecedingLines empties the preceding-line window, e.g. at a scene
// boundary.
func (c *ExtractionContext) ClearPrecedingLines() {
	c.precedingLines = nil
}

// ToTranslationContext snapshots the current state into a TranslationContext
// for attaching to a unit.
func (c *ExtractionContext) ToTranslationContext() TranslationContext {
	pageIndex := c.PageIndex
	return TranslationContext{
		FileName:       &c.FileName,
		MapName:        c.MapName,
		EventName:      c.EventName,
		PageIndex:      &pageIndex,
		PrecedingLines: c.PrecedingLines(),
	}
}

// ForEvent derives a fresh context for a new event, inheriting file and map
// identity but resetting speaker, page index, and preceding lines.
func (c *ExtractionContext) ForEvent(eventID int, eventName *string) *ExtractionContext {
	return &ExtractionContext{
		FileName:          c.FileName,
		MapName:           c.MapName,
		EventName:         eventName,
		EventID:           &eventID,
		maxPrecedingLines: c.maxPrecedingLines,
	}
}

// ForPage derives a fresh context for a new page within the same event.
func (c *ExtractionContext) ForPage(pageIndex int) *ExtractionContext {
	return &ExtractionContext{
		FileName:          c.FileName,
		MapName:           c.MapName,
		EventName:         c.EventName,
		EventID:           c.EventID,
		PageIndex:         pageIndex,
		maxPrecedingLines: c.maxPrecedingLines,
	}
}

// SpeakerUpdate represents an ExtractionResult's optional request to change
// the active speaker. A nil *SpeakerUpdate means no change; a non-nil
// SpeakerUpdate with a nil Speaker means clear the speaker.
type SpeakerUpdate struct {
	Speaker *string
}

// ExtractionResult is what a handler returns after examining one command
// (or a run of related commands) in an event's command list.
type ExtractionResult struct {
	Units          []TranslationUnit
	Consumed       int
	SpeakerUpdate  *SpeakerUpdate
	AddToPreceding *string
}

// EmptyExtractionResult consumes exactly one command and extracts nothing.
func EmptyExtractionResult() ExtractionResult {
	return ExtractionResult{Consumed: 1}
}

// SkipExtractionResult consumes the given number of commands without
// extracting anything.
func SkipExtractionResult(consumed int) ExtractionResult {
	return ExtractionResult{Consumed: consumed}
}

// SingleExtractionResult wraps one extracted unit.
func SingleExtractionResult(unit TranslationUnit, consumed int) ExtractionResult {
	return ExtractionResult{Units: []TranslationUnit{unit}, Consumed: consumed}
}

// MultipleExtractionResult wraps several extracted units from one command
// group (e.g. a choices block).
func MultipleExtractionResult(units []TranslationUnit, consumed int) ExtractionResult {
	return ExtractionResult{Units: units, Consumed: consumed}
}

// WithSpeakerUpdate requests that the caller update the active speaker,
// where a nil speaker clears it.
func (r ExtractionResult) WithSpeakerUpdate(speaker *string) ExtractionResult {
	r.SpeakerUpdate = &SpeakerUpdate{Speaker: speaker}
	return r
}

// WithPreceding requests that text be added to the preceding-line window.
func (r ExtractionResult) WithPreceding(text string) ExtractionResult {
	r.AddToPreceding = &text
	return r
}

// InjectionResult tallies the outcome of writing translations back into a
// command list or file.
type InjectionResult struct {
	Applied          int
	NotFound         int
	CommandsModified int
	Warnings         []string
}

// Merge folds other's counts and warnings into r.
func (r *InjectionResult) Merge(other InjectionResult) {
	r.Applied += other.Applied
	r.NotFound += other.NotFound
	r.CommandsModified += other.CommandsModified
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// AddWarning records a non-fatal problem encountered during injection.
func (r *InjectionResult) AddWarning(warning string) {
	r.Warnings = append(r.Warnings, warning)
}
