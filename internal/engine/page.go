// Package engine walks an event page's (or common event's) command list,
// dispatching each command to its registered handler, and aggregates the
// results file-wide for Map*.json and CommonEvents.json sources.
package engine

import (
	"rgsstrans/internal/command"
	"rgsstrans/internal/handlers"
	"rgsstrans/internal/transpath"
	"rgsstrans/internal/xlate"
)

// EventPageParser extracts and injects translations across a single
// command list, a page array, or (via the thinner ExtractFromList/
// InjectToList entry points) a bare list such as a common event's.
type EventPageParser struct {
	handlers *handlers.HandlerRegistry
}

// NewEventPageParser returns a parser using the default handler registry.
func NewEventPageParser() *EventPageParser {
	return &EventPageParser{handlers: handlers.WithDefaults()}
}

// WithHandlers returns a parser using a custom handler registry.
func WithHandlers(registry *handlers.HandlerRegistry) *EventPageParser {
	return &EventPageParser{handlers: registry}
}

// ExtractFromList decodes a JSON command list and extracts its units.
func (p *EventPageParser) ExtractFromList(list interface{}, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.ExtractionOptions) []xlate.TranslationUnit {
	return p.ExtractFromCommands(command.ParseCommands(list), pathPrefix, context, options)
}

// ExtractFromCommands walks commands, dispatching each to its registered
// handler and accumulating every unit produced. pathPrefix is the path to
// the event page itself; the commands live under its "list" key.
func (p *EventPageParser) ExtractFromCommands(commands []command.EventCommand, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.ExtractionOptions) []xlate.TranslationUnit {
	var units []xlate.TranslationUnit
	listPath := pathPrefix.AppendKey("list")
	index := 0

	for index < len(commands) {
		handler, ok := p.handlers.Get(xlate.EventCode(commands[index].Code))
		if !ok {
			index++
			continue
		}

		result := handler.Extract(commands, index, listPath, context, options)
		if result.SpeakerUpdate != nil {
			context.SetSpeaker(result.SpeakerUpdate.Speaker)
		}
		if result.AddToPreceding != nil {
			context.AddPrecedingLine(*result.AddToPreceding)
		}
		units = append(units, result.Units...)

		consumed := result.Consumed
		if consumed <= 0 {
			consumed = 1
		}
		index += consumed
	}

	return units
}

// InjectToList decodes a JSON command list, injects translations, and
// returns the (possibly different-length) list re-encoded as JSON.
func (p *EventPageParser) InjectToList(list interface{}, translations map[string]string, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.InjectionOptions) (interface{}, xlate.InjectionResult) {
	newCommands, result := p.InjectToCommands(command.ParseCommands(list), translations, pathPrefix, context, options)
	if result.CommandsModified == 0 {
		return list, result
	}
	return command.CommandsToJSON(newCommands), result
}

// InjectToCommands writes translations back into commands, dispatching
// each to its registered handler. A handler may return a resized slice
// (DialogueHandler splits translated text across a different number of
// lines than it found), so the list is walked from the last command to
// the first: a resize only shifts commands after index, which have already
// been visited, and every index still to visit is the position the extract
// pass saw, so the unit ids built from it still match.
func (p *EventPageParser) InjectToCommands(commands []command.EventCommand, translations map[string]string, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.InjectionOptions) ([]command.EventCommand, xlate.InjectionResult) {
	result := xlate.InjectionResult{}
	listPath := pathPrefix.AppendKey("list")

	for index := len(commands) - 1; index >= 0; index-- {
		if handler, ok := p.handlers.Get(xlate.EventCode(commands[index].Code)); ok {
			var handlerResult xlate.InjectionResult
			commands, handlerResult = handler.Inject(commands, index, translations, listPath, context, options)
			result.Merge(handlerResult)
		}
	}

	return commands, result
}

// ExtractFromPages extracts translation units across every page in pages,
// a JSON array whose entries may be null (an event page slot RPG Maker
// leaves empty).
func (p *EventPageParser) ExtractFromPages(pages interface{}, pathPrefix transpath.Path, baseContext *xlate.ExtractionContext, options xlate.ExtractionOptions) []xlate.TranslationUnit {
	pagesArr, ok := pages.([]interface{})
	if !ok {
		return nil
	}

	var units []xlate.TranslationUnit
	for pageIdx, page := range pagesArr {
		if page == nil {
			continue
		}
		pageObj, ok := page.(map[string]interface{})
		if !ok {
			continue
		}
		list, ok := pageObj["list"]
		if !ok {
			continue
		}

		pagePath := pathPrefix.AppendKey("pages").AppendIndex(pageIdx)
		pageContext := baseContext.ForPage(pageIdx)
		units = append(units, p.ExtractFromList(list, pagePath, pageContext, options)...)
	}

	return units
}

// InjectToPages injects translations across every page in pages, writing
// each page's updated list back in place and returning the combined tally.
func (p *EventPageParser) InjectToPages(pages interface{}, translations map[string]string, pathPrefix transpath.Path, baseContext *xlate.ExtractionContext, options xlate.InjectionOptions) (interface{}, xlate.InjectionResult) {
	result := xlate.InjectionResult{}
	pagesArr, ok := pages.([]interface{})
	if !ok {
		return pages, result
	}

	for pageIdx, page := range pagesArr {
		if page == nil {
			continue
		}
		pageObj, ok := page.(map[string]interface{})
		if !ok {
			continue
		}
		list, ok := pageObj["list"]
		if !ok {
			continue
		}

		pagePath := pathPrefix.AppendKey("pages").AppendIndex(pageIdx)
		pageContext := baseContext.ForPage(pageIdx)
		newList, pageResult := p.InjectToList(list, translations, pagePath, pageContext, options)
		pageObj["list"] = newList
		result.Merge(pageResult)
	}

	return pagesArr, result
}

// FileExtractionResult aggregates extraction across every event in a file.
type FileExtractionResult struct {
	Units      []xlate.TranslationUnit
	SourceFile string
	Speakers   []string
	Warnings   []string
}

// NewFileExtractionResult starts an empty result for sourceFile.
func NewFileExtractionResult(sourceFile string) *FileExtractionResult {
	return &FileExtractionResult{SourceFile: sourceFile}
}

// AddUnits appends units, updating the unique-speaker list in the order
// speakers are first seen.
func (r *FileExtractionResult) AddUnits(units []xlate.TranslationUnit) {
	for _, u := range units {
		if u.Speaker == nil {
			continue
		}
		seen := false
		for _, s := range r.Speakers {
			if s == *u.Speaker {
				seen = true
				break
			}
		}
		if !seen {
			r.Speakers = append(r.Speakers, *u.Speaker)
		}
	}
	r.Units = append(r.Units, units...)
}

// AddWarning records a non-fatal problem encountered during extraction.
func (r *FileExtractionResult) AddWarning(warning string) {
	r.Warnings = append(r.Warnings, warning)
}

// UnitCount returns the number of units extracted so far.
func (r *FileExtractionResult) UnitCount() int { return len(r.Units) }

// FileInjectionResult aggregates injection across every event in a file.
type FileInjectionResult struct {
	Applied          int
	NotFound         int
	CommandsModified int
	Warnings         []string
	Modified         bool
}

// NewFileInjectionResult returns an empty result.
func NewFileInjectionResult() *FileInjectionResult { return &FileInjectionResult{} }

// Merge folds a handler-level InjectionResult into the file-level tally.
func (r *FileInjectionResult) Merge(result xlate.InjectionResult) {
	r.Applied += result.Applied
	r.NotFound += result.NotFound
	r.CommandsModified += result.CommandsModified
	r.Warnings = append(r.Warnings, result.Warnings...)
	if result.CommandsModified > 0 {
		r.Modified = true
	}
}
