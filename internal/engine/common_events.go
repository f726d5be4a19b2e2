package engine

import (
	"path/filepath"

	"rgsstrans/internal/transpath"
	"rgsstrans/internal/xlate"
)

// CommonEventsParser extracts and injects translations in
// CommonEvents.json: a flat array of common event objects, each with a
// single "list" command list rather than a pages array.
type CommonEventsParser struct {
	pageParser *EventPageParser
}

// NewCommonEventsParser returns a parser using the default handler registry.
func NewCommonEventsParser() *CommonEventsParser {
	return &CommonEventsParser{pageParser: NewEventPageParser()}
}

// WithCommonEventsPageParser returns a parser using a custom EventPageParser.
func WithCommonEventsPageParser(pageParser *EventPageParser) *CommonEventsParser {
	return &CommonEventsParser{pageParser: pageParser}
}

// Extract walks a decoded CommonEvents.json array and returns every
// translation unit found. Entries may be null (RPG Maker reserves index 0
// and leaves gaps when events are deleted).
func (p *CommonEventsParser) Extract(data []interface{}, fileName string, options xlate.ExtractionOptions) *FileExtractionResult {
	result := NewFileExtractionResult(fileName)

	for eventIdx, eventRaw := range data {
		if eventRaw == nil {
			continue
		}
		event, ok := eventRaw.(map[string]interface{})
		if !ok {
			continue
		}

		context := xlate.NewExtractionContext(fileName).
			WithEventID(intField(event, "id", eventIdx)).
			WithMaxPrecedingLines(options.MaxPrecedingLines)
		if name := stringField(event, "name"); name != "" {
			context = context.WithEventName(name)
		}

		list, ok := event["list"]
		if !ok {
			continue
		}
		eventPath := transpath.New().AppendIndex(eventIdx)
		result.AddUnits(p.pageParser.ExtractFromList(list, eventPath, context, options))
	}

	return result
}

// ExtractFile reads and extracts a CommonEvents.json file from disk.
func (p *CommonEventsParser) ExtractFile(path string, options xlate.ExtractionOptions) (*FileExtractionResult, error) {
	var data []interface{}
	if err := readJSONFile(path, &data); err != nil {
		return nil, err
	}
	return p.Extract(data, filepath.Base(path), options), nil
}

// Inject writes translations back into a decoded CommonEvents.json array
// in place, building the same per-event context Extract would.
func (p *CommonEventsParser) Inject(data []interface{}, fileName string, translations map[string]string, options xlate.InjectionOptions) *FileInjectionResult {
	result := NewFileInjectionResult()

	for eventIdx, eventRaw := range data {
		if eventRaw == nil {
			continue
		}
		event, ok := eventRaw.(map[string]interface{})
		if !ok {
			continue
		}

		context := xlate.NewExtractionContext(fileName).WithEventID(intField(event, "id", eventIdx))
		if name := stringField(event, "name"); name != "" {
			context = context.WithEventName(name)
		}

		list, ok := event["list"]
		if !ok {
			continue
		}
		eventPath := transpath.New().AppendIndex(eventIdx)
		newList, listResult := p.pageParser.InjectToList(list, translations, eventPath, context, options)
		event["list"] = newList
		result.Merge(listResult)
	}

	return result
}

// InjectFile reads, injects, and (if anything changed) rewrites a
// CommonEvents.json file.
func (p *CommonEventsParser) InjectFile(path string, translations map[string]string, options xlate.InjectionOptions) (*FileInjectionResult, error) {
	var data []interface{}
	if err := readJSONFile(path, &data); err != nil {
		return nil, err
	}

	result := p.Inject(data, filepath.Base(path), translations, options)
	if result.Modified {
		if err := writeJSONFile(path, data); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ToTranslationFile bundles an extraction result into a TranslationFile.
func (p *CommonEventsParser) ToTranslationFile(result *FileExtractionResult) *xlate.TranslationFile {
	file := xlate.NewTranslationFile(result.SourceFile)
	file.AddUnits(result.Units)
	return file
}
