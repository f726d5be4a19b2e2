package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rgsstrans/internal/transpath"
	"rgsstrans/internal/xlate"
)

// MapParser extracts and injects translations in a Map*.json file: a
// display name plus an events array, each event carrying a pages array.
type MapParser struct {
	pageParser *EventPageParser
}

// NewMapParser returns a parser using the default handler registry.
func NewMapParser() *MapParser {
	return &MapParser{pageParser: NewEventPageParser()}
}

// WithMapPageParser returns a parser using a custom EventPageParser.
func WithMapPageParser(pageParser *EventPageParser) *MapParser {
	return &MapParser{pageParser: pageParser}
}

// Extract walks a decoded Map*.json tree and returns every translation
// unit found across its events and pages.
func (p *MapParser) Extract(data map[string]interface{}, fileName string, options xlate.ExtractionOptions) *FileExtractionResult {
	result := NewFileExtractionResult(fileName)
	mapName := mapDisplayName(data, fileName)

	events, ok := eventsArray(data)
	if !ok {
		result.AddWarning("map file does not contain an events array")
		return result
	}

	for eventIdx, eventRaw := range events {
		event, ok := eventRaw.(map[string]interface{})
		if !ok {
			continue
		}

		baseContext := xlate.NewExtractionContext(fileName).
			WithEventID(intField(event, "id", eventIdx)).
			WithMaxPrecedingLines(options.MaxPrecedingLines)
		if mapName != "" {
			baseContext = baseContext.WithMapName(mapName)
		}
		if name := stringField(event, "name"); name != "" {
			baseContext = baseContext.WithEventName(name)
		}

		pages, ok := event["pages"]
		if !ok {
			continue
		}
		eventPath := transpath.New().AppendKey("events").AppendIndex(eventIdx)
		result.AddUnits(p.pageParser.ExtractFromPages(pages, eventPath, baseContext, options))
	}

	return result
}

// ExtractFile reads and extracts a Map*.json file from disk.
func (p *MapParser) ExtractFile(path string, options xlate.ExtractionOptions) (*FileExtractionResult, error) {
	var data map[string]interface{}
	if err := readJSONFile(path, &data); err != nil {
		return nil, err
	}
	return p.Extract(data, filepath.Base(path), options), nil
}

// Inject writes translations back into a decoded Map*.json tree in place,
// building the same per-event context Extract would so the two stay
// symmetric: both key off the map's display name and each event's name.
func (p *MapParser) Inject(data map[string]interface{}, fileName string, translations map[string]string, options xlate.InjectionOptions) *FileInjectionResult {
	result := NewFileInjectionResult()
	mapName := mapDisplayName(data, fileName)

	events, ok := eventsArray(data)
	if !ok {
		result.Warnings = append(result.Warnings, "map file does not contain an events array")
		return result
	}

	for eventIdx, eventRaw := range events {
		event, ok := eventRaw.(map[string]interface{})
		if !ok {
			continue
		}

		context := xlate.NewExtractionContext(fileName).WithEventID(intField(event, "id", eventIdx))
		if mapName != "" {
			context = context.WithMapName(mapName)
		}
		if name := stringField(event, "name"); name != "" {
			context = context.WithEventName(name)
		}

		pages, ok := event["pages"]
		if !ok {
			continue
		}
		eventPath := transpath.New().AppendKey("events").AppendIndex(eventIdx)
		newPages, pageResult := p.pageParser.InjectToPages(pages, translations, eventPath, context, options)
		event["pages"] = newPages
		result.Merge(pageResult)
	}

	return result
}

// InjectFile reads, injects, and (if anything changed) rewrites a
// Map*.json file.
func (p *MapParser) InjectFile(path string, translations map[string]string, options xlate.InjectionOptions) (*FileInjectionResult, error) {
	var data map[string]interface{}
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
func (p *MapParser) ToTranslationFile(result *FileExtractionResult) *xlate.TranslationFile {
	file := xlate.NewTranslationFile(result.SourceFile)
	file.AddUnits(result.Units)
	return file
}

func mapDisplayName(data map[string]interface{}, fileName string) string {
	if name := stringField(data, "displayName"); name != "" {
		return name
	}
	base := filepath.Base(fileName)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func eventsArray(data map[string]interface{}) ([]interface{}, bool) {
	events, ok := data["events"].([]interface{})
	return events, ok
}

func stringField(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func intField(m map[string]interface{}, key string, fallback int) int {
	if v, ok := m[key].(float64); ok {
		return int(v)
	}
	return fallback
}

func readJSONFile(path string, out interface{}) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(content, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func writeJSONFile(path string, data interface{}) error {
	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, output, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
