package handlers

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"rgsstrans/internal/command"
	"rgsstrans/internal/transpath"
	"rgsstrans/internal/xlate"
)

// PluginFieldConfig names one field within a plugin's argument payload that
// should be extracted for translation. Pattern may use the |ARY|/|OBJ|
// wildcards understood by transpath.Pattern, e.g. "quests.|ARY|.title".
type PluginFieldConfig struct {
	Pattern      string
	Description  string
	Translatable bool
}

// PluginExtractionConfig describes which fields of a specific plugin's
// Plugin Command arguments carry translatable text.
type PluginExtractionConfig struct {
	PluginName      string
	ExtractionPaths []PluginFieldConfig
	Enabled         bool
	Description     string
}

// NewPluginExtractionConfig starts an enabled, empty config for pluginName.
func NewPluginExtractionConfig(pluginName string) PluginExtractionConfig {
	return PluginExtractionConfig{PluginName: pluginName, Enabled: true}
}

// AddPath appends a field extraction path to the config.
func (c PluginExtractionConfig) AddPath(pattern, description string) PluginExtractionConfig {
	c.ExtractionPaths = append(c.ExtractionPaths, PluginFieldConfig{
		Pattern:      pattern,
		Description:  description,
		Translatable: true,
	})
	return c
}

// PluginCommandHandler handles Plugin Command (357) commands by walking a
// plugin's argument payload against per-plugin field configurations. User
// configs (added via AddUserConfig, or loaded from a TOML file) take
// precedence over the predefined ones shipped with this package.
type PluginCommandHandler struct {
	predefined map[string]PluginExtractionConfig
	user       map[string]PluginExtractionConfig
}

// NewPluginCommandHandler returns a handler preloaded with the predefined
// plugin configurations this project ships support for.
func NewPluginCommandHandler() *PluginCommandHandler {
	h := &PluginCommandHandler{
		predefined: make(map[string]PluginExtractionConfig),
		user:       make(map[string]PluginExtractionConfig),
	}
	h.loadPredefinedConfigs()
	return h
}

func (h *PluginCommandHandler) loadPredefinedConfigs() {
	h.predefined["TorigoyaMZ_NotifyMessage"] = NewPluginExtractionConfig("TorigoyaMZ_NotifyMessage").
		AddPath("message", "Notification message")
	h.predefined["NotifyMessage_Battle"] = NewPluginExtractionConfig("NotifyMessage_Battle").
		AddPath("message", "Battle notification message")
	h.predefined["BattleLogOutput"] = NewPluginExtractionConfig("BattleLogOutput").
		AddPath("message", "Battle log message")
}

// AddUserConfig registers (or overrides) a plugin config. User configs take
// precedence over predefined ones of the same plugin name.
func (h *PluginCommandHandler) AddUserConfig(config PluginExtractionConfig) {
	h.user[config.PluginName] = config
}

// GetConfig returns the effective config for a plugin, if any.
func (h *PluginCommandHandler) GetConfig(pluginName string) (PluginExtractionConfig, bool) {
	if c, ok := h.user[pluginName]; ok {
		return c, true
	}
	c, ok := h.predefined[pluginName]
	return c, ok
}

func (h *PluginCommandHandler) Handles() []xlate.EventCode { return []xlate.EventCode{xlate.PluginCommand} }

func (h *PluginCommandHandler) Extract(commands []command.EventCommand, index int, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.ExtractionOptions) xlate.ExtractionResult {
	if !options.ExtractPlugins {
		return xlate.EmptyExtractionResult()
	}
	data, ok := commands[index].PluginCommandData()
	if !ok {
		return xlate.EmptyExtractionResult()
	}

	units := h.extractFromArgs(data.PluginName, data.Arguments, pathPrefix, index, context, options)
	if len(units) == 0 {
		return xlate.EmptyExtractionResult()
	}
	return xlate.MultipleExtractionResult(units, 1)
}

func (h *PluginCommandHandler) extractFromArgs(pluginName string, args interface{}, pathPrefix transpath.Path, index int, context *xlate.ExtractionContext, options xlate.ExtractionOptions) []xlate.TranslationUnit {
	config, ok := h.GetConfig(pluginName)
	if !ok || !config.Enabled {
		return nil
	}

	basePath := pathPrefix.AppendIndex(index)
	var units []xlate.TranslationUnit

	for _, field := range config.ExtractionPaths {
		if !field.Translatable {
			continue
		}
		pattern := transpath.NewPattern(field.Pattern)
		for _, m := range findMatchingFields(args, pattern, "") {
			text, ok := m.value.(string)
			if !ok {
				continue
			}
			if options.TrimWhitespace {
				text = strings.TrimSpace(text)
			}
			if text == "" && !options.IncludeEmpty {
				continue
			}

			unitID := fmt.Sprintf("%s_plugin_%s_%s",
				basePath.UnitID(""),
				strings.ReplaceAll(pluginName, ".", "_"),
				strings.ReplaceAll(m.path, ".", "_"))

			transContext := context.ToTranslationContext()
			transContext.AddTag("plugin:" + pluginName)
			transContext.AddTag("field:" + m.path)

			unit := xlate.NewTranslationUnit(
				unitID,
				basePath.AppendKey("parameters").AppendIndex(3),
				xlate.PluginCommand,
				text,
			).WithContext(transContext)

			units = append(units, unit)
		}
	}

	return units
}

func (h *PluginCommandHandler) Inject(commands []command.EventCommand, index int, translations map[string]string, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.InjectionOptions) ([]command.EventCommand, xlate.InjectionResult) {
	data, ok := commands[index].PluginCommandData()
	if !ok {
		return commands, xlate.InjectionResult{}
	}

	result := h.injectToArgs(data.PluginName, data.Arguments, translations, pathPrefix, index)
	if result.Applied > 0 && len(commands[index].Parameters) > 3 {
		commands[index].Parameters[3] = data.Arguments
	}
	return commands, result
}

func (h *PluginCommandHandler) injectToArgs(pluginName string, args interface{}, translations map[string]string, pathPrefix transpath.Path, index int) xlate.InjectionResult {
	result := xlate.InjectionResult{}
	config, ok := h.GetConfig(pluginName)
	if !ok || !config.Enabled {
		return result
	}

	basePath := pathPrefix.AppendIndex(index)

	for _, field := range config.ExtractionPaths {
		if !field.Translatable {
			continue
		}
		pattern := transpath.NewPattern(field.Pattern)
		for _, fieldPath := range findMatchingFieldPaths(args, pattern, "") {
			unitID := fmt.Sprintf("%s_plugin_%s_%s",
				basePath.UnitID(""),
				strings.ReplaceAll(pluginName, ".", "_"),
				strings.ReplaceAll(fieldPath, ".", "_"))

			if translated, ok := translations[unitID]; ok {
				if setFieldValue(args, fieldPath, translated) {
					result.Applied++
				}
			}
		}
	}

	if result.Applied > 0 {
		result.CommandsModified++
	}
	return result
}

type fieldMatch struct {
	path  string
	value interface{}
}

// findMatchingFields walks value recursively, collecting every field whose
// dotted path (object keys or array indices) matches pattern.
func findMatchingFields(value interface{}, pattern *transpath.Pattern, currentPath string) []fieldMatch {
	var results []fieldMatch
	switch v := value.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			val := v[key]
			newPath := joinFieldPath(currentPath, key)
			if pattern.Matches(newPath) {
				results = append(results, fieldMatch{path: newPath, value: val})
			}
			results = append(results, findMatchingFields(val, pattern, newPath)...)
		}
	case []interface{}:
		for i, val := range v {
			newPath := joinFieldPath(currentPath, strconv.Itoa(i))
			if pattern.Matches(newPath) {
				results = append(results, fieldMatch{path: newPath, value: val})
			}
			results = append(results, findMatchingFields(val, pattern, newPath)...)
		}
	}
	return results
}

// findMatchingFieldPaths is findMatchingFields without the values, used by
// injection where the value being written is the translation, not args.
func findMatchingFieldPaths(value interface{}, pattern *transpath.Pattern, currentPath string) []string {
	var results []string
	switch v := value.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			val := v[key]
			newPath := joinFieldPath(currentPath, key)
			if _, isString := val.(string); isString && pattern.Matches(newPath) {
				results = append(results, newPath)
			}
			results = append(results, findMatchingFieldPaths(val, pattern, newPath)...)
		}
	case []interface{}:
		for i, val := range v {
			newPath := joinFieldPath(currentPath, strconv.Itoa(i))
			if _, isString := val.(string); isString && pattern.Matches(newPath) {
				results = append(results, newPath)
			}
			results = append(results, findMatchingFieldPaths(val, pattern, newPath)...)
		}
	}
	return results
}

func joinFieldPath(current, next string) string {
	if current == "" {
		return next
	}
	return current + "." + next
}

// setFieldValue writes newValue at the dotted path (keys or decimal array
// indices) within value, reporting whether the path resolved.
func setFieldValue(value interface{}, path string, newValue string) bool {
	parts := strings.Split(path, ".")
	current := value
	for i, part := range parts {
		isLast := i == len(parts)-1
		if idx, err := strconv.Atoi(part); err == nil {
			arr, ok := current.([]interface{})
			if !ok || idx < 0 || idx >= len(arr) {
				return false
			}
			if isLast {
				arr[idx] = newValue
				return true
			}
			current = arr[idx]
			continue
		}
		obj, ok := current.(map[string]interface{})
		if !ok {
			return false
		}
		if isLast {
			obj[part] = newValue
			return true
		}
		current, ok = obj[part]
		if !ok {
			return false
		}
	}
	return false
}
