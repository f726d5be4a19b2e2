// Package command models a single RPG Maker MV/MZ event command: its
// numeric code, indent level, and parameter list, plus the per-code
// accessors used to pull translatable text out of specific commands.
package command

import (
	"encoding/json"
	"strconv"
	"strings"

	"rgsstrans/internal/xlate"
)

// EventCommand is one entry in an event page's command list.
type EventCommand struct {
	Code       int           `json:"code"`
	Indent     int           `json:"indent"`
	Parameters []interface{} `json:"parameters"`
}

// New builds a command from its raw fields.
func New(code, indent int, parameters []interface{}) EventCommand {
	return EventCommand{Code: code, Indent: indent, Parameters: parameters}
}

// Empty returns the code-0 terminator command.
func Empty() EventCommand {
	return EventCommand{Code: 0}
}

// Dialogue builds a 401 (dialogue body) command carrying text.
func Dialogue(indent int, text string) EventCommand {
	return EventCommand{Code: 401, Indent: indent, Parameters: []interface{}{text}}
}

// EventCode returns the command's code as the typed enum.
func (c EventCommand) EventCode() xlate.EventCode { return xlate.EventCode(c.Code) }

func (c EventCommand) IsDialogue() bool { return c.Code == int(xlate.ShowTextBody) }
func (c EventCommand) IsShowText() bool { return c.Code == int(xlate.ShowText) }
func (c EventCommand) IsChoice() bool   { return c.Code == int(xlate.ShowChoices) }

// StringParam returns the string parameter at index, if present.
func (c EventCommand) StringParam(index int) (string, bool) {
	if index < 0 || index >= len(c.Parameters) {
		return "", false
	}
	s, ok := c.Parameters[index].(string)
	return s, ok
}

// IntParam returns the integer parameter at index, if present.
func (c EventCommand) IntParam(index int) (int64, bool) {
	if index < 0 || index >= len(c.Parameters) {
		return 0, false
	}
	switch v := c.Parameters[index].(type) {
	case float64:
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	default:
		return 0, false
	}
}

// ArrayParam returns the array parameter at index, if present.
func (c EventCommand) ArrayParam(index int) ([]interface{}, bool) {
	if index < 0 || index >= len(c.Parameters) {
		return nil, false
	}
	arr, ok := c.Parameters[index].([]interface{})
	return arr, ok
}

// ObjectParam returns the object parameter at index, if present.
func (c EventCommand) ObjectParam(index int) (map[string]interface{}, bool) {
	if index < 0 || index >= len(c.Parameters) {
		return nil, false
	}
	obj, ok := c.Parameters[index].(map[string]interface{})
	return obj, ok
}

// SetStringParam overwrites the string parameter at index, reporting
// whether the index was in range.
func (c *EventCommand) SetStringParam(index int, value string) bool {
	if index < 0 || index >= len(c.Parameters) {
		return false
	}
	c.Parameters[index] = value
	return true
}

// SpeakerName extracts the speaker from a ShowText (101) command. MV/MZ
// place it at parameter index 4; an empty speaker is reported as absent.
func (c EventCommand) SpeakerName() (string, bool) {
	if c.Code != int(xlate.ShowText) || len(c.Parameters) < 5 {
		return "", false
	}
	speaker, ok := c.StringParam(4)
	if !ok || speaker == "" {
		return "", false
	}
	return speaker, true
}

// DialogueText extracts the text from a 401 command.
func (c EventCommand) DialogueText() (string, bool) {
	if c.Code != int(xlate.ShowTextBody) {
		return "", false
	}
	return c.StringParam(0)
}

// Choices extracts the option labels from a 102 (Show Choices) command.
func (c EventCommand) Choices() ([]string, bool) {
	if c.Code != int(xlate.ShowChoices) {
		return nil, false
	}
	arr, ok := c.ArrayParam(0)
	if !ok {
		return nil, false
	}
	choices := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, ok := v.(string); ok {
			choices = append(choices, s)
		}
	}
	return choices, true
}

// ChoiceText extracts the branch label from a 402 (When [Choice]) command.
func (c EventCommand) ChoiceText() (string, bool) {
	if c.Code != int(xlate.WhenChoice) {
		return "", false
	}
	return c.StringParam(1)
}

// PluginCommandData extracts the structured payload from a 357 (Plugin
// Command) command.
func (c EventCommand) PluginCommandData() (PluginCommandData, bool) {
	if c.Code != int(xlate.PluginCommand) || len(c.Parameters) < 4 {
		return PluginCommandData{}, false
	}
	name, ok1 := c.StringParam(0)
	cmd, ok2 := c.StringParam(1)
	display, ok3 := c.StringParam(2)
	if !ok1 || !ok2 || !ok3 {
		return PluginCommandData{}, false
	}
	return PluginCommandData{
		PluginName:  name,
		Command:     cmd,
		DisplayName: display,
		Arguments:   c.Parameters[3],
	}, true
}

// CommentText extracts the text from a 408 (comment body) command.
func (c EventCommand) CommentText() (string, bool) {
	if c.Code != int(xlate.CommentBody) {
		return "", false
	}
	return c.StringParam(0)
}

// ScriptSpecialText extracts a 657 script continuation's payload if it
// begins with prefix, stripping the prefix from the returned text.
func (c EventCommand) ScriptSpecialText(prefix string) (string, bool) {
	if c.Code != int(xlate.ScriptBodyAlt) {
		return "", false
	}
	text, ok := c.StringParam(0)
	if !ok || !strings.HasPrefix(text, prefix) {
		return "", false
	}
	return text[len(prefix):], true
}

// PluginCommandData is the structured payload of a 357 command.
type PluginCommandData struct {
	PluginName  string
	Command     string
	DisplayName string
	Arguments   interface{}
}

// StringArg returns a top-level string argument by key.
func (d PluginCommandData) StringArg(key string) (string, bool) {
	obj, ok := d.Arguments.(map[string]interface{})
	if !ok {
		return "", false
	}
	s, ok := obj[key].(string)
	return s, ok
}

// ByPath navigates a dot-separated path (keys or decimal indices) into
// Arguments and returns the value found.
func (d PluginCommandData) ByPath(path string) (interface{}, bool) {
	current := d.Arguments
	for _, part := range strings.Split(path, ".") {
		if idx, err := strconv.Atoi(part); err == nil {
			arr, ok := current.([]interface{})
			if !ok || idx < 0 || idx >= len(arr) {
				return nil, false
			}
			current = arr[idx]
			continue
		}
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// ParseCommands decodes a JSON array of event commands.
func ParseCommands(list interface{}) []EventCommand {
	arr, ok := list.([]interface{})
	if !ok {
		return nil
	}
	commands := make([]EventCommand, 0, len(arr))
	for _, v := range arr {
		obj, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		cmd := EventCommand{}
		if code, ok := obj["code"].(float64); ok {
			cmd.Code = int(code)
		}
		if indent, ok := obj["indent"].(float64); ok {
			cmd.Indent = int(indent)
		}
		if params, ok := obj["parameters"].([]interface{}); ok {
			cmd.Parameters = params
		}
		commands = append(commands, cmd)
	}
	return commands
}

// CommandsToJSON converts commands back to the generic JSON array shape
// ParseCommands accepts.
func CommandsToJSON(commands []EventCommand) []interface{} {
	out := make([]interface{}, len(commands))
	for i, cmd := range commands {
		out[i] = map[string]interface{}{
			"code":       float64(cmd.Code),
			"indent":     float64(cmd.Indent),
			"parameters": cmd.Parameters,
		}
	}
	return out
}
