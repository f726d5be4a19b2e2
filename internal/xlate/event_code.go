// Package xlate holds the domain types shared by the extraction and
// injection engine: event codes, translation units and their surrounding
// context, and the options that tune both directions.
package xlate

import (
	"encoding/json"
	"fmt"
)

// EventCode is an RPG Maker MV/MZ event command code. Unlike the tagged
// union this is modeled on, a Go EventCode is simply the numeric code
// itself, so any int converts losslessly in both directions; codes with
// no name below report Name() == "Unknown" but remain fully usable.
type EventCode int

const (
	ShowText          EventCode = 101
	ShowScrollingText EventCode = 105
	ShowChoices       EventCode = 102
	InputNumber       EventCode = 103
	SelectItem        EventCode = 104
	ChangeNickname    EventCode = 324
	ChangeProfile     EventCode = 325
	Script            EventCode = 355
	PluginCommand     EventCode = 357
	ShowTextBody      EventCode = 401
	WhenChoice        EventCode = 402
	WhenCancel        EventCode = 403
	ChoicesEnd        EventCode = 404
	ScrollingTextBody EventCode = 405
	CommentBody       EventCode = 408
	ScriptBody        EventCode = 655
	ScriptBodyAlt     EventCode = 657
	Comment           EventCode = 108
)

// Code returns the underlying numeric command code.
func (c EventCode) Code() int { return int(c) }

// IsTranslatable reports whether this code carries player-facing text.
func (c EventCode) IsTranslatable() bool {
	switch c {
	case ShowText, ShowTextBody, ScrollingTextBody, CommentBody, ShowChoices,
		WhenChoice, PluginCommand, ScriptBodyAlt, ChangeNickname, ChangeProfile:
		return true
	}
	return false
}

// IsContinuation reports whether this code's command continues text begun
// by a preceding command in the same list.
func (c EventCode) IsContinuation() bool {
	switch c {
	case ShowTextBody, ScrollingTextBody, CommentBody, ScriptBody, ScriptBodyAlt:
		return true
	}
	return false
}

// Name returns a human-readable label, or "Unknown" for an unrecognized code.
func (c EventCode) Name() string {
	switch c {
	case ShowText:
		return "ShowText"
	case ShowTextBody:
		return "TextBody"
	case ShowScrollingText:
		return "ScrollingText"
	case ScrollingTextBody:
		return "ScrollingTextBody"
	case Comment:
		return "Comment"
	case CommentBody:
		return "CommentBody"
	case ShowChoices:
		return "Choices"
	case WhenChoice:
		return "ChoiceBranch"
	case WhenCancel:
		return "CancelBranch"
	case ChoicesEnd:
		return "ChoicesEnd"
	case InputNumber:
		return "InputNumber"
	case SelectItem:
		return "SelectItem"
	case PluginCommand:
		return "PluginCommand"
	case Script:
		return "Script"
	case ScriptBody:
		return "ScriptBody"
	case ScriptBodyAlt:
		return "ScriptBodyAlt"
	case ChangeNickname:
		return "ChangeNickname"
	case ChangeProfile:
		return "ChangeProfile"
	default:
		return "Unknown"
	}
}

func (c EventCode) String() string {
	return fmt.Sprintf("%s(%d)", c.Name(), c.Code())
}

// MarshalJSON encodes the code as its bare integer value.
func (c EventCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(c))
}

// UnmarshalJSON decodes an integer into an EventCode.
func (c *EventCode) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*c = EventCode(n)
	return nil
}
