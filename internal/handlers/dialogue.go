package handlers

import (
	"fmt"
	"strings"

	"rgsstrans/internal/command"
	"rgsstrans/internal/transpath"
	"rgsstrans/internal/xlate"
)

// ShowTextHandler handles Show Text (101) commands, which set up the
// message window and carry the speaker name but no dialogue text of their
// own — the text lives in the following 401 commands.
type ShowTextHandler struct{}

func (ShowTextHandler) Handles() []xlate.EventCode { return []xlate.EventCode{xlate.ShowText} }

func (ShowTextHandler) Extract(commands []command.EventCommand, index int, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.ExtractionOptions) xlate.ExtractionResult {
	var speaker *string
	if name, ok := commands[index].SpeakerName(); ok {
		speaker = &name
	}
	return xlate.EmptyExtractionResult().WithSpeakerUpdate(speaker)
}

// Inject is a no-op: Extract produces no unit for a Show Text command
// itself, only a speaker update, so there is nothing to write back here.
func (ShowTextHandler) Inject(commands []command.EventCommand, index int, translations map[string]string, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.InjectionOptions) ([]command.EventCommand, xlate.InjectionResult) {
	return commands, xlate.InjectionResult{}
}

// DialogueHandler handles Text Body (401) commands, merging a consecutive
// run of same-indent lines into a single translation unit.
type DialogueHandler struct{}

func (DialogueHandler) Handles() []xlate.EventCode { return []xlate.EventCode{xlate.ShowTextBody} }

func (DialogueHandler) Extract(commands []command.EventCommand, index int, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.ExtractionOptions) xlate.ExtractionResult {
	indent := commands[index].Indent

	var lines []string
	consumed := 0
	for index+consumed < len(commands) {
		current := commands[index+consumed]
		if current.Code != int(xlate.ShowTextBody) || current.Indent != indent {
			break
		}
		if text, ok := current.DialogueText(); ok {
			if options.TrimWhitespace {
				text = strings.TrimSpace(text)
			}
			lines = append(lines, text)
		}
		consumed++
	}
	if consumed == 0 {
		consumed = 1
	}

	if len(lines) == 0 || (allBlank(lines) && !options.IncludeEmpty) {
		return xlate.SkipExtractionResult(consumed)
	}

	separator := "\n"
	if options.MergeDialogueLines {
		separator = options.DialogueLineSeparator
	}
	mergedText := strings.Join(lines, separator)

	unitID := generateUnitID(pathPrefix, index, "dialogue")
	unit := xlate.NewTranslationUnit(unitID, pathPrefix.AppendIndex(index), xlate.ShowTextBody, mergedText).
		WithSpeaker(context.CurrentSpeaker).
		WithContext(context.ToTranslationContext())

	return xlate.SingleExtractionResult(unit, consumed).WithPreceding(mergedText)
}

func (DialogueHandler) Inject(commands []command.EventCommand, index int, translations map[string]string, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.InjectionOptions) ([]command.EventCommand, xlate.InjectionResult) {
	result := xlate.InjectionResult{}
	indent := commands[index].Indent

	oldCount := 0
	for index+oldCount < len(commands) {
		cmd := commands[index+oldCount]
		if cmd.Code != int(xlate.ShowTextBody) || cmd.Indent != indent {
			break
		}
		oldCount++
	}

	unitID := generateUnitID(pathPrefix, index, "dialogue")
	translated, ok := translations[unitID]
	if !ok {
		if !options.SkipMissingTranslations {
			result.NotFound++
			result.AddWarning(fmt.Sprintf("Translation not found for: %s", unitID))
		}
		return commands, result
	}

	newLines := options.SplitText(translated)
	newCommands := make([]command.EventCommand, len(newLines))
	for i, line := range newLines {
		newCommands[i] = command.Dialogue(indent, line)
	}

	spliced := append([]command.EventCommand(nil), commands[:index]...)
	spliced = append(spliced, newCommands...)
	spliced = append(spliced, commands[index+oldCount:]...)

	result.Applied++
	result.CommandsModified += oldCount
	return spliced, result
}

func allBlank(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}
