package handlers

import (
	"fmt"
	"strings"

	"rgsstrans/internal/command"
	"rgsstrans/internal/transpath"
	"rgsstrans/internal/xlate"
)

// ChoicesHandler handles Show Choices (102) commands, extracting each
// option in the choices array as its own translation unit.
type ChoicesHandler struct{}

func (ChoicesHandler) Handles() []xlate.EventCode { return []xlate.EventCode{xlate.ShowChoices} }

func (ChoicesHandler) Extract(commands []command.EventCommand, index int, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.ExtractionOptions) xlate.ExtractionResult {
	choices, ok := commands[index].Choices()
	if !ok {
		return xlate.EmptyExtractionResult()
	}

	// choices is already filtered to strings by Choices(), so i here is a
	// position within that filtered slice. Inject below walks the raw
	// parameter array instead, and the two indices only agree when every
	// entry of the choices array is a string (always true for RPG Maker's
	// own output; a hand-edited non-string entry would desync the unit ID).
	basePath := pathPrefix.AppendIndex(index)
	var units []xlate.TranslationUnit
	for i, choiceText := range choices {
		if strings.TrimSpace(choiceText) == "" && !options.IncludeEmpty {
			continue
		}
		text := choiceText
		if options.TrimWhitespace {
			text = strings.TrimSpace(text)
		}

		unitID := fmt.Sprintf("%s_choice_%d", basePath.UnitID(""), i)
		unitPath := basePath.AppendKey("parameters").AppendIndex(0).AppendIndex(i)

		unit := xlate.NewTranslationUnit(unitID, unitPath, xlate.ShowChoices, text).
			WithSpeaker(context.CurrentSpeaker).
			WithContext(context.ToTranslationContext())
		units = append(units, unit)
	}

	return xlate.MultipleExtractionResult(units, 1)
}

func (ChoicesHandler) Inject(commands []command.EventCommand, index int, translations map[string]string, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.InjectionOptions) ([]command.EventCommand, xlate.InjectionResult) {
	result := xlate.InjectionResult{}
	if len(commands[index].Parameters) == 0 {
		return commands, result
	}

	choicesArr, ok := commands[index].ArrayParam(0)
	if !ok {
		return commands, result
	}

	// i here indexes the raw, unfiltered parameter array; see the matching
	// note in Extract about why this must line up with that filtered index.
	basePath := pathPrefix.AppendIndex(index)
	modified := false
	for i := range choicesArr {
		unitID := fmt.Sprintf("%s_choice_%d", basePath.UnitID(""), i)
		if translated, ok := translations[unitID]; ok {
			choicesArr[i] = translated
			result.Applied++
			modified = true
		}
	}
	if modified {
		result.CommandsModified++
	}
	return commands, result
}

// ChoiceBranchHandler handles When [Choice] (402) commands, which repeat
// the choice's label in their own branch-selection parameter.
type ChoiceBranchHandler struct{}

func (ChoiceBranchHandler) Handles() []xlate.EventCode { return []xlate.EventCode{xlate.WhenChoice} }

func (ChoiceBranchHandler) Extract(commands []command.EventCommand, index int, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.ExtractionOptions) xlate.ExtractionResult {
	choiceText, ok := commands[index].ChoiceText()
	if !ok {
		return xlate.EmptyExtractionResult()
	}
	if strings.TrimSpace(choiceText) == "" && !options.IncludeEmpty {
		return xlate.EmptyExtractionResult()
	}
	text := choiceText
	if options.TrimWhitespace {
		text = strings.TrimSpace(text)
	}

	unitID := generateUnitID(pathPrefix, index, "choice_branch")
	unit := xlate.NewTranslationUnit(unitID, pathPrefix.AppendIndex(index), xlate.WhenChoice, text).
		WithSpeaker(context.CurrentSpeaker).
		WithContext(context.ToTranslationContext())

	return xlate.SingleExtractionResult(unit, 1)
}

func (ChoiceBranchHandler) Inject(commands []command.EventCommand, index int, translations map[string]string, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.InjectionOptions) ([]command.EventCommand, xlate.InjectionResult) {
	result := xlate.InjectionResult{}
	unitID := generateUnitID(pathPrefix, index, "choice_branch")
	translated, ok := translations[unitID]
	if !ok {
		return commands, result
	}
	if len(commands[index].Parameters) >= 2 {
		commands[index].SetStringParam(1, translated)
		result.Applied++
		result.CommandsModified++
	}
	return commands, result
}
