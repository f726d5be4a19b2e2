package handlers

import (
	"strings"

	"rgsstrans/internal/command"
	"rgsstrans/internal/transpath"
	"rgsstrans/internal/xlate"
)

// CommentHandler handles Comment Body (408) commands.
type CommentHandler struct{}

func (CommentHandler) Handles() []xlate.EventCode { return []xlate.EventCode{xlate.CommentBody} }

func (CommentHandler) Extract(commands []command.EventCommand, index int, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.ExtractionOptions) xlate.ExtractionResult {
	if !options.ExtractComments {
		return xlate.EmptyExtractionResult()
	}
	commentText, ok := commands[index].CommentText()
	if !ok {
		return xlate.EmptyExtractionResult()
	}
	if options.ShouldSkipComment(commentText) {
		return xlate.EmptyExtractionResult()
	}
	if strings.TrimSpace(commentText) == "" && !options.IncludeEmpty {
		return xlate.EmptyExtractionResult()
	}
	text := commentText
	if options.TrimWhitespace {
		text = strings.TrimSpace(text)
	}

	unitID := generateUnitID(pathPrefix, index, "comment")
	transContext := context.ToTranslationContext()
	transContext.AddTag("comment")

	unit := xlate.NewTranslationUnit(unitID, pathPrefix.AppendIndex(index), xlate.CommentBody, text).
		WithContext(transContext)

	return xlate.SingleExtractionResult(unit, 1)
}

func (CommentHandler) Inject(commands []command.EventCommand, index int, translations map[string]string, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.InjectionOptions) ([]command.EventCommand, xlate.InjectionResult) {
	result := xlate.InjectionResult{}
	unitID := generateUnitID(pathPrefix, index, "comment")
	translated, ok := translations[unitID]
	if !ok {
		return commands, result
	}
	if len(commands[index].Parameters) > 0 {
		commands[index].SetStringParam(0, translated)
		result.Applied++
		result.CommandsModified++
	}
	return commands, result
}

// ScriptTextHandler handles Script Special Text (657) continuations whose
// payload begins with a configured prefix (the MZ plugin convention
// "テキスト = ..."), extracting only the text after the prefix.
type ScriptTextHandler struct {
	prefix string
}

// NewScriptTextHandler returns a handler matching the given prefix.
func NewScriptTextHandler(prefix string) ScriptTextHandler {
	return ScriptTextHandler{prefix: prefix}
}

func (ScriptTextHandler) Handles() []xlate.EventCode { return []xlate.EventCode{xlate.ScriptBodyAlt} }

func (h ScriptTextHandler) Extract(commands []command.EventCommand, index int, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.ExtractionOptions) xlate.ExtractionResult {
	if !options.ExtractScriptText {
		return xlate.EmptyExtractionResult()
	}

	prefix := h.prefix
	if options.ScriptTextPrefix != "" {
		prefix = options.ScriptTextPrefix
	}

	text, ok := commands[index].ScriptSpecialText(prefix)
	if !ok {
		return xlate.EmptyExtractionResult()
	}
	if strings.TrimSpace(text) == "" && !options.IncludeEmpty {
		return xlate.EmptyExtractionResult()
	}
	if options.TrimWhitespace {
		text = strings.TrimSpace(text)
	}

	unitID := generateUnitID(pathPrefix, index, "script_text")
	transContext := context.ToTranslationContext()
	transContext.AddTag("script_text")

	unit := xlate.NewTranslationUnit(unitID, pathPrefix.AppendIndex(index), xlate.ScriptBodyAlt, text).
		WithContext(transContext)

	return xlate.SingleExtractionResult(unit, 1)
}

// Inject reconstructs the script text using the handler's own configured
// prefix, rather than a hardcoded literal independent of configuration.
func (h ScriptTextHandler) Inject(commands []command.EventCommand, index int, translations map[string]string, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.InjectionOptions) ([]command.EventCommand, xlate.InjectionResult) {
	result := xlate.InjectionResult{}
	unitID := generateUnitID(pathPrefix, index, "script_text")
	translated, ok := translations[unitID]
	if !ok {
		return commands, result
	}
	if len(commands[index].Parameters) > 0 {
		commands[index].SetStringParam(0, h.prefix+translated)
		result.Applied++
		result.CommandsModified++
	}
	return commands, result
}
