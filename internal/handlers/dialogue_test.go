package handlers

import (
	"testing"

	"rgsstrans/internal/command"
	"rgsstrans/internal/transpath"
	"rgsstrans/internal/xlate"
)

func makeShowText(speaker string) command.EventCommand {
	return command.EventCommand{
		Code:       101,
		Parameters: []interface{}{"Actor1", float64(0), float64(0), float64(2), speaker},
	}
}

func makeDialogue(text string, indent int) command.EventCommand {
	return command.EventCommand{Code: 401, Indent: indent, Parameters: []interface{}{text}}
}

func TestShowTextExtractsSpeaker(t *testing.T) {
	handler := ShowTextHandler{}
	commands := []command.EventCommand{makeShowText("村人A")}
	ctx := xlate.NewExtractionContext("test.json")

	result := handler.Extract(commands, 0, transpath.New(), ctx, xlate.DefaultExtractionOptions())

	if result.Consumed != 1 {
		t.Fatalf("consumed = %d, want 1", result.Consumed)
	}
	if result.SpeakerUpdate == nil || result.SpeakerUpdate.Speaker == nil || *result.SpeakerUpdate.Speaker != "村人A" {
		t.Fatalf("speaker update = %+v", result.SpeakerUpdate)
	}
}

func TestDialogueExtractsSingleLine(t *testing.T) {
	handler := DialogueHandler{}
	commands := []command.EventCommand{makeDialogue("Hello!", 0)}
	ctx := xlate.NewExtractionContext("test.json")

	result := handler.Extract(commands, 0, transpath.New(), ctx, xlate.DefaultExtractionOptions())

	if result.Consumed != 1 || len(result.Units) != 1 || result.Units[0].Original != "Hello!" {
		t.Fatalf("result = %+v", result)
	}
}

func TestDialogueMergesConsecutiveLines(t *testing.T) {
	handler := DialogueHandler{}
	commands := []command.EventCommand{
		makeDialogue("Line 1", 0),
		makeDialogue("Line 2", 0),
		makeDialogue("Line 3", 0),
	}
	ctx := xlate.NewExtractionContext("test.json")

	result := handler.Extract(commands, 0, transpath.New(), ctx, xlate.DefaultExtractionOptions())

	if result.Consumed != 3 || len(result.Units) != 1 {
		t.Fatalf("result = %+v", result)
	}
	if result.Units[0].Original != "Line 1\nLine 2\nLine 3" {
		t.Fatalf("original = %q", result.Units[0].Original)
	}
}

func TestDialogueRespectsIndent(t *testing.T) {
	handler := DialogueHandler{}
	commands := []command.EventCommand{
		makeDialogue("Line 1", 0),
		makeDialogue("Line 2", 0),
		makeDialogue("Nested", 1),
	}
	ctx := xlate.NewExtractionContext("test.json")

	result := handler.Extract(commands, 0, transpath.New(), ctx, xlate.DefaultExtractionOptions())

	if result.Consumed != 2 {
		t.Fatalf("consumed = %d, want 2", result.Consumed)
	}
	if result.Units[0].Original != "Line 1\nLine 2" {
		t.Fatalf("original = %q", result.Units[0].Original)
	}
}

func TestDialogueInjection(t *testing.T) {
	handler := DialogueHandler{}
	commands := []command.EventCommand{
		makeDialogue("Line 1", 0),
		makeDialogue("Line 2", 0),
	}
	ctx := xlate.NewExtractionContext("test.json")
	translations := map[string]string{"0_dialogue": "Translated Line 1\nTranslated Line 2"}

	newCommands, result := handler.Inject(commands, 0, translations, transpath.New(), ctx, xlate.DefaultInjectionOptions())

	if result.Applied != 1 || len(newCommands) != 2 {
		t.Fatalf("result = %+v, commands = %+v", result, newCommands)
	}
	if text, _ := newCommands[0].DialogueText(); text != "Translated Line 1" {
		t.Fatalf("line 0 = %q", text)
	}
	if text, _ := newCommands[1].DialogueText(); text != "Translated Line 2" {
		t.Fatalf("line 1 = %q", text)
	}
}

func TestDialogueInjectionWithMaxLength(t *testing.T) {
	handler := DialogueHandler{}
	commands := []command.EventCommand{makeDialogue("Short", 0)}
	ctx := xlate.NewExtractionContext("test.json")
	options := xlate.DefaultInjectionOptions().WithMaxLineLength(20)
	translations := map[string]string{"0_dialogue": "This is a very long translated text that should be split"}

	newCommands, result := handler.Inject(commands, 0, translations, transpath.New(), ctx, options)

	if result.Applied != 1 {
		t.Fatalf("applied = %d", result.Applied)
	}
	if len(newCommands) <= 1 {
		t.Fatalf("expected multiple commands, got %d", len(newCommands))
	}
	for _, cmd := range newCommands {
		text, _ := cmd.DialogueText()
		if len(text) > 20 {
			t.Fatalf("line exceeds max length: %q", text)
		}
	}
}

func TestDialogueWithSpeakerContext(t *testing.T) {
	showTextHandler := ShowTextHandler{}
	dialogueHandler := DialogueHandler{}

	commands := []command.EventCommand{
		makeShowText("村人A"),
		makeDialogue("こんにちは！", 0),
	}
	ctx := xlate.NewExtractionContext("test.json")
	options := xlate.DefaultExtractionOptions()

	result1 := showTextHandler.Extract(commands, 0, transpath.New(), ctx, options)
	if result1.SpeakerUpdate != nil {
		ctx.SetSpeaker(result1.SpeakerUpdate.Speaker)
	}

	result2 := dialogueHandler.Extract(commands, 1, transpath.New(), ctx, options)

	if result2.Units[0].Speaker == nil || *result2.Units[0].Speaker != "村人A" {
		t.Fatalf("speaker = %v", result2.Units[0].Speaker)
	}
}
