package handlers

import (
	"testing"

	"rgsstrans/internal/command"
	"rgsstrans/internal/transpath"
	"rgsstrans/internal/xlate"
)

func makeComment(text string) command.EventCommand {
	return command.EventCommand{Code: 408, Parameters: []interface{}{text}}
}

func makeScriptText(text string) command.EventCommand {
	return command.EventCommand{Code: 657, Parameters: []interface{}{"テキスト = " + text}}
}

func TestCommentExtraction(t *testing.T) {
	handler := CommentHandler{}
	commands := []command.EventCommand{makeComment("これはコメントです")}
	ctx := xlate.NewExtractionContext("test.json")

	result := handler.Extract(commands, 0, transpath.New(), ctx, xlate.DefaultExtractionOptions())

	if result.Consumed != 1 || len(result.Units) != 1 || result.Units[0].Original != "これはコメントです" {
		t.Fatalf("result = %+v", result)
	}
	found := false
	for _, tag := range result.Units[0].Context.Tags {
		if tag == "comment" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected comment tag")
	}
}

func TestCommentSkipSemicolon(t *testing.T) {
	handler := CommentHandler{}
	commands := []command.EventCommand{makeComment("; This is a code comment")}
	ctx := xlate.NewExtractionContext("test.json")

	result := handler.Extract(commands, 0, transpath.New(), ctx, xlate.DefaultExtractionOptions())

	if len(result.Units) != 0 {
		t.Fatalf("len(units) = %d, want 0", len(result.Units))
	}
}

func TestCommentExtractionDisabled(t *testing.T) {
	handler := CommentHandler{}
	commands := []command.EventCommand{makeComment("これはコメントです")}
	ctx := xlate.NewExtractionContext("test.json")
	options := xlate.DefaultExtractionOptions()
	options.ExtractComments = false

	result := handler.Extract(commands, 0, transpath.New(), ctx, options)

	if len(result.Units) != 0 {
		t.Fatalf("len(units) = %d, want 0", len(result.Units))
	}
}

func TestCommentInjection(t *testing.T) {
	handler := CommentHandler{}
	commands := []command.EventCommand{makeComment("これはコメントです")}
	ctx := xlate.NewExtractionContext("test.json")
	translations := map[string]string{"0_comment": "This is a comment"}

	newCommands, result := handler.Inject(commands, 0, translations, transpath.New(), ctx, xlate.DefaultInjectionOptions())

	if result.Applied != 1 {
		t.Fatalf("applied = %d", result.Applied)
	}
	if text, _ := newCommands[0].CommentText(); text != "This is a comment" {
		t.Fatalf("text = %q", text)
	}
}

func TestScriptTextExtraction(t *testing.T) {
	handler := NewScriptTextHandler("テキスト = ")
	commands := []command.EventCommand{makeScriptText("特別なテキスト")}
	ctx := xlate.NewExtractionContext("test.json")

	result := handler.Extract(commands, 0, transpath.New(), ctx, xlate.DefaultExtractionOptions())

	if result.Consumed != 1 || len(result.Units) != 1 || result.Units[0].Original != "特別なテキスト" {
		t.Fatalf("result = %+v", result)
	}
	found := false
	for _, tag := range result.Units[0].Context.Tags {
		if tag == "script_text" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected script_text tag")
	}
}

func TestScriptTextNoMatch(t *testing.T) {
	handler := NewScriptTextHandler("テキスト = ")
	commands := []command.EventCommand{{Code: 657, Parameters: []interface{}{"some_variable = 100"}}}
	ctx := xlate.NewExtractionContext("test.json")

	result := handler.Extract(commands, 0, transpath.New(), ctx, xlate.DefaultExtractionOptions())

	if len(result.Units) != 0 {
		t.Fatalf("len(units) = %d, want 0", len(result.Units))
	}
}

func TestScriptTextInjection(t *testing.T) {
	handler := NewScriptTextHandler("テキスト = ")
	commands := []command.EventCommand{makeScriptText("特別なテキスト")}
	ctx := xlate.NewExtractionContext("test.json")
	translations := map[string]string{"0_script_text": "Special Text"}

	newCommands, result := handler.Inject(commands, 0, translations, transpath.New(), ctx, xlate.DefaultInjectionOptions())

	if result.Applied != 1 {
		t.Fatalf("applied = %d", result.Applied)
	}
	text, _ := newCommands[0].StringParam(0)
	if text != "テキスト = Special Text" {
		t.Fatalf("text = %q", text)
	}
}
