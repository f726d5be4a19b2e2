package xlate

import "testing"

func TestExtractionContextCreation(t *testing.T) {
	ctx := NewExtractionContext("CommonEvents.json").
		WithEventID(5).
		WithEventName("Test Event").
		WithPageIndex(0)

	if ctx.FileName != "CommonEvents.json" {
		t.Fatalf("file name = %q", ctx.FileName)
	}
	if ctx.EventID == nil || *ctx.EventID != 5 {
		t.Fatalf("event id = %v", ctx.EventID)
	}
	if ctx.EventName == nil || *ctx.EventName != "Test Event" {
		t.Fatalf("event name = %v", ctx.EventName)
	}
}

func TestPrecedingLinesWindow(t *testing.T) {
	ctx := NewExtractionContext("test.json").WithMaxPrecedingLines(3)

	ctx.AddPrecedingLine("Line 1")
	ctx.AddPrecedingLine("Line 2")
	ctx.AddPrecedingLine("Line 3")
	ctx.AddPrecedingLine("Line 4")

	lines := ctx.PrecedingLines()
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	if lines[0] != "Line 2" || lines[2] != "Line 4" {
		t.Fatalf("lines = %v", lines)
	}
}

func TestPrecedingLinesSkipsBlank(t *testing.T) {
	ctx := NewExtractionContext("test.json")
	ctx.AddPrecedingLine("  ")
	if len(ctx.PrecedingLines()) != 0 {
		t.Fatal("expected blank line to be skipped")
	}
}

func TestForEventResetsState(t *testing.T) {
	ctx := NewExtractionContext("Map001.json").WithMapName("Forest")
	ctx.AddPrecedingLine("stale")
	ctx.SetSpeaker(strPtr("Someone"))

	name := "NPC Dialogue"
	eventCtx := ctx.ForEvent(5, &name)

	if eventCtx.FileName != "Map001.json" {
		t.Fatalf("file name = %q", eventCtx.FileName)
	}
	if eventCtx.MapName == nil || *eventCtx.MapName != "Forest" {
		t.Fatalf("map name = %v", eventCtx.MapName)
	}
	if eventCtx.EventID == nil || *eventCtx.EventID != 5 {
		t.Fatalf("event id = %v", eventCtx.EventID)
	}
	if eventCtx.CurrentSpeaker != nil {
		t.Fatal("expected speaker reset")
	}
	if len(eventCtx.PrecedingLines()) != 0 {
		t.Fatal("expected preceding lines reset")
	}
}

func TestToTranslationContext(t *testing.T) {
	ctx := NewExtractionContext("test.json").
		WithMapName("Town").
		WithEventName("Shopkeeper")
	ctx.AddPrecedingLine("Hello!")
	ctx.SetSpeaker(strPtr("NPC"))

	tc := ctx.ToTranslationContext()
	if tc.FileName == nil || *tc.FileName != "test.json" {
		t.Fatalf("file name = %v", tc.FileName)
	}
	if tc.MapName == nil || *tc.MapName != "Town" {
		t.Fatalf("map name = %v", tc.MapName)
	}
	if len(tc.PrecedingLines) != 1 || tc.PrecedingLines[0] != "Hello!" {
		t.Fatalf("preceding lines = %v", tc.PrecedingLines)
	}
}

func TestInjectionResultMerge(t *testing.T) {
	r1 := InjectionResult{Applied: 5, NotFound: 1, CommandsModified: 10, Warnings: []string{"w1"}}
	r2 := InjectionResult{Applied: 3, NotFound: 2, CommandsModified: 5, Warnings: []string{"w2"}}
	r1.Merge(r2)

	if r1.Applied != 8 || r1.NotFound != 3 || r1.CommandsModified != 15 {
		t.Fatalf("merged = %+v", r1)
	}
	if len(r1.Warnings) != 2 {
		t.Fatalf("warnings = %v", r1.Warnings)
	}
}
