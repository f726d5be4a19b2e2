package xlate

import "testing"

func TestExtractionOptionsDefault(t *testing.T) {
	o := DefaultExtractionOptions()
	if !o.MergeDialogueLines || !o.ExtractComments || o.IncludeEmpty {
		t.Fatalf("unexpected defaults: %+v", o)
	}
}

func TestShouldSkipComment(t *testing.T) {
	o := DefaultExtractionOptions()
	if !o.ShouldSkipComment("; This is a comment") {
		t.Fatal("expected skip")
	}
	if o.ShouldSkipComment("This is not a comment") {
		t.Fatal("expected no skip")
	}
}

func TestInjectionSplitNoLimit(t *testing.T) {
	o := DefaultInjectionOptions()
	result := o.SplitText("Line 1\nLine 2\nLine 3")
	want := []string{"Line 1", "Line 2", "Line 3"}
	if len(result) != len(want) {
		t.Fatalf("result = %v", result)
	}
	for i := range want {
		if result[i] != want[i] {
			t.Fatalf("result[%d] = %q, want %q", i, result[i], want[i])
		}
	}
}

func TestInjectionSplitWithLimit(t *testing.T) {
	o := DefaultInjectionOptions().WithMaxLineLength(20)
	result := o.SplitText("This is a very long line that needs splitting")
	if len(result) <= 1 {
		t.Fatalf("expected multiple lines, got %v", result)
	}
	for _, line := range result {
		if len(line) > 20 {
			t.Fatalf("line exceeds max length: %q", line)
		}
	}
}

func TestInjectionSplitCJK(t *testing.T) {
	o := InjectionOptions{MaxLineLength: 10, WordAwareSplit: false}
	result := o.SplitText("これは日本語のテキストです")
	if len(result) <= 1 {
		t.Fatalf("expected multiple lines, got %v", result)
	}
}

func TestInjectionSplitPreserveBreaks(t *testing.T) {
	o := InjectionOptions{MaxLineLength: 50, PreserveLineBreaks: true}
	result := o.SplitText("Line 1\nLine 2")
	if len(result) != 2 {
		t.Fatalf("result = %v", result)
	}
}

func TestInjectionSplitNoPreserveBreaks(t *testing.T) {
	o := InjectionOptions{MaxLineLength: 50, PreserveLineBreaks: false}
	result := o.SplitText("Line 1\nLine 2")
	if len(result) != 1 {
		t.Fatalf("result = %v", result)
	}
}

func TestForMachineTranslation(t *testing.T) {
	o := ForMachineTranslation()
	if !o.TrimWhitespace || o.ExtractComments {
		t.Fatalf("unexpected machine translation defaults: %+v", o)
	}
	if o.DialogueLineSeparator != " " {
		t.Fatalf("separator = %q", o.DialogueLineSeparator)
	}
}
