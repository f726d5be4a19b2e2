package xlate

import (
	"testing"

	"rgsstrans/internal/transpath"
)

func strPtr(s string) *string { return &s }

func TestTranslationUnitCreation(t *testing.T) {
	u := NewTranslationUnit("test_1", transpath.New(), ShowTextBody, "Hello World")
	if u.ID != "test_1" || u.Original != "Hello World" {
		t.Fatalf("unexpected unit: %+v", u)
	}
	if u.IsTranslated() {
		t.Fatal("should not be translated yet")
	}
	if u.Status != StatusPending {
		t.Fatalf("status = %v, want pending", u.Status)
	}
}

func TestTranslationUnitWithTranslation(t *testing.T) {
	u := NewTranslationUnit("test_1", transpath.New(), ShowTextBody, "こんにちは").
		WithTranslation("Hello")
	if !u.IsTranslated() {
		t.Fatal("expected translated")
	}
	if u.EffectiveText() != "Hello" {
		t.Fatalf("effective text = %q", u.EffectiveText())
	}
	if u.Status != StatusTranslated {
		t.Fatalf("status = %v", u.Status)
	}
}

func TestNeedsTranslation(t *testing.T) {
	jp := NewTranslationUnit("1", transpath.New(), ShowTextBody, "こんにちは")
	if !jp.NeedsTranslation() {
		t.Fatal("expected Japanese text to need translation")
	}
	en := NewTranslationUnit("2", transpath.New(), ShowTextBody, "Hello")
	if en.NeedsTranslation() {
		t.Fatal("expected English text to not need translation")
	}
}

func TestTranslationFileMetadata(t *testing.T) {
	f := NewTranslationFile("CommonEvents.json")
	f.AddUnit(NewTranslationUnit("1", transpath.New(), ShowTextBody, "Text 1"))
	f.AddUnit(
		NewTranslationUnit("2", transpath.New(), ShowTextBody, "Text 2").
			WithSpeaker(strPtr("NPC")).
			WithTranslation("Translated 2"),
	)

	if f.Metadata.TotalUnits != 2 {
		t.Fatalf("total units = %d", f.Metadata.TotalUnits)
	}
	if f.Metadata.Translated != 1 {
		t.Fatalf("translated = %d", f.Metadata.Translated)
	}
	if len(f.Metadata.Speakers) != 1 || f.Metadata.Speakers[0] != "NPC" {
		t.Fatalf("speakers = %v", f.Metadata.Speakers)
	}
	if f.CompletionPercentage() != 50.0 {
		t.Fatalf("completion = %v", f.CompletionPercentage())
	}
}

func TestTranslationStatusHelpers(t *testing.T) {
	if !StatusReviewed.IsComplete() || !StatusSkipped.IsComplete() {
		t.Fatal("expected reviewed/skipped to be complete")
	}
	if StatusPending.IsComplete() {
		t.Fatal("expected pending to not be complete")
	}
	if !StatusPending.NeedsAttention() || !StatusNeedsRevision.NeedsAttention() {
		t.Fatal("expected pending/needs_revision to need attention")
	}
	if StatusReviewed.NeedsAttention() {
		t.Fatal("expected reviewed to not need attention")
	}
}
