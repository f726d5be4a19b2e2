package rgerrors

import (
	"errors"
	"testing"
)

func TestFormatErrorUnwrap(t *testing.T) {
	err := NewFormatError("read header", ErrCorruptHeader)
	if !errors.Is(err, ErrCorruptHeader) {
		t.Fatal("expected errors.Is to see through FormatError")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "x") != nil {
		t.Fatal("Wrap(nil, ...) must return nil")
	}
}

func TestPathErrorMessage(t *testing.T) {
	err := NewPathError("events.3", ErrNotAnObject)
	if err.Error() == "" {
		t.Fatal("expected non-empty message")
	}
	if !errors.Is(err, ErrNotAnObject) {
		t.Fatal("expected errors.Is to see through PathError")
	}
}
