// Package handlers implements per-command-code extraction and injection:
// one CommandHandler per RPG Maker MV/MZ event command code that carries
// translatable text, plus a registry that dispatches by code.
package handlers

import (
	"rgsstrans/internal/command"
	"rgsstrans/internal/transpath"
	"rgsstrans/internal/xlate"
)

// CommandHandler extracts translation units from, and injects translated
// text back into, the event command(s) it declares support for.
//
// Inject returns the command list to use going forward rather than
// mutating in place, since some handlers (DialogueHandler) replace a run
// of commands with a different number of commands after splitting
// translated text across multiple lines.
type CommandHandler interface {
	// Handles reports the event codes this handler processes.
	Handles() []xlate.EventCode

	// Extract examines commands[index] (and possibly a run of following
	// commands) and returns whatever translation units it finds, plus how
	// many commands were consumed.
	Extract(commands []command.EventCommand, index int, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.ExtractionOptions) xlate.ExtractionResult

	// Inject writes translated text back into commands at index, returning
	// the (possibly resized) command list and a tally of what happened.
	Inject(commands []command.EventCommand, index int, translations map[string]string, pathPrefix transpath.Path, context *xlate.ExtractionContext, options xlate.InjectionOptions) ([]command.EventCommand, xlate.InjectionResult)
}

// generateUnitID builds the canonical id for a single-command unit at
// index under pathPrefix, tagged with suffix (e.g. "dialogue", "comment").
func generateUnitID(pathPrefix transpath.Path, index int, suffix string) string {
	return pathPrefix.AppendIndex(index).UnitID(suffix)
}

// HandlerRegistry dispatches event codes to the handler registered for them.
type HandlerRegistry struct {
	handlers map[xlate.EventCode]CommandHandler
}

// NewRegistry returns an empty registry.
func NewRegistry() *HandlerRegistry {
	return &HandlerRegistry{handlers: make(map[xlate.EventCode]CommandHandler)}
}

// WithDefaults returns a registry with every built-in handler registered.
func WithDefaults() *HandlerRegistry {
	r := NewRegistry()
	r.RegisterHandler(ShowTextHandler{})
	r.RegisterHandler(DialogueHandler{})
	r.RegisterHandler(ChoicesHandler{})
	r.RegisterHandler(ChoiceBranchHandler{})
	r.RegisterHandler(CommentHandler{})
	r.RegisterHandler(NewScriptTextHandler("テキスト = "))
	r.RegisterHandler(NewPluginCommandHandler())
	return r
}

// RegisterHandler registers h for every code it declares in Handles.
func (r *HandlerRegistry) RegisterHandler(h CommandHandler) {
	for _, code := range h.Handles() {
		r.handlers[code] = h
	}
}

// Get returns the handler registered for code, if any.
func (r *HandlerRegistry) Get(code xlate.EventCode) (CommandHandler, bool) {
	h, ok := r.handlers[code]
	return h, ok
}

// HasHandler reports whether a handler is registered for code.
func (r *HandlerRegistry) HasHandler(code xlate.EventCode) bool {
	_, ok := r.handlers[code]
	return ok
}
