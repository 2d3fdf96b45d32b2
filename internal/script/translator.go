package script

import (
	"fmt"
	"strings"
)

// Translator turns a handler's bytecode into something resembling
// source text. Full bytecode-to-source reconstruction is an external
// collaborator; this module ships a minimal built-in that renders a
// readable placeholder so the rest of the pipeline (ScriptChunk.ScriptText,
// the demo CLI) has something to call through. Callers can install their
// own via ContextChunk.SetTranslator.
type Translator interface {
	Translate(h *Handler) string
}

// DefaultTranslator renders each handler as its signature plus comment
// lines naming its locals and counting its bytecode bytes and line
// entries; it does not decode the bytecode itself.
type DefaultTranslator struct{}

func (DefaultTranslator) Translate(h *Handler) string {
	var b strings.Builder
	args := strings.Join(h.ArgumentNames, ", ")
	fmt.Fprintf(&b, "on %s %s\n", h.Name, args)
	for _, name := range h.LocalNames {
		fmt.Fprintf(&b, "  -- local %s\n", name)
	}
	fmt.Fprintf(&b, "  -- %d bytes of bytecode, %d line entries\n", len(h.Bytecode), len(h.LineOffsets))
	b.WriteString("end\n")
	return b.String()
}
