package ast

import (
	"fmt"

	"github.com/marcoeng/marco/pkg/span"
)

// Diagnostic is the engine's single error type (spec §7: "Error is a
// diagnostic with a message and a span"). Every layer below pkg/engine is
// infallible by contract (spec §4.1/§4.2/§4.4/§4.7: tokenizer, extension
// passes, and the highlight extractor degrade rather than fail); a
// Diagnostic therefore signals an internal invariant violation, not a user
// input problem, matching the teacher's config.ConfigError shape (message +
// position) but built from a span instead of a file/line/column triple.
type Diagnostic struct {
	Span    span.Span
	Message string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("marco: %s (at byte %d-%d, line %d:%d)",
		d.Message, d.Span.StartOffset, d.Span.EndOffset, d.Span.StartLine, d.Span.StartColumn)
}

// NewDiagnostic builds a Diagnostic at the given span.
func NewDiagnostic(sp span.Span, format string, args ...any) *Diagnostic {
	return &Diagnostic{Span: sp, Message: fmt.Sprintf(format, args...)}
}
