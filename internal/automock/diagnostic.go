package automock

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/KimMachineGun/automock/internal/syntax"
)

// Diagnostic is a failure anchored to the span of the offending construct.
type Diagnostic struct {
	Span syntax.Span
	Msg  string
}

func (d *Diagnostic) Error() string {
	if !d.Span.Start.IsValid() {
		return d.Msg
	}

	return fmt.Sprintf("%v: %s", d.Span.Start, d.Msg)
}

// CompileError renders the diagnostic as a compile_error! invocation that
// can be emitted in place of the generated code.
func (d *Diagnostic) CompileError() string {
	return fmt.Sprintf("compile_error!(%s);", strconv.Quote(d.Msg))
}

func errorAt(n syntax.Node, msg string) *Diagnostic {
	return &Diagnostic{Span: n.Span(), Msg: msg}
}

func errorAtSpan(span syntax.Span, msg string) *Diagnostic {
	return &Diagnostic{Span: span, Msg: msg}
}

// AsDiagnostic converts any error returned while expanding into a single
// Diagnostic. Syntax errors keep their span.
func AsDiagnostic(err error) *Diagnostic {
	var (
		d  *Diagnostic
		pe *syntax.ParseError
		le *syntax.LexError
	)
	switch {
	case errors.As(err, &d):
		return d
	case errors.As(err, &pe):
		return &Diagnostic{Span: pe.Span, Msg: pe.Message}
	case errors.As(err, &le):
		return &Diagnostic{Span: le.Span, Msg: le.Message}
	}

	return &Diagnostic{Msg: err.Error()}
}
