package syntax

import "fmt"

// ParseError is a parsing error anchored to the offending span.
type ParseError struct {
	Span    Span
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Span.Start.Line, e.Span.Start.Column, e.Message)
}

// LexError is a lexical analysis error.
type LexError struct {
	Span    Span
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lexer error at line %d, column %d: %s", e.Span.Start.Line, e.Span.Start.Column, e.Message)
}

// Common error messages
const (
	ErrExpected            = "expected %s"
	ErrUnexpected          = "unexpected token %s"
	ErrUnterminatedString  = "unterminated string literal"
	ErrUnbalancedDelimiter = "unbalanced delimiter %s"
	ErrTrailingTokens      = "unexpected token %s after the item"
	ErrUnsupported         = "unsupported %s %s"
)
