package syntax

import "fmt"

// Kind classifies a token.
type Kind int

const (
	EOF Kind = iota
	IdentToken
	LifetimeToken
	LiteralToken
	PunctToken
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "end of input"
	case IdentToken:
		return "identifier"
	case LifetimeToken:
		return "lifetime"
	case LiteralToken:
		return "literal"
	case PunctToken:
		return "punctuation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Position is a location in the source.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid reports whether the position points into parsed source.
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a range in the source.
type Span struct {
	Start Position
	End   Position
}

// IsValid reports whether both ends of the span are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// Join returns the smallest span covering s and o. Invalid spans are ignored.
func (s Span) Join(o Span) Span {
	if !s.IsValid() {
		return o
	}
	if !o.IsValid() {
		return s
	}
	out := s
	if o.Start.Offset < out.Start.Offset {
		out.Start = o.Start
	}
	if o.End.Offset > out.End.Offset {
		out.End = o.End
	}
	return out
}

func (s Span) String() string {
	return s.Start.String()
}

// Token is a single lexical token.
type Token struct {
	Kind Kind
	Text string // lifetimes include the leading quote
	Span Span
}

// Is reports whether t is the punctuation or keyword text.
func (t Token) Is(text string) bool {
	return (t.Kind == PunctToken || t.Kind == IdentToken) && t.Text == text
}

func (t Token) String() string {
	if t.Kind == EOF {
		return "end of input"
	}
	return fmt.Sprintf("`%s`", t.Text)
}

// keywords cannot be used as plain identifiers in paths or patterns.
var keywords = map[string]bool{
	"as": true, "async": true, "const": true, "dyn": true, "enum": true, "extern": true,
	"fn": true, "for": true, "impl": true, "let": true, "mod": true, "move": true,
	"mut": true, "pub": true, "ref": true, "static": true, "struct": true, "trait": true,
	"type": true, "unsafe": true, "use": true, "where": true,
}

// IsKeyword reports whether name is reserved by the declaration language.
func IsKeyword(name string) bool {
	return keywords[name]
}
