package automock

import (
	"github.com/KimMachineGun/automock/internal/syntax"
)

// Attrs is the configuration given to the automock attribute: associated
// type substitutions and the name of the generated module.
type Attrs struct {
	ModName *syntax.Ident
	types   map[string]syntax.Type
}

// ParseAttrs parses a sequence of `mod <name>;` and `type <T> = <type>;`
// directives. Repeated directives keep the last value.
func ParseAttrs(tokens []syntax.Token) (*Attrs, error) {
	attrs := &Attrs{types: map[string]syntax.Type{}}

	for _, directive := range splitDirectives(tokens) {
		tok := directive[0]
		if !tok.Is("mod") && !tok.Is("type") {
			return nil, errorAtSpan(tok.Span, "expected `mod` or `type`")
		}

		item, err := syntax.ParseItem(directive)
		if err != nil {
			return nil, err
		}
		switch item := item.(type) {
		case *syntax.ItemMod:
			if item.Braced {
				return nil, errorAtSpan(item.Brace, `mod name attributes must have the form "mod my_name;"`)
			}
			ident := item.Ident
			attrs.ModName = &ident
		case *syntax.ItemType:
			if item.Type == nil {
				return nil, errorAt(item, "automock type attributes must have a default value")
			}
			attrs.types[item.Ident.Name] = item.Type
		default:
			return nil, errorAtSpan(tok.Span, "expected `mod` or `type`")
		}
	}

	return attrs, nil
}

// splitDirectives cuts tokens after every `;` or `}` that is not nested in
// a delimiter.
func splitDirectives(tokens []syntax.Token) [][]syntax.Token {
	var (
		out   [][]syntax.Token
		depth int
		start int
	)
	for i, tok := range tokens {
		switch {
		case tok.Is("("), tok.Is("["), tok.Is("{"):
			depth++
		case tok.Is(")"), tok.Is("]"):
			depth--
		case tok.Is("}"):
			depth--
			if depth == 0 {
				out = append(out, tokens[start:i+1])
				start = i + 1
			}
		case tok.Is(";") && depth == 0:
			out = append(out, tokens[start:i+1])
			start = i + 1
		}
	}
	if start < len(tokens) {
		out = append(out, tokens[start:])
	}

	return out
}

// Lookup returns the type configured for the associated type name.
func (a *Attrs) Lookup(name string) (syntax.Type, bool) {
	ty, ok := a.types[name]

	return ty, ok
}

// Len returns the number of configured associated types.
func (a *Attrs) Len() int {
	return len(a.types)
}
