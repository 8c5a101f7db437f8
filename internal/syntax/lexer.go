package syntax

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// multi-character punctuation, longest first. Angle brackets are never
// joined so that nested generics like Vec<Vec<T>> close one level per token.
var joinedPuncts = []string{"...", "..=", "::", "->", "=>", ".."}

// atomicNodes are grammar nodes with children that still form one token.
var atomicNodes = map[string]Kind{
	"string_literal":     LiteralToken,
	"raw_string_literal": LiteralToken,
	"char_literal":       LiteralToken,
	"integer_literal":    LiteralToken,
	"float_literal":      LiteralToken,
	"lifetime":           LifetimeToken,
}

// Lex tokenizes src. Comments are dropped and the returned slice never
// contains the EOF token.
func Lex(src string) ([]Token, error) {
	s, err := parseSource([]byte(src))
	if err != nil {
		return nil, err
	}
	defer s.close()

	return s.lex(s.root())
}

// leaves returns the tokens under n, ignoring lexical errors.
func (s *source) leaves(n *sitter.Node) []Token {
	var toks []Token
	s.collect(n, &toks)

	return joinLifetimes(toks)
}

// lex returns the tokens under n and the first lexical error.
func (s *source) lex(n *sitter.Node) ([]Token, error) {
	var toks []Token
	if err := s.collect(n, &toks); err != nil {
		return nil, err
	}
	toks = joinLifetimes(toks)
	if err := checkPuncts(toks); err != nil {
		return nil, err
	}
	if err := checkDelimiters(toks); err != nil {
		return nil, err
	}

	return toks, nil
}

// puncts are the characters that may appear as punctuation.
const puncts = "+-*/%^!&|=<>@.,;:#$?~()[]{}'"

// checkPuncts rejects stray characters that error recovery kept as tokens.
func checkPuncts(toks []Token) error {
	for _, t := range toks {
		if t.Kind != PunctToken {
			continue
		}
		switch {
		case t.Text == "\"":
			return &LexError{Span: t.Span, Message: ErrUnterminatedString}
		case utf8.RuneCountInString(t.Text) == 1 && !strings.Contains(puncts, t.Text):
			return &LexError{Span: t.Span, Message: "unexpected character " + quoteRune(t.Text)}
		}
	}

	return nil
}

func (s *source) collect(n *sitter.Node, toks *[]Token) error {
	if n.IsMissing() || isComment(n) {
		return nil
	}

	var err error
	if kind, ok := atomicNodes[n.Type()]; ok {
		text := s.content(n)
		*toks = append(*toks, Token{Kind: kind, Text: text, Span: s.span(n)})
		if kind == LiteralToken && (n.HasError() || unterminated(n.Type(), text)) {
			err = &LexError{Span: s.span(n), Message: ErrUnterminatedString}
		}
		return err
	}

	if n.ChildCount() == 0 {
		if n.StartByte() == n.EndByte() {
			return nil
		}
		if n.Type() == "ERROR" {
			text := s.content(n)
			msg := "unexpected character " + quoteRune(text)
			if strings.HasPrefix(strings.TrimLeft(text, "br"), "\"") {
				msg = ErrUnterminatedString
			}
			err = &LexError{Span: s.span(n), Message: msg}
		}
		*toks = append(*toks, s.splitLeaf(n)...)
		return err
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		if cerr := s.collect(n.Child(i), toks); cerr != nil && err == nil {
			err = cerr
		}
	}

	return err
}

// splitLeaf turns a leaf node into tokens. Named leaves are single tokens;
// anonymous ones may glue punctuation together inside token trees.
func (s *source) splitLeaf(n *sitter.Node) []Token {
	text := s.content(n)
	start := s.position(n.StartPoint(), n.StartByte())
	if n.IsNamed() && n.Type() != "ERROR" {
		return []Token{{Kind: classify(text), Text: text, Span: s.span(n)}}
	}

	var toks []Token
	for i := 0; i < len(text); {
		r, w := utf8.DecodeRuneInString(text[i:])
		j := i + w
		kind := PunctToken
		switch {
		case unicode.IsSpace(r):
			i = j
			continue
		case isIdentStart(r):
			for j < len(text) {
				r, w := utf8.DecodeRuneInString(text[j:])
				if !isIdentContinue(r) {
					break
				}
				j += w
			}
			kind = IdentToken
		default:
			for _, p := range joinedPuncts {
				if strings.HasPrefix(text[i:], p) {
					j = i + len(p)
					break
				}
			}
		}
		toks = append(toks, Token{Kind: kind, Text: text[i:j], Span: Span{
			Start: Position{Line: start.Line, Column: start.Column + i, Offset: start.Offset + i},
			End:   Position{Line: start.Line, Column: start.Column + j, Offset: start.Offset + j},
		}})
		i = j
	}

	return toks
}

// unterminated reports whether a string literal lacks its closing quote.
func unterminated(typ, text string) bool {
	switch typ {
	case "string_literal":
		return len(text) < 2 || !strings.HasSuffix(text, "\"")
	case "raw_string_literal":
		hashes := strings.TrimLeft(strings.TrimLeft(text, "b"), "r")
		hashes = hashes[:len(hashes)-len(strings.TrimLeft(hashes, "#"))]
		return !strings.HasSuffix(text, "\""+hashes) || len(text) < 2*len(hashes)+3
	}

	return false
}

func classify(text string) Kind {
	r, _ := utf8.DecodeRuneInString(text)
	switch {
	case isIdentStart(r), r == '$':
		return IdentToken
	case unicode.IsDigit(r), r == '"':
		return LiteralToken
	case r == '\'' && len(text) > 1 && !strings.HasSuffix(text, "'"):
		return LifetimeToken
	}

	return PunctToken
}

// joinLifetimes merges a quote directly followed by an identifier, which is
// how token trees spell lifetimes.
func joinLifetimes(toks []Token) []Token {
	out := toks[:0]
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.Kind == PunctToken && t.Text == "'" && i+1 < len(toks) &&
			toks[i+1].Kind == IdentToken && toks[i+1].Span.Start.Offset == t.Span.End.Offset {
			next := toks[i+1]
			t = Token{Kind: LifetimeToken, Text: "'" + next.Text, Span: Span{Start: t.Span.Start, End: next.Span.End}}
			i++
		}
		out = append(out, t)
	}

	return out
}

func checkDelimiters(toks []Token) error {
	var stack []Token
	for _, t := range toks {
		if t.Kind != PunctToken {
			continue
		}
		switch t.Text {
		case "(", "[", "{":
			stack = append(stack, t)
		case ")", "]", "}":
			if len(stack) == 0 || closerOf(stack[len(stack)-1].Text) != t.Text {
				return &LexError{Span: t.Span, Message: fmt.Sprintf(ErrUnbalancedDelimiter, t)}
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		open := stack[len(stack)-1]
		return &LexError{Span: open.Span, Message: fmt.Sprintf(ErrUnbalancedDelimiter, open)}
	}

	return nil
}

func closerOf(text string) string {
	switch text {
	case "(":
		return ")"
	case "[":
		return "]"
	case "{":
		return "}"
	}

	return ""
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func quoteRune(s string) string {
	return "'" + s + "'"
}
