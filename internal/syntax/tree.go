package syntax

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// source is a tree-sitter parse tree together with the text it was built from.
type source struct {
	text []byte
	tree *sitter.Tree

	// the text may start with a synthetic prefix; positions are reported
	// relative to what follows it
	rowShift  int
	byteShift int
}

func parseSource(text []byte) (*source, error) {
	return parseSourceWithPrefix(text, 0, 0)
}

func parseSourceWithPrefix(text []byte, rows, bytes int) (*source, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, text)
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}

	return &source{text: text, tree: tree, rowShift: rows, byteShift: bytes}, nil
}

func (s *source) close() {
	s.tree.Close()
}

func (s *source) root() *sitter.Node {
	return s.tree.RootNode()
}

func (s *source) content(n *sitter.Node) string {
	return n.Content(s.text)
}

func (s *source) position(p sitter.Point, offset uint32) Position {
	return Position{
		Line:   int(p.Row) + 1 - s.rowShift,
		Column: int(p.Column) + 1,
		Offset: int(offset) - s.byteShift,
	}
}

func (s *source) span(n *sitter.Node) Span {
	return Span{
		Start: s.position(n.StartPoint(), n.StartByte()),
		End:   s.position(n.EndPoint(), n.EndByte()),
	}
}

// spanBetween covers from the start of a to the end of b.
func (s *source) spanBetween(a, b *sitter.Node) Span {
	return Span{
		Start: s.position(a.StartPoint(), a.StartByte()),
		End:   s.position(b.EndPoint(), b.EndByte()),
	}
}

// check reports the first lexical or syntax error in the tree.
func (s *source) check() error {
	if _, err := s.lex(s.root()); err != nil {
		return err
	}

	return s.firstError(s.root())
}

// firstError returns the first ERROR or MISSING node under n in source order.
func (s *source) firstError(n *sitter.Node) error {
	switch {
	case n.IsMissing():
		return &ParseError{Span: s.span(n), Message: fmt.Sprintf(ErrExpected, describeNode(n))}
	case n.Type() == "ERROR":
		toks := s.leaves(n)
		if len(toks) == 0 {
			return &ParseError{Span: s.span(n), Message: fmt.Sprintf(ErrUnexpected, "`"+s.content(n)+"`")}
		}
		return &ParseError{Span: toks[0].Span, Message: fmt.Sprintf(ErrUnexpected, toks[0])}
	case !n.HasError():
		return nil
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		if err := s.firstError(n.Child(i)); err != nil {
			return err
		}
	}

	return nil
}

// describeNode names what a missing node stands for.
func describeNode(n *sitter.Node) string {
	if !n.IsNamed() {
		return "`" + n.Type() + "`"
	}

	return strings.ReplaceAll(n.Type(), "_", " ")
}

func (s *source) errorAt(n *sitter.Node, format string, args ...interface{}) error {
	return &ParseError{Span: s.span(n), Message: fmt.Sprintf(format, args...)}
}

func (s *source) field(n *sitter.Node, name string) *sitter.Node {
	return n.ChildByFieldName(name)
}

// childOfType returns the first direct child of n with the node type typ.
func childOfType(n *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c.Type() == typ {
			return c
		}
	}

	return nil
}

func hasChild(n *sitter.Node, typ string) bool {
	return childOfType(n, typ) != nil
}

func isComment(n *sitter.Node) bool {
	switch n.Type() {
	case "line_comment", "block_comment":
		return true
	}

	return false
}

// namedChildren returns the named children of n without comments.
func namedChildren(n *sitter.Node) []*sitter.Node {
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if !isComment(c) {
			out = append(out, c)
		}
	}

	return out
}

// layout writes toks back at their source positions so that parsing the
// result reports the same lines, columns and offsets as the original text.
// Tokens without a usable position are appended after a single space.
func layout(toks []Token) []byte {
	var sb strings.Builder
	line, col, off := 1, 1, 0

	for _, t := range toks {
		start := t.Span.Start
		placed := false
		if start.IsValid() && start.Offset >= off {
			newlines := start.Line - line
			indent := start.Column - 1
			if newlines == 0 {
				indent = start.Column - col
			}
			pad := start.Offset - off - newlines - indent
			if newlines >= 0 && indent >= 0 && pad >= 0 && (newlines > 0 || pad == 0) {
				sb.WriteString(strings.Repeat(" ", pad))
				sb.WriteString(strings.Repeat("\n", newlines))
				sb.WriteString(strings.Repeat(" ", indent))
				line, col, off = start.Line, start.Column, start.Offset
				placed = true
			}
		}
		if !placed && sb.Len() > 0 {
			sb.WriteByte(' ')
			col++
			off++
		}

		sb.WriteString(t.Text)
		for i := 0; i < len(t.Text); i++ {
			if t.Text[i] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		off += len(t.Text)
	}

	return []byte(sb.String())
}
