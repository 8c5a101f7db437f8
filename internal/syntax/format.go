package syntax

import (
	"strings"
)

const indentWidth = 4

// Format re-lays out source text: one item or statement per line, with
// brace-based indentation. Comments are dropped.
func Format(src string) (string, error) {
	toks, err := Lex(src)
	if err != nil {
		return "", err
	}
	return FormatTokens(toks), nil
}

// FormatTokens lays out a token stream as multi-line source text.
func FormatTokens(toks []Token) string {
	f := &formatter{lineStart: true}
	for i, tok := range toks {
		f.token(tok, toks, i)
	}
	f.newline()
	return f.sb.String()
}

type formatter struct {
	sb        strings.Builder
	indent    int
	lineStart bool
	spacer    spacer
	// open delimiters; "#[" marks an attribute's bracket
	stack []frame
}

// frame is an open delimiter and the generic angle brackets opened inside it.
type frame struct {
	delim  string
	angles int
}

func (f *formatter) newline() {
	if f.lineStart {
		return
	}
	f.sb.WriteByte('\n')
	f.lineStart = true
}

// atStatementLevel reports whether the innermost open delimiter is a brace.
func (f *formatter) atStatementLevel() bool {
	return len(f.stack) == 0 || f.stack[len(f.stack)-1].delim == "{"
}

// inBraceList reports whether a comma separates the entries of a braced
// list rather than generic arguments.
func (f *formatter) inBraceList() bool {
	if len(f.stack) == 0 {
		return false
	}
	top := f.stack[len(f.stack)-1]
	return top.delim == "{" && top.angles == 0
}

func (f *formatter) push(delim string) {
	f.stack = append(f.stack, frame{delim: delim})
}

func (f *formatter) pop() string {
	if len(f.stack) == 0 {
		return ""
	}
	top := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return top.delim
}

// angle records a < or > that belongs to the innermost delimiter.
func (f *formatter) angle(delta int) {
	if len(f.stack) == 0 {
		return
	}
	top := &f.stack[len(f.stack)-1]
	if top.angles+delta >= 0 {
		top.angles += delta
	}
}

func (f *formatter) token(tok Token, toks []Token, i int) {
	prev := Token{Kind: EOF}
	if i > 0 {
		prev = toks[i-1]
	}
	next := peekToken(toks, i+1)

	emptyBraces := tok.Is("}") && prev.Is("{")
	if tok.Is("}") && !emptyBraces {
		f.indent--
		if f.indent < 0 {
			f.indent = 0
		}
		f.newline()
	}

	space := f.spacer.space(prev, tok, next)
	switch {
	case f.lineStart:
		f.sb.WriteString(strings.Repeat(" ", f.indent*indentWidth))
	case i > 0 && space:
		f.sb.WriteByte(' ')
	}
	f.sb.WriteString(tok.Text)
	f.lineStart = false

	if tok.Kind != PunctToken {
		return
	}
	switch tok.Text {
	case "{":
		f.push("{")
		if !next.Is("}") {
			f.indent++
			f.newline()
		}
	case "(":
		f.push("(")
	case "[":
		if prev.Is("#") || (prev.Is("!") && i >= 2 && toks[i-2].Is("#")) {
			f.push("#[")
		} else {
			f.push("[")
		}
	case "<":
		f.angle(1)
	case ">":
		f.angle(-1)
	case ")":
		f.pop()
	case "]":
		if f.pop() == "#[" && f.atStatementLevel() {
			f.newline()
		}
	case "}":
		f.pop()
		if f.atStatementLevel() && !next.Is(",") && !next.Is(";") && !next.Is(")") {
			f.newline()
		}
	case ";":
		if f.atStatementLevel() {
			f.newline()
		}
	case ",":
		if f.inBraceList() {
			f.newline()
		}
	}
}
