package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLex(t *testing.T) {
	a := assert.New(t)

	toks, err := Lex(`pub fn foo<'a>(x: &'a str) -> Vec<u8> { bar!(b"hi", 'c', r#"raw"#, 1.5e3f32, a::<b>=>c) }`)
	a.NoError(err)

	type tok struct {
		Kind Kind
		Text string
	}
	var got []tok
	for _, t := range toks {
		got = append(got, tok{t.Kind, t.Text})
	}

	a.Equal([]tok{
		{IdentToken, "pub"}, {IdentToken, "fn"}, {IdentToken, "foo"},
		{PunctToken, "<"}, {LifetimeToken, "'a"}, {PunctToken, ">"},
		{PunctToken, "("}, {IdentToken, "x"}, {PunctToken, ":"}, {PunctToken, "&"}, {LifetimeToken, "'a"}, {IdentToken, "str"}, {PunctToken, ")"},
		{PunctToken, "->"}, {IdentToken, "Vec"}, {PunctToken, "<"}, {IdentToken, "u8"}, {PunctToken, ">"},
		{PunctToken, "{"},
		{IdentToken, "bar"}, {PunctToken, "!"}, {PunctToken, "("},
		{LiteralToken, `b"hi"`}, {PunctToken, ","},
		{LiteralToken, "'c'"}, {PunctToken, ","},
		{LiteralToken, `r#"raw"#`}, {PunctToken, ","},
		{LiteralToken, "1.5e3f32"}, {PunctToken, ","},
		{IdentToken, "a"}, {PunctToken, "::"}, {PunctToken, "<"}, {IdentToken, "b"}, {PunctToken, ">"}, {PunctToken, "=>"}, {IdentToken, "c"},
		{PunctToken, ")"},
		{PunctToken, "}"},
	}, got)
}

func TestLexSpans(t *testing.T) {
	a := assert.New(t)

	toks, err := Lex("trait A {\n    // comment\n    /* block */ fn f();\n}")
	a.NoError(err)
	a.Len(toks, 9)

	a.Equal(Position{Line: 1, Column: 1, Offset: 0}, toks[0].Span.Start)
	a.Equal(Position{Line: 1, Column: 6, Offset: 5}, toks[0].Span.End)

	fn := toks[3]
	a.Equal("fn", fn.Text)
	a.Equal(3, fn.Span.Start.Line)
	a.Equal(17, fn.Span.Start.Column)

	a.Equal(4, toks[8].Span.Start.Line)
	a.Equal(1, toks[8].Span.Start.Column)
}

func TestLexErrors(t *testing.T) {
	testCases := []struct {
		src  string
		msg  string
		line int
	}{
		{src: `"open`, msg: ErrUnterminatedString, line: 1},
		{src: "fn f() {\n    \"open\n}", msg: ErrUnterminatedString, line: 2},
		{src: "fn f() \\", msg: "unexpected character '\\'", line: 1},
		{src: "trait A {\n    fn f(&self);\n", msg: "unbalanced delimiter `{`", line: 1},
		{src: "fn f() { g(] }", msg: "unbalanced delimiter `]`", line: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			a := assert.New(t)

			_, err := Lex(tc.src)

			var le *LexError
			if a.ErrorAs(err, &le) {
				a.Equal(tc.msg, le.Message)
				a.Equal(tc.line, le.Span.Start.Line)
			}
		})
	}
}

func TestLayoutKeepsPositions(t *testing.T) {
	a := assert.New(t)

	src := "\n  trait A {\n\tfn f(&self);\n}"
	toks, err := Lex(src)
	a.NoError(err)

	relexed, err := Lex(string(layout(toks)))
	a.NoError(err)
	a.Equal(toks, relexed)
}

func TestIsKeyword(t *testing.T) {
	a := assert.New(t)

	a.True(IsKeyword("fn"))
	a.True(IsKeyword("where"))
	a.False(IsKeyword("Self"))
	a.False(IsKeyword("self"))
	a.False(IsKeyword("crate"))
	a.False(IsKeyword("foo"))
}
