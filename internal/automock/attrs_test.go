package automock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KimMachineGun/automock/internal/syntax"
)

func parseAttrs(t *testing.T, src string) (*Attrs, error) {
	t.Helper()

	toks, err := syntax.Lex(src)
	assert.NoError(t, err)

	return ParseAttrs(toks)
}

func TestParseAttrs(t *testing.T) {
	a := assert.New(t)

	attrs, err := parseAttrs(t, "type T = u32; mod mock; type U = Vec<Self::T>;")
	a.NoError(err)
	if a.NotNil(attrs.ModName) {
		a.Equal("mock", attrs.ModName.Name)
	}
	a.Equal(2, attrs.Len())

	ty, ok := attrs.Lookup("T")
	a.True(ok)
	a.Equal("u32", syntax.Print(ty))

	ty, ok = attrs.Lookup("U")
	a.True(ok)
	a.Equal("Vec<Self::T>", syntax.Print(ty))

	_, ok = attrs.Lookup("V")
	a.False(ok)
}

func TestParseAttrsEmpty(t *testing.T) {
	a := assert.New(t)

	attrs, err := ParseAttrs(nil)
	a.NoError(err)
	a.Nil(attrs.ModName)
	a.Zero(attrs.Len())
}

func TestParseAttrsLastValueWins(t *testing.T) {
	a := assert.New(t)

	attrs, err := parseAttrs(t, "type T = u32; type T = i64; mod a; mod b;")
	a.NoError(err)
	a.Equal(1, attrs.Len())

	ty, _ := attrs.Lookup("T")
	a.Equal("i64", syntax.Print(ty))
	a.Equal("b", attrs.ModName.Name)
}

func TestParseAttrsErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		msg  string
		col  int
	}{
		{name: "mod with body", src: "mod mock { }", msg: `mod name attributes must have the form "mod my_name;"`, col: 10},
		{name: "type without default", src: "type T;", msg: "automock type attributes must have a default value", col: 1},
		{name: "unknown directive", src: "type T = u32; static X;", msg: "expected `mod` or `type`", col: 15},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)

			_, err := parseAttrs(t, tc.src)

			var d *Diagnostic
			if a.ErrorAs(err, &d) {
				a.Equal(tc.msg, d.Msg)
				a.Equal(tc.col, d.Span.Start.Column)
			}
		})
	}
}

func TestParseAttrsSyntaxError(t *testing.T) {
	a := assert.New(t)

	_, err := parseAttrs(t, "type T = ;")

	var pe *syntax.ParseError
	a.ErrorAs(err, &pe)
}
