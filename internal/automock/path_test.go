package automock

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KimMachineGun/automock/internal/syntax"
)

func parsePath(t *testing.T, src string) *syntax.Path {
	t.Helper()

	ty, err := syntax.ParseType(src)
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	return ty.(*syntax.PathType).Path
}

func TestFindIdentFromPath(t *testing.T) {
	a := assert.New(t)

	ident, args, err := FindIdentFromPath(parsePath(t, "Foo<'a, T>"))
	a.NoError(err)
	a.Equal("Foo", ident.Name)
	if angled, ok := args.(*syntax.AngleBracketedArgs); a.True(ok) {
		a.Len(angled.Args, 2)
	}

	ident, args, err = FindIdentFromPath(parsePath(t, "Bar"))
	a.NoError(err)
	a.Equal("Bar", ident.Name)
	a.Nil(args)
}

func TestFindIdentFromPathMultiSegment(t *testing.T) {
	a := assert.New(t)

	_, _, err := FindIdentFromPath(parsePath(t, "foo::Bar<T>"))

	var d *Diagnostic
	if a.ErrorAs(err, &d) {
		a.Equal("only declarations defined in the current module are supported", d.Msg)
		a.Equal(1, d.Span.Start.Column)
	}
}
