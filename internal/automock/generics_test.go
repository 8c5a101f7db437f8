package automock

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/KimMachineGun/automock/internal/syntax"
)

// parseImplHeader returns the generics and trait arguments of an impl block.
func parseImplHeader(t *testing.T, src string) (*syntax.Generics, syntax.PathArguments) {
	t.Helper()

	toks, err := syntax.Lex(src)
	require.NoError(t, err)
	item, err := syntax.ParseItem(toks)
	require.NoError(t, err)

	impl := item.(*syntax.ItemImpl)
	segs := impl.Trait.Path.Segments

	return &impl.Generics, segs[len(segs)-1].Arguments
}

func TestFilterGenerics(t *testing.T) {
	testCases := []struct {
		src  string
		want string
	}{
		{src: "impl<A: Copy, B: Clone> Foo<A> for Bar<A, B> {}", want: "<A: Copy>"},
		{src: "impl<A, B> Foo<B, A> for Bar<A, B> {}", want: "<A, B>"},
		{src: "impl<'a, 'b: 'a, T> Foo<'b, T> for Bar<'a, 'b, T> {}", want: "<'b: 'a, T>"},
		{src: "impl<T, const N: usize> Foo<T, N> for Bar<T, N> {}", want: "<T>"},
		{src: "impl<T> Foo<Vec<T>> for Bar<T> {}", want: ""},
		{src: "impl<T> Foo<u32> for Bar<T> {}", want: ""},
		{src: "impl<T> Foo for Bar<T> {}", want: ""},
		{src: "impl<T> Foo for Bar<T> where T: Clone {}", want: ""},
		{src: "impl Foo<> for Bar {}", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			a := assert.New(t)

			g, args := parseImplHeader(t, tc.src)
			out, err := FilterGenerics(g, args)
			a.NoError(err)
			a.Equal(tc.want, syntax.PrintImplGenerics(*out))
			a.Nil(out.Where)
			if tc.want == "" {
				a.True(out.IsEmpty())
				a.False(out.Angled)
			}
		})
	}
}

func TestFilterGenericsErrors(t *testing.T) {
	testCases := []struct {
		src string
		msg string
	}{
		{src: "impl<T> Foo<T> for Bar<T> where T: Clone {}", msg: "where clauses are not supported here"},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			a := assert.New(t)

			g, args := parseImplHeader(t, tc.src)
			_, err := FilterGenerics(g, args)

			var d *Diagnostic
			if a.ErrorAs(err, &d) {
				a.Equal(tc.msg, d.Msg)
			}
		})
	}
}

func TestFilterGenericsFnArgs(t *testing.T) {
	a := assert.New(t)

	// an impl header cannot name a Fn trait, so take the arguments from a type
	ty, err := syntax.ParseType("Box<dyn FnMut(T) -> u32>")
	require.NoError(t, err)
	obj := ty.(*syntax.PathType).Path.Segments[0].Arguments.(*syntax.AngleBracketedArgs).Args[0].(*syntax.TypeArg).Type
	fn := obj.(*syntax.TraitObjectType).Bounds[0].(*syntax.TraitBound)
	args := fn.Path.Segments[0].Arguments
	require.IsType(t, &syntax.ParenthesizedArgs{}, args)

	g, _ := parseImplHeader(t, "impl<T> Foo<T> for Bar<T> {}")
	_, err = FilterGenerics(g, args)

	var d *Diagnostic
	if a.ErrorAs(err, &d) {
		a.Equal("mocking Fn objects is not supported", d.Msg)
		a.True(d.Span.IsValid())
	}
}

func TestFilterGenericsKeepsInput(t *testing.T) {
	a := assert.New(t)

	g, args := parseImplHeader(t, "impl<A: Copy, B> Foo<A> for Bar<A, B> {}")
	out, err := FilterGenerics(g, args)
	a.NoError(err)

	out.Params[0].(*syntax.TypeParam).Bounds = nil
	a.Equal("<A: Copy, B>", syntax.PrintImplGenerics(*g))
}

type drawnParam struct {
	param      syntax.GenericParam
	name       string
	referenced bool
}

func TestFilterGenericsSound(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 8).Draw(rt, "params")

		var (
			drawn []drawnParam
			g     syntax.Generics
			args  = &syntax.AngleBracketedArgs{}
		)
		for i := 0; i < n; i++ {
			kind := rapid.SampledFrom([]string{"type", "lifetime", "const"}).Draw(rt, "kind")
			referenced := rapid.Bool().Draw(rt, "referenced")

			var d drawnParam
			switch kind {
			case "type":
				d.name = fmt.Sprintf("T%d", i)
				d.param = &syntax.TypeParam{Ident: syntax.NewIdent(d.name)}
				if referenced {
					args.Args = append(args.Args, &syntax.TypeArg{
						Type: syntax.TypeFromPath(syntax.PathFromIdent(syntax.NewIdent(d.name))),
					})
				}
			case "lifetime":
				d.name = fmt.Sprintf("'l%d", i)
				d.param = &syntax.LifetimeParam{Lifetime: syntax.Lifetime{Name: d.name}}
				if referenced {
					args.Args = append(args.Args, &syntax.LifetimeArg{Lifetime: syntax.Lifetime{Name: d.name}})
				}
			case "const":
				d.name = fmt.Sprintf("N%d", i)
				d.param = &syntax.ConstParam{Ident: syntax.NewIdent(d.name), Type: syntax.TypeFromPath(syntax.PathFromIdent(syntax.NewIdent("usize")))}
				if referenced {
					args.Args = append(args.Args, &syntax.TypeArg{
						Type: syntax.TypeFromPath(syntax.PathFromIdent(syntax.NewIdent(d.name))),
					})
				}
				referenced = false
			}
			d.referenced = referenced
			drawn = append(drawn, d)
			g.Params = append(g.Params, d.param)
		}
		if n > 0 {
			g.Angled = true
		}
		if rapid.Bool().Draw(rt, "unrelated") {
			args.Args = append(args.Args, &syntax.TypeArg{
				Type: syntax.TypeFromPath(syntax.PathFromIdent(syntax.NewIdent("u32"))),
			})
		}
		args.Args = rapid.Permutation(args.Args).Draw(rt, "order")

		out, err := FilterGenerics(&g, args)
		if err != nil {
			rt.Fatalf("unexpected error: %v", err)
		}

		var want []string
		for _, d := range drawn {
			if d.referenced {
				want = append(want, d.name)
			}
		}

		var got []string
		for _, gp := range out.Params {
			switch gp := gp.(type) {
			case *syntax.TypeParam:
				got = append(got, gp.Ident.Name)
			case *syntax.LifetimeParam:
				got = append(got, gp.Lifetime.Name)
			default:
				rt.Fatalf("unexpected parameter %s", syntax.Print(gp))
			}
		}
		if fmt.Sprint(want) != fmt.Sprint(got) {
			rt.Fatalf("kept %v, want %v", got, want)
		}
		if len(got) == 0 && out.Angled {
			rt.Fatalf("empty result must not be angled")
		}
	})
}
