package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintRoundTrip(t *testing.T) {
	testCases := []string{
		"pub trait A<T: Clone + 'static>: Send where T: Default { type Out: Copy; const N: usize = 3; fn f(&self, x: &'a mut T) -> Option<Self::Out>; fn g() {} }",
		"impl<'a, T> Foo<'a> for Bar<T> where T: Iterator<Item = u8> { fn f(self: Box<Self>) {} }",
		`extern "C" { pub fn f(x: *const u8, ...) -> i32; static mut G: u32; type T; }`,
		"mod m { use std::fmt; fn f() -> u8 { 0 } }",
		"fn f<F: Fn(u32) -> u32>(f: F) -> impl Iterator<Item = u32> {}",
		"pub(crate) fn f(v: [u8; 4], t: (u8,), u: (), d: &dyn for<'a> Fn(&'a u8)) {}",
		"type Pair<T> = (T, T);",
		"const X: u32 = 1 + 2;",
		"impl !Send for Foo {}",
		`#[automock(mod mock)] extern "C" { fn f(); }`,
		"pub struct S<T> { x: T }",
		"impl<A: Copy, B: Clone> ::std::default::Default for S<A, B> {}",
		"m!(x);",
		"extern crate core as c;",
	}

	for _, src := range testCases {
		t.Run(src, func(t *testing.T) {
			a := assert.New(t)

			item := parseItem(t, src)
			a.Equal(src, Print(item))

			// printing is a fixed point
			again := parseItem(t, Print(item))
			a.Equal(Print(item), Print(again))
		})
	}
}

func TestPrintType(t *testing.T) {
	testCases := []struct {
		src  string
		want string
	}{
		{src: "& 'a  mut  Vec < T >", want: "&'a mut Vec<T>"},
		{src: "* const u8", want: "*const u8"},
		{src: "< Vec<T> as IntoIterator > :: Item", want: "<Vec<T> as IntoIterator>::Item"},
		{src: "::std :: rc :: Rc<u8>", want: "::std::rc::Rc<u8>"},
		{src: "dyn Fn ( u8 ) -> u8 + Send", want: "dyn Fn(u8) -> u8 + Send"},
		{src: "unsafe extern \"C\" fn(u8, ...)", want: `unsafe extern "C" fn(u8, ...)`},
		{src: "impl Iterator < Item = u8 > + Send", want: "impl Iterator<Item = u8> + Send"},
		{src: "Box<dyn Fn(u8) -> Self>", want: "Box<dyn Fn(u8) -> Self>"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			ty, err := ParseType(tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.want, Print(ty))
		})
	}
}

func TestPrintGenerics(t *testing.T) {
	a := assert.New(t)

	trait := parseItem(t, "trait A<'a: 'b, T: Clone = u8, const N: usize> where T: Send {}").(*ItemTrait)
	a.Equal("<'a: 'b, T: Clone, const N: usize>", PrintImplGenerics(trait.Generics))
	a.Equal("<'a, T, N>", PrintTypeGenerics(trait.Generics))
	a.Equal("where T: Send", PrintWhere(trait.Generics))
	a.Equal("<'a: 'b, T: Clone = u8, const N: usize>", Print(trait.Generics))

	plain := parseItem(t, "trait B {}").(*ItemTrait)
	a.Empty(PrintImplGenerics(plain.Generics))
	a.Empty(PrintTypeGenerics(plain.Generics))
	a.Empty(PrintWhere(plain.Generics))

	a.Equal("<>", PrintTypeGenerics(Generics{Angled: true}))
}

func TestRender(t *testing.T) {
	testCases := []struct {
		src  string
		want string
	}{
		{src: "&mut ::mockall::Foo", want: "&mut ::mockall::Foo"},
		{src: "fn new ( ) -> Self", want: "fn new() -> Self"},
		{src: "impl ! Send", want: "impl !Send"},
		{src: "println ! ( x )", want: "println!(x)"},
		{src: "Vec < u8 >", want: "Vec<u8>"},
		{src: "pub ( crate ) fn", want: "pub(crate) fn"},
		{src: "# [ derive ( Default ) ]", want: "#[derive(Default)]"},
		{src: "{ }", want: "{}"},
		{src: "{ a }", want: "{ a }"},
		{src: "Foo :: < u8 > :: new ( )", want: "Foo::<u8>::new()"},
		{src: "impl < T > :: std :: Foo", want: "impl<T> ::std::Foo"},
		{src: "impl<T: Into<u8>> ::std::Foo for Bar<T>", want: "impl<T: Into<u8>> ::std::Foo for Bar<T>"},
		{src: "lazy_static ! { }", want: "lazy_static! {}"},
	}

	for _, tc := range testCases {
		t.Run(tc.want, func(t *testing.T) {
			toks, err := Lex(tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.want, Render(toks))
		})
	}
}

func TestCloneItemTrait(t *testing.T) {
	a := assert.New(t)

	orig := parseItem(t, "trait A<T> { type Out; fn f(&self, x: T) -> Vec<T>; }").(*ItemTrait)
	before := Print(orig)

	clone := CloneItemTrait(orig)
	clone.Ident.Name = "B"
	clone.Generics = Generics{}
	method := clone.Items[1].(*TraitItemMethod)
	method.Sig.Inputs[1].(*PatType).Type = TypeFromPath(PathFromIdent(NewIdent("u8")))
	method.Sig.Output.(*PathType).Path.Segments[0].Ident.Name = "Box"

	a.Equal(before, Print(orig))
	a.Equal("trait B { type Out; fn f(&self, x: u8) -> Box<T>; }", Print(clone))
}
