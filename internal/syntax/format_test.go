package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "trait",
			src:  "trait A { fn f(&self); fn g(&self) -> u8; }",
			want: "trait A {\n    fn f(&self);\n    fn g(&self) -> u8;\n}\n",
		},
		{
			name: "attribute",
			src:  "#[cfg(test)] mod m { fn f() {} }",
			want: "#[cfg(test)]\nmod m {\n    fn f() {}\n}\n",
		},
		{
			name: "fields",
			src:  "struct S { a: u8, b: u8 }",
			want: "struct S {\n    a: u8,\n    b: u8\n}\n",
		},
		{
			name: "generic arguments in fields",
			src:  "struct S { a: Vec<(u8), u16>, b: HashMap<String, Vec<u8>>, c: u8 }",
			want: "struct S {\n    a: Vec<(u8), u16>,\n    b: HashMap<String, Vec<u8>>,\n    c: u8\n}\n",
		},
		{
			name: "macro body",
			src:  "lazy_static! { static ref X: Mutex<Expectations<(u32), i64>> = Mutex::new(1); }",
			want: "lazy_static! {\n    static ref X: Mutex<Expectations<(u32), i64>> = Mutex::new(1);\n}\n",
		},
		{
			name: "impl generics before a global path",
			src:  "impl<A: Copy, B: Clone> ::std::default::Default for S<A, B> { fn f() {} }",
			want: "impl<A: Copy, B: Clone> ::std::default::Default for S<A, B> {\n    fn f() {}\n}\n",
		},
		{
			name: "comments",
			src:  "// c\nfn f() {} /* x */",
			want: "fn f() {}\n",
		},
		{
			name: "nested",
			src:  "impl A { fn f() { let x = S { a: 1 }; x } }",
			want: "impl A {\n    fn f() {\n        let x = S {\n            a: 1\n        };\n        x\n    }\n}\n",
		},
		{
			name: "empty",
			src:  "",
			want: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := assert.New(t)

			got, err := Format(tc.src)
			if a.NoError(err) {
				a.Equal(tc.want, got)
			}
		})
	}
}

func TestFormatIsIdempotent(t *testing.T) {
	a := assert.New(t)

	src := "pub trait A<T> where T: Send { type Out; fn f(&self, x: T) -> Self::Out { todo!() } }"
	once, err := Format(src)
	a.NoError(err)
	twice, err := Format(once)
	a.NoError(err)
	a.Equal(once, twice)
}

func TestFormatLexError(t *testing.T) {
	_, err := Format("fn f() { \"open }")

	var le *LexError
	assert.ErrorAs(t, err, &le)
}

func TestPrintFile(t *testing.T) {
	a := assert.New(t)

	f, err := ParseFile("#![allow(dead_code)] trait A {} fn f() {}")
	a.NoError(err)
	a.Equal("#![allow(dead_code)]\ntrait A {}\nfn f() {}\n", PrintFile(f))
}
