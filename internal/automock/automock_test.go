package automock

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/akedrou/textdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/KimMachineGun/automock/internal/syntax"
	"github.com/KimMachineGun/automock/internal/testutil"
)

const testRoot = "testdata"

type testCase struct {
	name   string
	attr   string
	input  string
	output string
	err    string
}

func loadTestCase(path string) (testCase, error) {
	ar, err := txtar.ParseFile(path)
	if err != nil {
		return testCase{}, err
	}

	tc := testCase{name: strings.TrimSuffix(filepath.Base(path), ".txtar")}
	for _, f := range ar.Files {
		data := string(f.Data)
		switch f.Name {
		case "attr":
			tc.attr = data
		case "input":
			tc.input = data
		case "output":
			tc.output = data
		case "error":
			tc.err = strings.TrimSpace(data)
		}
	}

	return tc, nil
}

func TestExpand(t *testing.T) {
	a := assert.New(t)

	paths, err := filepath.Glob(filepath.Join(testRoot, "*.txtar"))
	a.NoError(err)
	a.NotEmpty(paths)

	for _, path := range paths {
		tc, err := loadTestCase(path)
		a.NoError(err)

		testExpand(t, tc)
	}
}

func testExpand(t *testing.T, tc testCase) {
	t.Run(tc.name, func(t *testing.T) {
		a := assert.New(t)

		m := New(WithLogger(testutil.NewTestLogger(t)))
		out, err := m.ExpandSource(tc.attr, tc.input)
		if tc.err != "" {
			var d *Diagnostic
			if a.ErrorAs(err, &d) {
				a.Equal(tc.err, d.Msg)
				a.True(d.Span.IsValid(), "diagnostic without a span")
			}
			a.Empty(out)
			return
		}
		require.NoError(t, err)

		if tc.output != out {
			t.Errorf("unexpected output for %s:\n%s", tc.name, textdiff.Unified("expected", "actual", tc.output, out))
		}
	})
}

func TestExpandIsDeterministic(t *testing.T) {
	a := assert.New(t)

	tc, err := loadTestCase(filepath.Join(testRoot, "generic_trait.txtar"))
	a.NoError(err)

	first, err := New().ExpandSource(tc.attr, tc.input)
	a.NoError(err)
	second, err := New().ExpandSource(tc.attr, tc.input)
	a.NoError(err)
	a.Equal(first, second)
}

func TestExpandTrailingTokens(t *testing.T) {
	a := assert.New(t)

	_, err := New().ExpandSource("", "trait A {} trait B {}")

	var d *Diagnostic
	a.ErrorAs(err, &d)
	a.Contains(d.Msg, "after the item")
	a.Equal(1, d.Span.Start.Line)
	a.Equal(12, d.Span.Start.Column)
}

func TestExpandLexError(t *testing.T) {
	a := assert.New(t)

	_, err := New().ExpandSource("", "trait A { fn foo(&self) -> &str { \"oops } }")

	var d *Diagnostic
	a.ErrorAs(err, &d)
	a.Equal(syntax.ErrUnterminatedString, d.Msg)
}

type recordingBuilder struct {
	specs []*MockSpec
}

func (b *recordingBuilder) Build(spec *MockSpec) (string, error) {
	b.specs = append(b.specs, spec)

	return "struct Recorded;", nil
}

func TestExpandUsesBuilder(t *testing.T) {
	a := assert.New(t)

	b := &recordingBuilder{}
	m := New(WithBuilder(b), WithLogger(testutil.NewTestLogger(t)))

	out, err := m.ExpandSource("", "trait A { fn foo(&self, x: u32) -> u32; }")
	a.NoError(err)
	a.Equal("struct Recorded;\n", out)

	if a.Len(b.specs, 1) {
		spec := b.specs[0]
		a.Equal("A", spec.Name.Name)
		a.Empty(spec.Methods)
		if a.Len(spec.Traits, 1) && a.Len(spec.Traits[0].Items, 1) {
			method := spec.Traits[0].Items[0].(*syntax.TraitItemMethod)
			a.Equal("fn foo(&self, x: u32) -> u32", syntax.Print(method.Sig))
		}
	}
}

func TestDiagnosticCompileError(t *testing.T) {
	a := assert.New(t)

	d := &Diagnostic{Msg: `extern blocks need a "mod <name>;" attribute`}
	a.Equal(`compile_error!("extern blocks need a \"mod <name>;\" attribute");`, d.CompileError())
	a.Equal(`extern blocks need a "mod <name>;" attribute`, d.Error())

	d.Span = syntax.Span{
		Start: syntax.Position{Line: 3, Column: 7},
		End:   syntax.Position{Line: 3, Column: 9},
	}
	a.Equal(`3:7: extern blocks need a "mod <name>;" attribute`, d.Error())
}
