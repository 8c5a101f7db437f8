package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akedrou/textdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/KimMachineGun/automock/internal/automock"
	"github.com/KimMachineGun/automock/internal/syntax"
)

const testRoot = "testdata"

type testCase struct {
	attr   string
	inputs []string
	output string
	errMsg string
}

// loadTestCase writes the .rs files of the archive into a temporary
// directory and returns their paths in archive order.
func loadTestCase(t *testing.T, path string) testCase {
	t.Helper()

	ar, err := txtar.ParseFile(path)
	require.NoError(t, err)

	dir := t.TempDir()
	var tc testCase
	for _, f := range ar.Files {
		switch {
		case f.Name == "attr":
			tc.attr = strings.TrimSpace(string(f.Data))
		case f.Name == "output":
			tc.output = string(f.Data)
		case f.Name == "error":
			tc.errMsg = string(f.Data)
		case strings.HasSuffix(f.Name, ".rs"):
			p := filepath.Join(dir, f.Name)
			require.NoError(t, os.WriteFile(p, f.Data, 0o600))
			tc.inputs = append(tc.inputs, p)
		default:
			t.Fatalf("unexpected section %q in %s", f.Name, path)
		}
	}

	return tc
}

func TestRun(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join(testRoot, "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		name := strings.TrimSuffix(filepath.Base(path), ".txtar")
		t.Run(name, func(t *testing.T) {
			testRun(t, path)
		})
	}
}

func testRun(t *testing.T, path string) {
	a := assert.New(t)

	tc := loadTestCase(t, path)
	cfg := &Config{
		Header: defaultHeader,
		Jobs:   2,
		Color:  "never",
		Attr:   tc.attr,
	}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), cfg, tc.inputs, &stdout, &stderr, false)

	if tc.errMsg != "" {
		a.ErrorIs(err, errExpansionFailed)
		a.Empty(stdout.String())

		// diagnostics name the file relative to the archive
		got := strings.ReplaceAll(stderr.String(), filepath.Dir(tc.inputs[0])+string(filepath.Separator), "")
		for _, line := range strings.Split(strings.TrimSpace(tc.errMsg), "\n") {
			a.Contains(got, line)
		}
		return
	}

	require.NoError(t, err, stderr.String())

	expected, actual := defaultHeader+"\n\n"+tc.output, stdout.String()
	if !a.Equal(expected, actual) {
		t.Log(textdiff.Unified("expected", "actual", expected, actual))
	}
}

func TestRunWritesOutputFile(t *testing.T) {
	a := assert.New(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "a.rs")
	require.NoError(t, os.WriteFile(input, []byte("#[automock]\ntrait A {}\n"), 0o600))

	cfg := &Config{
		Output: filepath.Join(dir, "mocks.rs"),
		Header: "// mocks",
		Jobs:   1,
		Color:  "never",
	}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), cfg, []string{input}, &stdout, &stderr, false)
	require.NoError(t, err)

	a.Empty(stdout.String())
	a.Contains(stderr.String(), "msg=generated")
	a.Contains(stderr.String(), "mocks=1")

	b, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	a.True(strings.HasPrefix(string(b), "// mocks\n"))
	a.Contains(string(b), "struct MockA")
}

func TestRunMissingFile(t *testing.T) {
	cfg := &Config{Jobs: 1, Color: "never"}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), cfg, []string{filepath.Join(t.TempDir(), "missing.rs")}, &stdout, &stderr, false)
	assert.ErrorIs(t, err, errExpansionFailed)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunInvalidAttr(t *testing.T) {
	cfg := &Config{Jobs: 1, Color: "never", Attr: `mod "open`}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), cfg, nil, &stdout, &stderr, false)
	assert.ErrorContains(t, err, "invalid attr")
}

func TestExpandSourceSkipsUnannotated(t *testing.T) {
	e, err := newExpander(nil, "", nil)
	require.NoError(t, err)

	mocks, err := e.expandSource("trait A {} #[derive(Debug)] struct S; #[automock_like] mod m {}")
	require.NoError(t, err)
	assert.Empty(t, mocks)
}

func TestJoinMocks(t *testing.T) {
	a := assert.New(t)

	results := []fileResult{
		{mocks: []string{"struct A;\n"}},
		{},
		{mocks: []string{"struct B;\n", "struct C;\n"}},
	}

	out, n := joinMocks("// header", results)
	a.Equal("// header\n\nstruct A;\n\nstruct B;\n\nstruct C;\n", out)
	a.Equal(3, n)

	out, n = joinMocks("", results[:1])
	a.Equal("struct A;\n", out)
	a.Equal(1, n)
}

func diagnosticAt(pos syntax.Position, msg string) *automock.Diagnostic {
	return &automock.Diagnostic{Span: syntax.Span{Start: pos, End: pos}, Msg: msg}
}

func TestRenderDiagnostic(t *testing.T) {
	a := assert.New(t)

	pos := syntax.Position{Line: 2, Column: 3}
	err := &DiagnosticError{
		File:   "a.rs",
		Source: "trait A {\n\t\tfn f();\n}\n",
		Diag:   diagnosticAt(pos, "boom"),
	}

	a.Equal("a.rs:2:3: boom", err.Error())
	a.Equal("a.rs:2:3: error: boom\n2 | \t\tfn f();\n  | \t\t^\n", err.Render(newDiagnosticStyles(&bytes.Buffer{}, false)))

	noSpan := &DiagnosticError{File: "a.rs", Diag: diagnosticAt(syntax.Position{}, "boom")}
	a.Equal("a.rs: boom", noSpan.Error())
	a.Equal("a.rs: error: boom\n", noSpan.Render(newDiagnosticStyles(&bytes.Buffer{}, false)))
}

func TestUseColor(t *testing.T) {
	a := assert.New(t)

	f, err := os.CreateTemp(t.TempDir(), "stderr")
	require.NoError(t, err)
	defer f.Close()

	a.True(useColor("always", f))
	a.False(useColor("never", f))
	a.False(useColor("auto", f))
}
