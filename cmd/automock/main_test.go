package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	a := assert.New(t)

	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile("a.rs", []byte("#[automock]\nmod m { pub fn f() {} }\n"), 0o600))

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--header", "// test", "--attr", "mod mock_m;", "--color", "never", "a.rs"})

	require.NoError(t, cmd.Execute(), stderr.String())
	a.Contains(stdout.String(), "// test\n")
	a.Contains(stdout.String(), "mod mock_m")
	a.NoFileExists(filepath.Join(dir, "mocks.rs"))
}

func TestRootCmdErrors(t *testing.T) {
	t.Chdir(t.TempDir())

	testCases := []struct {
		name   string
		args   []string
		errMsg string
	}{
		{name: "no files", args: []string{}, errMsg: "requires at least 1 arg"},
		{name: "jobs", args: []string{"--jobs", "0", "a.rs"}, errMsg: "jobs must be at least 1"},
		{name: "color", args: []string{"--color", "blue", "a.rs"}, errMsg: "color must be one of"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd := newRootCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tc.args)

			err := cmd.Execute()
			assert.ErrorContains(t, err, tc.errMsg)
		})
	}
}
