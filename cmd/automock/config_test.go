package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "automock.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	a := assert.New(t)
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	a.Equal(&Config{
		Header: defaultHeader,
		Jobs:   4,
		Color:  "auto",
	}, cfg)
}

func TestLoadConfigFile(t *testing.T) {
	a := assert.New(t)
	t.Chdir(t.TempDir())

	path := writeConfig(t, `output: mocks.rs
header: "// mocks"
jobs: 2
verbose: true
color: never
attr: "mod mock;"
`)

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	a.Equal(&Config{
		Output:  "mocks.rs",
		Header:  "// mocks",
		Jobs:    2,
		Verbose: true,
		Color:   "never",
		Attr:    "mod mock;",
	}, cfg)
}

func TestLoadConfigDiscoversFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, defaultConfigFile), []byte("jobs: 7\n"), 0o600))

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Jobs)
}

func TestLoadConfigPrecedence(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, "jobs: 2\nheader: from_file\n")
	t.Setenv("AUTOMOCK_JOBS", "3")

	t.Run("env over file", func(t *testing.T) {
		a := assert.New(t)

		cfg, err := LoadConfig(path, nil)
		require.NoError(t, err)
		a.Equal(3, cfg.Jobs)
		a.Equal("from_file", cfg.Header)
	})

	t.Run("flag over env", func(t *testing.T) {
		a := assert.New(t)

		flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
		flags.Int("jobs", 4, "")
		flags.String("header", defaultHeader, "")
		require.NoError(t, flags.Set("jobs", "5"))

		cfg, err := LoadConfig(path, flags)
		require.NoError(t, err)
		a.Equal(5, cfg.Jobs)
		// unchanged flags keep lower layers
		a.Equal("from_file", cfg.Header)
	})
}

func TestLoadConfigErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "jobs", content: "jobs: 0\n", errMsg: "jobs must be at least 1"},
		{name: "color", content: "color: rainbow\n", errMsg: "color must be one of auto, always or never"},
		{name: "yaml", content: "jobs: [\n", errMsg: "cannot read config file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Chdir(t.TempDir())

			_, err := LoadConfig(writeConfig(t, tc.content), nil)
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.errMsg)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadConfig("does-not-exist.yaml", nil)
	assert.ErrorContains(t, err, "cannot read config file does-not-exist.yaml")
}
