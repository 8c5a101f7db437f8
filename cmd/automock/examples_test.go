package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/akedrou/textdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExamplesUpToDate checks that every examples/<name>/cache_mock.rs is
// byte for byte what automock generates from the cache.rs next to it.
func TestExamplesUpToDate(t *testing.T) {
	dirs, err := filepath.Glob(filepath.Join("..", "..", "examples", "*"))
	require.NoError(t, err)
	require.NotEmpty(t, dirs)

	for _, dir := range dirs {
		t.Run(filepath.Base(dir), func(t *testing.T) {
			a := assert.New(t)

			cfg := &Config{Header: defaultHeader, Jobs: 1, Color: "never"}

			var stdout, stderr bytes.Buffer
			err := run(context.Background(), cfg, []string{filepath.Join(dir, "cache.rs")}, &stdout, &stderr, false)
			require.NoError(t, err, stderr.String())

			b, err := os.ReadFile(filepath.Join(dir, "cache_mock.rs"))
			require.NoError(t, err)

			expected, actual := string(b), stdout.String()
			if !a.Equal(expected, actual) {
				t.Log(textdiff.Unified("expected", "actual", expected, actual))
			}
		})
	}
}
