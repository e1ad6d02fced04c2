package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/interlinked/synthesizer"
)

const unsynced = `struct Test {
    let dep1: String
}
`

const synced = `struct Test {
    let dep1: String

    init(dep1: String) {
        self.dep1 = dep1
    }
}
`

func execute(t *testing.T, args ...string) (string, error) {
	stdout := &bytes.Buffer{}
	root := newRootCommand(stdout, &bytes.Buffer{})
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun(t *testing.T) {
	var testCases = []struct {
		description string
		args        func(dir string) []string
		expectErr   error
		expectOut   func(dir string) string
		expectFile  string
	}{
		{
			description: "print to stdout",
			args:        func(dir string) []string { return []string{"sync", filepath.Join(dir, "Test.swift")} },
			expectOut:   func(dir string) string { return synced },
			expectFile:  unsynced,
		},
		{
			description: "check",
			args:        func(dir string) []string { return []string{"sync", "--check", dir} },
			expectErr:   errCheckFailed,
			expectOut:   func(dir string) string { return "Test.swift" },
			expectFile:  unsynced,
		},
		{
			description: "write",
			args:        func(dir string) []string { return []string{"interlink", "--write", "--concurrency", "2", dir} },
			expectOut:   func(dir string) string { return "" },
			expectFile:  synced,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, "Test.swift", unsynced)
			writeFile(t, dir, "notes.txt", "ignored")
			out, err := execute(t, tc.args(dir)...)
			if tc.expectErr != nil {
				assert.ErrorIs(t, err, tc.expectErr)
			} else {
				require.NoError(t, err)
			}
			if tc.expectErr == errCheckFailed {
				assert.Equal(t, tc.expectOut(dir), filepath.Base(strings.TrimSpace(out)))
			} else {
				assert.Equal(t, tc.expectOut(dir), out)
			}
			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.expectFile, string(data))
		})
	}
}

func TestRun_InterlinkRejects(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Model.swift", `class Model {
    let dep1: String

    convenience init() {
        self.init(dep1: "")
    }
}
`)
	_, err := execute(t, "interlink", dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, synthesizer.ErrUnsupportedInitializerFormat)

	_, err = execute(t, "sync", "--check", dir)
	assert.NoError(t, err)
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	configPath := writeFile(t, dir, "custom.toml", "spacesPerTab = 2\nformatterStyle = \"airbnb\"\n")

	out, err := execute(t, "config", "--config", configPath, "--max-line-length", "80")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# "+configPath+"\n"))
	assert.Contains(t, out, "spacesPerTab: 2")
	assert.Contains(t, out, "maxLineLength: 80")
	assert.Contains(t, out, "formatterStyle: airbnb")

	writeFile(t, dir, "invalid.yaml", "spacesPerTab: 0\n")
	_, err = execute(t, "config", "--config", filepath.Join(dir, "invalid.yaml"))
	assert.Error(t, err)
}
