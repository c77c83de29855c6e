package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"drover/internal/group"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with the given args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T, relPath string, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return dir
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.2.3")
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "drover version 1.2.3")
}

func TestGroupsCommand_Plain(t *testing.T) {
	dir := writeConfig(t, "groups.yaml", `
all:
  subgroups: [eu, us]
eu: {}
us: {}
`)

	out, err := execute(t, "groups", "all", "--plain", "--config-path", dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"eu", "us"}, strings.Fields(out))
}

func TestGroupsCommand_UnknownGroup(t *testing.T) {
	dir := writeConfig(t, "groups.yaml", "web: {}\n")

	_, err := execute(t, "groups", "ghost", "--plain", "--config-path", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCodeConfigError, getExitCode(err))
}

func TestNodesCommand_Plain(t *testing.T) {
	dir := writeConfig(t, "nodes.yaml", `
web1: {}
web2: {}
`)

	out, err := execute(t, "nodes", "--plain", "--config-path", dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"web1", "web2"}, strings.Fields(out))
}

func TestHashCommand_Deterministic(t *testing.T) {
	content := `
web:
  member_patterns: ["^web"]
`
	dir := writeConfig(t, "groups.yaml", content)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nodes.yaml"),
		[]byte("web1: {}\nweb2: {}\n"), 0644))

	first, err := execute(t, "hash", "web", "--config-path", dir)
	require.NoError(t, err)
	second, err := execute(t, "hash", "web", "--config-path", dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, strings.TrimSpace(first), 40)

	membership, err := execute(t, "hash", "web", "--membership", "--config-path", dir)
	require.NoError(t, err)
	assert.NotEqual(t, strings.TrimSpace(first), strings.TrimSpace(membership))
}

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"generic", errors.New("boom"), ExitCodeError},
		{"invalid name", &group.InvalidNameError{Name: "x y"}, ExitCodeConfigError},
		{"schema", &group.SchemaError{Group: "g", Key: "k"}, ExitCodeConfigError},
		{"missing subgroup", &group.MissingSubgroupError{Group: "g", Subgroup: "s"}, ExitCodeConfigError},
		{"loop", &group.SubgroupLoopError{Group: "g", Chain: []string{"g", "g"}}, ExitCodeConfigError},
		{"no such group", &group.NoSuchGroupError{Name: "g"}, ExitCodeConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, getExitCode(tt.err))
		})
	}
}
