package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestScore_Text(t *testing.T) {
	out, err := run(t, "score", "--candidate", "Go,SQL", "--required", "go,sql,docker")
	require.NoError(t, err)

	assert.Contains(t, out, "score:   77 (good)")
	assert.Contains(t, out, "matched: go, sql")
	assert.Contains(t, out, "missing: docker")
}

func TestScore_JSON(t *testing.T) {
	out, err := run(t, "score", "--candidate", "python", "--required", "python,sql,react", "--format", "json")
	require.NoError(t, err)

	var got scoreOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 43, got.Score)
	assert.Equal(t, "fair", got.Badge)
	assert.Equal(t, []string{"python"}, got.Matched)
	assert.Equal(t, []string{"sql", "react"}, got.Missing)
}

func TestScore_YAML(t *testing.T) {
	out, err := run(t, "score", "--candidate", "go", "--format", "yaml")
	require.NoError(t, err)

	var got scoreOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 10, got.Score)
	assert.Equal(t, "low", got.Badge)
}

func TestScore_UnknownFormat(t *testing.T) {
	_, err := run(t, "score", "--candidate", "go", "--required", "go", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestServe_MissingConfig(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := run(t, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_NAME")
}

func TestRoot_Commands(t *testing.T) {
	root := NewRootCommand()
	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "migrate", "seed", "score"})

	migrate, _, err := root.Find([]string{"migrate", "status"})
	require.NoError(t, err)
	assert.Equal(t, "status", migrate.Name())
}
