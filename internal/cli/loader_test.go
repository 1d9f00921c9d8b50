package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodyo/constrec"
)

func writeFieldFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fields.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFieldsPreservesOrder(t *testing.T) {
	path := writeFieldFile(t, `
zebra: 1
apple: two
mango: true
`)

	fields, err := LoadFields(path)
	require.NoError(t, err)

	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"zebra", "apple", "mango"}, names)
	assert.Equal(t, 1, fields[0].Value)
	assert.Equal(t, "two", fields[1].Value)
	assert.Equal(t, true, fields[2].Value)
}

func TestLoadFieldsNestedMapping(t *testing.T) {
	path := writeFieldFile(t, `
name: Alice
addr:
  city: Berlin
  zip: 10115
tags: [a, b]
`)

	fields, err := LoadFields(path)
	require.NoError(t, err)
	require.Len(t, fields, 3)

	addr, ok := fields[1].Value.(*constrec.Struct)
	require.True(t, ok, "nested mapping should decode as *constrec.Struct")
	assert.Equal(t, []string{"city", "zip"}, addr.FieldNames())
	city, _ := addr.Get("city")
	assert.Equal(t, "Berlin", city)

	assert.Equal(t, []any{"a", "b"}, fields[2].Value)
}

func TestLoadFieldsMissingFile(t *testing.T) {
	_, err := LoadFields(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestLoadFieldsNotAMapping(t *testing.T) {
	path := writeFieldFile(t, `[1, 2, 3]`)
	_, err := LoadFields(path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "must be a YAML mapping")
}
