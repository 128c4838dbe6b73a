package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRows_CSV(t *testing.T) {
	cfg = testConfig()
	path := filepath.Join(t.TempDir(), "leads.csv")
	require.NoError(t, os.WriteFile(path, []byte("Company,Phone\nAcme,555-0104\n"), 0o644))
	importFile = path
	t.Cleanup(func() { importFile = "" })

	rows, err := readRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	v, _ := rows[0].Get("Company")
	assert.Equal(t, "Acme", v)
}

func TestReadRows_UnsupportedExtension(t *testing.T) {
	cfg = testConfig()
	importFile = "leads.pdf"
	t.Cleanup(func() { importFile = "" })

	_, err := readRows()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}
