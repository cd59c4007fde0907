package gen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFiles_SkipsUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "ascii_slicegen.go")

	files := []GeneratedFile{{Path: path, Content: []byte("package ascii\n")}}

	written, err := WriteFiles(files)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, written)

	written, err = WriteFiles(files)
	require.NoError(t, err)
	assert.Empty(t, written)

	files[0].Content = []byte("package ascii\n\n// changed\n")

	written, err = WriteFiles(files)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, written)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, files[0].Content, got)
}

func TestWriteDebugUnformatted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ascii_slicegen.go")

	require.NoError(t, writeDebugUnformatted(path, []byte("package ascii\nfunc {")))

	got, err := os.ReadFile(filepath.Join(filepath.Dir(path), "ascii_slicegen.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, "//go:build ignore\n\npackage ascii\nfunc {", string(got))

	assert.NoError(t, writeDebugUnformatted("", nil))
}
