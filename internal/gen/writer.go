package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes generated files to their paths, creating directories as
// needed. Files whose content is already up to date are not rewritten so
// their modification time stays stable. It returns the paths written.
func WriteFiles(files []GeneratedFile) ([]string, error) {
	var written []string

	for _, file := range files {
		current, err := os.ReadFile(file.Path)
		if err == nil && bytes.Equal(current, file.Content) {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(file.Path), dirPerm); err != nil {
			return written, fmt.Errorf("creating output directory: %w", err)
		}

		if err := os.WriteFile(file.Path, file.Content, filePerm); err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Path, err)
		}

		written = append(written, file.Path)
	}

	return written, nil
}
