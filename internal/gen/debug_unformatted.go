package gen

import (
	"os"
	"path/filepath"
	"strings"
)

// writeDebugUnformatted writes unformatted code to a sidecar file next to the
// intended output. This is best-effort and should never make generation fail
// harder.
func writeDebugUnformatted(path string, content []byte) error {
	if path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return err
	}
	// Keep it a .go file so editors can syntax highlight, but build-ignore it
	// so a broken sidecar never breaks the package.
	debugPath := strings.TrimSuffix(path, ".go") + ".unformatted.go"
	content = append([]byte("//go:build ignore\n\n"), content...)

	return os.WriteFile(debugPath, content, filePerm)
}
