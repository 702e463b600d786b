// Package fileutil provides small file and path helpers shared by the
// CLI and config loading.
package fileutil

import (
	"os"
	"strings"
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather
// than a bare config name: anything containing a path separator.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
