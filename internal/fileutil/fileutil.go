package fileutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ReplaceExt swaps the extension of path for ext, which must include the
// leading dot. A path without an extension gets ext appended.
func ReplaceExt(path, ext string) string {
	current := filepath.Ext(path)
	return strings.TrimSuffix(path, current) + ext
}

// OutputPath derives the extraction target for a source video: the same
// basename with an .mp3 extension, in the same directory.
func OutputPath(source string) string {
	return ReplaceExt(source, ".mp3")
}

// Exists reports whether path refers to an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
