package sim

import (
	"path/filepath"
	"strings"
)

func baseName(path string) string {
	return filepath.Base(filepath.ToSlash(path))
}

func hasExt(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}
