package constants

import (
	"path/filepath"
	"strings"
)

const (
	FileTypeImage   = 6
	FileTypeUnknown = 99
)

func DetectFileTypeFromExt(filename string) int {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileTypeImage
	default:
		return FileTypeUnknown
	}
}

// IsImageUpload true kalau ekstensi file termasuk gambar yang bisa jadi sampel wajah.
func IsImageUpload(filename string) bool {
	return DetectFileTypeFromExt(filename) == FileTypeImage
}
