package domain

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// CatalogTimeLayout format kolom CreatedAt di katalog subject.
const CatalogTimeLayout = "2006-01-02 15:04:05"

// CatalogFileName file katalog di root absensi. Folder subject tidak boleh
// memakai nama ini karena akan menempati posisi katalog.
const CatalogFileName = "subjects.csv"

type Subject struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeSubjectName trim + NFC, lalu pastikan nama aman dipakai sebagai
// satu segmen folder dan tidak bentrok dengan separator kolom Subjects.
func NormalizeSubjectName(raw string) (string, error) {
	name := norm.NFC.String(strings.TrimSpace(raw))
	switch {
	case name == "":
		return "", fmt.Errorf("%w: subject name is required", ErrInvalidName)
	case strings.HasPrefix(name, "."):
		// termasuk "." / ".." dan prefix file temp
		return "", fmt.Errorf("%w: %q must not start with '.'", ErrInvalidName, name)
	case strings.EqualFold(name, CatalogFileName):
		return "", fmt.Errorf("%w: %q is reserved", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`+SubjectSeparator):
		return "", fmt.Errorf("%w: %q must not contain '/', '\\' or '%s'", ErrInvalidName, name, SubjectSeparator)
	}
	return name, nil
}
