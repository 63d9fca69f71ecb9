package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"absensiwajah_backend/internals/features/attendance/domain"
	"absensiwajah_backend/internals/helpers/csvtable"
)

const (
	CatalogFile = domain.CatalogFileName
	SummaryFile = "attendance.csv"
)

// Schema tabel yang disimpan di folder absensi.
var (
	CatalogColumns = []string{"Subject", "CreatedAt"}
	SummaryColumns = []string{"Enrollment", "Name", "PresentCount", "TotalSessions", "Attendance"}
	SessionColumns = []string{"Enrollment", "Name", "Date", "Time"}
)

// Layout memetakan subject ke folder/file di bawah Root:
//
//	Root/subjects.csv
//	Root/<subject>/attendance.csv
//	Root/<subject>/<subject>_YYYY-MM-DD_HH-MM-SS.csv
type Layout struct {
	Root string
}

func NewLayout(root string) *Layout { return &Layout{Root: root} }

func (l *Layout) CatalogPath() string { return filepath.Join(l.Root, CatalogFile) }

func (l *Layout) SubjectDir(subject string) string { return filepath.Join(l.Root, subject) }

func (l *Layout) SummaryPath(subject string) string {
	return filepath.Join(l.SubjectDir(subject), SummaryFile)
}

// EnsureRoot bikin folder root kalau belum ada.
func (l *Layout) EnsureRoot() error {
	if err := os.MkdirAll(l.Root, 0o755); err != nil {
		return domain.IOFailure("mkdir", l.Root, err)
	}
	return nil
}

// EnsureSubjectDir menjamin folder subject ada & bisa ditulis sebelum file sesi dibuat.
func (l *Layout) EnsureSubjectDir(subject string) error {
	dir := l.SubjectDir(subject)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.IOFailure("mkdir", dir, err)
	}
	return nil
}

// EnsureSummary tulis summary kosong (header saja) kalau belum ada.
func (l *Layout) EnsureSummary(subject string) error {
	path := l.SummaryPath(subject)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return domain.IOFailure("stat", path, err)
	}
	if err := csvtable.WriteAtomic(path, SummaryColumns, nil); err != nil {
		return domain.IOFailure("write", path, err)
	}
	return nil
}

// SubjectDirExists true kalau folder subject ada.
func (l *Layout) SubjectDirExists(subject string) (bool, error) {
	info, err := os.Stat(l.SubjectDir(subject))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, domain.IOFailure("stat", l.SubjectDir(subject), err)
	}
	return info.IsDir(), nil
}

// IsSessionFile: *.csv, diawali nama subject, dan bukan file summary.
func IsSessionFile(subject, fileName string) bool {
	return strings.HasSuffix(fileName, ".csv") &&
		strings.HasPrefix(fileName, subject) &&
		fileName != SummaryFile
}

// SessionEntry satu file sesi di folder subject.
type SessionEntry struct {
	FileName string    `json:"file_name"`
	Path     string    `json:"-"`
	Size     int64     `json:"size"`
	ModTime  time.Time `json:"modified_at"`
}

// SessionFiles list semua file sesi subject, urut nama (= urut waktu).
// Folder yang belum ada → list kosong, bukan error.
func (l *Layout) SessionFiles(subject string) ([]SessionEntry, error) {
	dir := l.SubjectDir(subject)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.IOFailure("readdir", dir, err)
	}

	var out []SessionEntry
	for _, e := range entries {
		if e.IsDir() || !IsSessionFile(subject, e.Name()) {
			continue
		}
		se := SessionEntry{FileName: e.Name(), Path: filepath.Join(dir, e.Name())}
		if info, err := e.Info(); err == nil {
			se.Size = info.Size()
			se.ModTime = info.ModTime()
		}
		out = append(out, se)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FileName < out[j].FileName })
	return out, nil
}
