package service

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"absensiwajah_backend/internals/features/attendance/domain"
	"absensiwajah_backend/internals/features/attendance/storage"
	"absensiwajah_backend/internals/helpers/csvtable"
	"absensiwajah_backend/internals/helpers/dbtime"
)

/* =======================================================
   SUBJECT REGISTRY
   Katalog subject = Root/subjects.csv (Subject, CreatedAt),
   tiap subject punya folder sendiri berisi sesi + summary.
   ======================================================= */

type Registry struct {
	Layout *storage.Layout
	Locks  *storage.Locks
	Now    func() time.Time

	mu sync.Mutex // guard subjects.csv
}

func NewRegistry(layout *storage.Layout, locks *storage.Locks) *Registry {
	return &Registry{Layout: layout, Locks: locks, Now: dbtime.Now}
}

func (r *Registry) openCatalog() (*csvtable.Table, error) {
	path := r.Layout.CatalogPath()
	tbl, err := csvtable.Open(path, storage.CatalogColumns)
	if err != nil {
		return nil, domain.IOFailure("read", path, err)
	}
	if tbl.Existed && tbl.Migrated {
		if err := tbl.Flush(); err != nil {
			return nil, domain.IOFailure("migrate", path, err)
		}
		log.Printf("[SUBJECTS] katalog dimigrasi ke kolom %v", tbl.Columns)
	}
	return tbl, nil
}

func findSubject(tbl *csvtable.Table, name string) (csvtable.Row, bool) {
	for _, row := range tbl.Rows {
		if row["Subject"] == name {
			return row, true
		}
	}
	return nil, false
}

func toSubject(row csvtable.Row) domain.Subject {
	s := domain.Subject{Name: row["Subject"]}
	if ts, err := dbtime.ParseInApp(domain.CatalogTimeLayout, row["CreatedAt"]); err == nil {
		s.CreatedAt = ts
	}
	return s
}

// Register idempotent: daftar ulang subject yang sudah ada tetap sukses.
// Folder subject + summary kosong dipastikan ada.
func (r *Registry) Register(rawName string) (domain.Subject, error) {
	name, err := domain.NormalizeSubjectName(rawName)
	if err != nil {
		return domain.Subject{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.Layout.EnsureRoot(); err != nil {
		return domain.Subject{}, err
	}

	// katalog dibaca dulu; kalau rusak tidak ada folder yang tertinggal
	tbl, err := r.openCatalog()
	if err != nil {
		return domain.Subject{}, err
	}
	if err := r.Layout.EnsureSubjectDir(name); err != nil {
		return domain.Subject{}, err
	}
	row, ok := findSubject(tbl, name)
	if !ok {
		row = csvtable.Row{
			"Subject":   name,
			"CreatedAt": r.Now().Format(domain.CatalogTimeLayout),
		}
		tbl.Append(row)
		if err := tbl.Flush(); err != nil {
			return domain.Subject{}, domain.IOFailure("write", tbl.Path, err)
		}
		log.Printf("[SUBJECTS] subject %q didaftarkan", name)
	}

	if err := r.Layout.EnsureSummary(name); err != nil {
		return domain.Subject{}, err
	}
	return toSubject(row), nil
}

// List nama subject sesuai urutan katalog. Katalog belum ada → list kosong.
func (r *Registry) List() ([]string, error) {
	subjects, err := r.ListDetailed()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(subjects))
	for _, s := range subjects {
		names = append(names, s.Name)
	}
	return names, nil
}

func (r *Registry) ListDetailed() ([]domain.Subject, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tbl, err := r.openCatalog()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Subject, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		if strings.TrimSpace(row["Subject"]) == "" {
			continue
		}
		out = append(out, toSubject(row))
	}
	return out, nil
}

func (r *Registry) Get(rawName string) (domain.Subject, error) {
	name, err := domain.NormalizeSubjectName(rawName)
	if err != nil {
		return domain.Subject{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	tbl, err := r.openCatalog()
	if err != nil {
		return domain.Subject{}, err
	}
	row, ok := findSubject(tbl, name)
	if !ok {
		return domain.Subject{}, fmt.Errorf("%w: subject %q", domain.ErrNotFound, name)
	}
	return toSubject(row), nil
}

// Exists dipakai student registry & session writer untuk validasi subject.
func (r *Registry) Exists(rawName string) (bool, error) {
	_, err := r.Get(rawName)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidName):
		return false, nil
	default:
		return false, err
	}
}

// Remove hanya boleh kalau subject belum punya file sesi. Folder (yang isinya
// tinggal summary) dihapus dulu; kalau gagal katalog tidak disentuh.
func (r *Registry) Remove(rawName string) error {
	name, err := domain.NormalizeSubjectName(rawName)
	if err != nil {
		return err
	}

	unlock := r.Locks.Lock(name)
	defer unlock()
	r.mu.Lock()
	defer r.mu.Unlock()

	files, err := r.Layout.SessionFiles(name)
	if err != nil {
		return err
	}
	if len(files) > 0 {
		return fmt.Errorf("%w: %q has %d session file(s), reset before removing", domain.ErrHasRecords, name, len(files))
	}

	if err := r.removeStorageArea(name); err != nil {
		return err
	}

	tbl, err := r.openCatalog()
	if err != nil {
		return err
	}
	if !tbl.Existed {
		return nil
	}
	if tbl.Filter(func(row csvtable.Row) bool { return row["Subject"] != name }) > 0 {
		if err := tbl.Flush(); err != nil {
			return domain.IOFailure("write", tbl.Path, err)
		}
		log.Printf("[SUBJECTS] subject %q dihapus dari katalog", name)
	}
	return nil
}

func (r *Registry) removeStorageArea(name string) error {
	dir := r.Layout.SubjectDir(name)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return domain.IOFailure("readdir", dir, err)
	}
	for _, e := range entries {
		if e.Name() != storage.SummaryFile {
			return domain.IOFailure("rmdir", dir, fmt.Errorf("storage area not empty (%s)", e.Name()))
		}
	}
	summary := r.Layout.SummaryPath(name)
	if err := os.Remove(summary); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.IOFailure("remove", summary, err)
	}
	if err := os.Remove(dir); err != nil {
		return domain.IOFailure("rmdir", dir, err)
	}
	return nil
}

// Reset hapus semua sesi + summary subject lalu buat ulang folder kosong.
// Operasi destruktif, terpisah dari alur normal.
func (r *Registry) Reset(rawName string) error {
	name, err := domain.NormalizeSubjectName(rawName)
	if err != nil {
		return err
	}

	unlock := r.Locks.Lock(name)
	defer unlock()

	exists, err := r.Layout.SubjectDirExists(name)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: no attendance records for %q", domain.ErrNotFound, name)
	}

	dir := r.Layout.SubjectDir(name)
	if err := os.RemoveAll(dir); err != nil {
		return domain.IOFailure("remove", dir, err)
	}
	if err := r.Layout.EnsureSubjectDir(name); err != nil {
		return err
	}
	if err := r.Layout.EnsureSummary(name); err != nil {
		return err
	}
	log.Printf("[SUBJECTS] absensi subject %q di-reset", name)
	return nil
}

// Sessions daftar file sesi subject.
func (r *Registry) Sessions(rawName string) ([]storage.SessionEntry, error) {
	name, err := domain.NormalizeSubjectName(rawName)
	if err != nil {
		return nil, err
	}
	return r.Layout.SessionFiles(name)
}
