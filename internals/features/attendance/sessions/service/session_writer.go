package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"absensiwajah_backend/internals/features/attendance/domain"
	"absensiwajah_backend/internals/features/attendance/storage"
	helper "absensiwajah_backend/internals/helpers"
	"absensiwajah_backend/internals/helpers/csvtable"
	"absensiwajah_backend/internals/helpers/dbtime"
)

/* =======================================================
   SESSION WRITER
   Satu sesi absensi = satu file baru, tidak pernah ditimpa.
   ======================================================= */

const (
	fileDateLayout = "2006-01-02"
	fileTimeLayout = "15-04-05"
	rowTimeLayout  = "15:04:05"
)

type SubjectLookup interface {
	Exists(name string) (bool, error)
}

type StudentLookup interface {
	Get(ctx context.Context, id string) (domain.Student, error)
}

type Recomputer interface {
	Recompute(subject string) ([]domain.SummaryRow, error)
}

// Archiver upload salinan file sesi (mis. ke OSS). Opsional.
type Archiver interface {
	Archive(ctx context.Context, subject, path string) (string, error)
}

type Writer struct {
	Layout     *storage.Layout
	Locks      *storage.Locks
	Aggregator Recomputer

	Subjects SubjectLookup // nil = subject tidak dicek di katalog
	Students StudentLookup // nil = id tidak dicek di master siswa
	Archiver Archiver      // nil = tanpa arsip

	Now func() time.Time
}

func NewWriter(layout *storage.Layout, locks *storage.Locks, agg Recomputer) *Writer {
	return &Writer{Layout: layout, Locks: locks, Aggregator: agg, Now: dbtime.Now}
}

// SaveResult hasil Save. Session selalu terisi kalau err == nil;
// SummaryError terisi kalau recompute gagal (sesi tetap tersimpan).
type SaveResult struct {
	Session      domain.SessionFile  `json:"session"`
	Dropped      []string            `json:"dropped,omitempty"`
	Summary      []domain.SummaryRow `json:"summary,omitempty"`
	SummaryError string              `json:"summary_error,omitempty"`
	ArchiveKey   string              `json:"archive_key,omitempty"`
}

// Save dedup presences (yang pertama menang), tulis file sesi baru,
// lalu hitung ulang summary subject.
func (w *Writer) Save(ctx context.Context, rawSubject string, presences []domain.Presence) (SaveResult, error) {
	subject, err := domain.NormalizeSubjectName(rawSubject)
	if err != nil {
		return SaveResult{}, err
	}
	if w.Subjects != nil {
		ok, err := w.Subjects.Exists(subject)
		if err != nil {
			return SaveResult{}, err
		}
		if !ok {
			return SaveResult{}, fmt.Errorf("%w: subject %q", domain.ErrNotFound, subject)
		}
	}

	rows, dropped, err := w.prepare(ctx, presences)
	if err != nil {
		return SaveResult{}, err
	}

	now := w.now()
	file, err := w.write(subject, now, rows)
	if err != nil {
		return SaveResult{}, err
	}
	log.Printf("[SESSIONS][SAVE] %s: %d hadir (dropped=%d)", file.FileName, file.Rows, len(dropped))

	res := SaveResult{Session: file, Dropped: dropped}

	// recompute di luar lock sesi; Aggregator ambil lock subject sendiri
	if w.Aggregator != nil {
		summary, err := w.Aggregator.Recompute(subject)
		if err != nil {
			log.Printf("[WARN] [SESSIONS] recompute %s gagal: %v", subject, err)
			res.SummaryError = err.Error()
		} else {
			res.Summary = summary
		}
	}

	if w.Archiver != nil {
		key, err := w.Archiver.Archive(ctx, subject, file.Path)
		if err != nil {
			log.Printf("[WARN] [SESSIONS] arsip %s gagal: %v", file.FileName, err)
		} else {
			res.ArchiveKey = key
		}
	}
	return res, nil
}

func (w *Writer) now() time.Time {
	if w.Now != nil {
		return w.Now()
	}
	return dbtime.Now()
}

// prepare trim id, dedup, dan (kalau ada lookup) buang id yang tidak terdaftar.
// Baris tanpa nama tidak ditulis karena summary tidak akan menghitungnya.
func (w *Writer) prepare(ctx context.Context, in []domain.Presence) ([]domain.Presence, []string, error) {
	trimmed := make([]domain.Presence, 0, len(in))
	for _, p := range in {
		p.EnrollmentID = strings.TrimSpace(p.EnrollmentID)
		p.Name = strings.TrimSpace(p.Name)
		if p.EnrollmentID == "" {
			continue
		}
		trimmed = append(trimmed, p)
	}
	rows := domain.DedupPresences(trimmed)

	kept := rows[:0]
	var dropped []string
	for _, p := range rows {
		if w.Students == nil {
			if p.Name == "" {
				log.Printf("[WARN] [SESSIONS] id %q tanpa nama, dilewati", p.EnrollmentID)
				dropped = append(dropped, p.EnrollmentID)
				continue
			}
			kept = append(kept, p)
			continue
		}

		st, err := w.Students.Get(ctx, p.EnrollmentID)
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidFormat) {
			log.Printf("[WARN] [SESSIONS] id %q tidak terdaftar, dilewati", p.EnrollmentID)
			dropped = append(dropped, p.EnrollmentID)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		if p.Name == "" {
			p.Name = strings.TrimSpace(st.Name)
		}
		if p.Name == "" {
			log.Printf("[WARN] [SESSIONS] id %q tanpa nama, dilewati", p.EnrollmentID)
			dropped = append(dropped, p.EnrollmentID)
			continue
		}
		kept = append(kept, p)
	}
	return kept, dropped, nil
}

// write reservasi nama unik (O_EXCL) lalu isi via temp + rename.
func (w *Writer) write(subject string, now time.Time, rows []domain.Presence) (domain.SessionFile, error) {
	unlock := w.Locks.Lock(subject)
	defer unlock()

	if err := w.Layout.EnsureSubjectDir(subject); err != nil {
		return domain.SessionFile{}, err
	}

	date, clock := now.Format(fileDateLayout), now.Format(rowTimeLayout)
	records := make([][]string, 0, len(rows))
	for _, p := range rows {
		records = append(records, []string{p.EnrollmentID, p.Name, date, clock})
	}

	base := fmt.Sprintf("%s_%s_%s", subject, date, now.Format(fileTimeLayout))
	dir := w.Layout.SubjectDir(subject)
	for n := 1; ; n++ {
		name := helper.SuffixedName(base, ".csv", n)
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return domain.SessionFile{}, domain.IOFailure("create", path, err)
		}
		_ = f.Close()

		if err := csvtable.WriteAtomic(path, storage.SessionColumns, records); err != nil {
			_ = os.Remove(path)
			return domain.SessionFile{}, domain.IOFailure("write", path, err)
		}
		return domain.SessionFile{
			Subject:    subject,
			FileName:   name,
			Path:       path,
			CapturedAt: now,
			Rows:       len(records),
		}, nil
	}
}

// Read baca balik presences dari file sesi, urutan sesuai file.
func Read(path string) ([]domain.Presence, error) {
	header, records, err := csvtable.Read(path)
	if err != nil {
		return nil, domain.IOFailure("read", path, err)
	}
	idCol, nameCol := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case "Enrollment":
			idCol = i
		case "Name":
			nameCol = i
		}
	}
	if idCol < 0 || nameCol < 0 {
		return nil, domain.IOFailure("read", path, errors.New("missing Enrollment/Name column"))
	}
	out := make([]domain.Presence, 0, len(records))
	for _, rec := range records {
		out = append(out, domain.Presence{EnrollmentID: rec[idCol], Name: rec[nameCol]})
	}
	return out, nil
}
