package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"absensiwajah_backend/internals/features/attendance/domain"
	"absensiwajah_backend/internals/features/attendance/storage"
	"absensiwajah_backend/internals/helpers/csvtable"
)

/* =======================================================
   ATTENDANCE AGGREGATOR
   Summary selalu dihitung ulang penuh dari semua file sesi.
   ======================================================= */

// SubjectLister sumber daftar subject untuk RefreshAll.
type SubjectLister interface {
	List() ([]string, error)
}

type Aggregator struct {
	Layout   *storage.Layout
	Locks    *storage.Locks
	Subjects SubjectLister
}

func NewAggregator(layout *storage.Layout, locks *storage.Locks, subjects SubjectLister) *Aggregator {
	return &Aggregator{Layout: layout, Locks: locks, Subjects: subjects}
}

type presenceKey struct {
	id   string
	name string
}

// Recompute hitung ulang summary subject lalu timpa file summary.
//
// Denominator = jumlah SEMUA file sesi (termasuk yang gagal di-parse),
// numerator hanya dari file yang valid.
func (a *Aggregator) Recompute(rawSubject string) ([]domain.SummaryRow, error) {
	subject, err := domain.NormalizeSubjectName(rawSubject)
	if err != nil {
		return nil, err
	}

	unlock := a.Locks.Lock(subject)
	defer unlock()

	files, err := a.Layout.SessionFiles(subject)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %q", domain.ErrNoSessions, subject)
	}

	counts := map[presenceKey]int{}
	parsed := 0
	for _, f := range files {
		rows, err := readPresenceRows(f.Path)
		if err != nil {
			log.Printf("[WARN] [SUMMARY] %s dilewati: %v", f.FileName, err)
			continue
		}
		parsed++
		for _, k := range rows {
			counts[k]++
		}
	}
	if parsed == 0 {
		return nil, fmt.Errorf("%w: %q has %d session file(s), none readable", domain.ErrNoValidSessions, subject, len(files))
	}

	total := len(files)
	out := make([]domain.SummaryRow, 0, len(counts))
	for k, n := range counts {
		out = append(out, domain.SummaryRow{
			EnrollmentID:  k.id,
			Name:          k.name,
			PresentCount:  n,
			TotalSessions: total,
			AttendancePct: domain.Percent(n, total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EnrollmentID != out[j].EnrollmentID {
			return out[i].EnrollmentID < out[j].EnrollmentID
		}
		return out[i].Name < out[j].Name
	})

	if err := a.writeSummary(subject, out); err != nil {
		return nil, err
	}
	log.Printf("[SUMMARY] %q dihitung ulang: %d siswa, %d/%d sesi terbaca", subject, len(out), parsed, total)
	return out, nil
}

// readPresenceRows: satu baris = satu tanda hadir. Duplikat di file yang sama
// tetap dihitung. Baris dengan Enrollment/Name kosong diabaikan.
func readPresenceRows(path string) ([]presenceKey, error) {
	header, records, err := csvtable.Read(path)
	if err != nil {
		return nil, err
	}
	idIdx, nameIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "Enrollment":
			idIdx = i
		case "Name":
			nameIdx = i
		}
	}
	if idIdx < 0 || nameIdx < 0 {
		return nil, fmt.Errorf("missing Enrollment/Name column (header %v)", header)
	}

	out := make([]presenceKey, 0, len(records))
	for _, rec := range records {
		k := presenceKey{id: strings.TrimSpace(rec[idIdx]), name: strings.TrimSpace(rec[nameIdx])}
		if k.id == "" || k.name == "" {
			continue
		}
		out = append(out, k)
	}
	return out, nil
}

func (a *Aggregator) writeSummary(subject string, rows []domain.SummaryRow) error {
	if err := a.Layout.EnsureSubjectDir(subject); err != nil {
		return err
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.EnrollmentID,
			r.Name,
			strconv.Itoa(r.PresentCount),
			strconv.Itoa(r.TotalSessions),
			r.AttendanceLabel(),
		})
	}
	path := a.Layout.SummaryPath(subject)
	if err := csvtable.WriteAtomic(path, storage.SummaryColumns, records); err != nil {
		return domain.IOFailure("write", path, err)
	}
	return nil
}

// Summary baca file summary yang tersimpan (tanpa hitung ulang).
// Subject tanpa folder → NotFound; summary belum ada → list kosong.
func (a *Aggregator) Summary(rawSubject string) ([]domain.SummaryRow, error) {
	subject, err := domain.NormalizeSubjectName(rawSubject)
	if err != nil {
		return nil, err
	}
	exists, err := a.Layout.SubjectDirExists(subject)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: no attendance records for %q", domain.ErrNotFound, subject)
	}

	path := a.Layout.SummaryPath(subject)
	tbl, err := csvtable.Open(path, storage.SummaryColumns)
	if err != nil {
		return nil, domain.IOFailure("read", path, err)
	}

	out := make([]domain.SummaryRow, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		id := strings.TrimSpace(row["Enrollment"])
		if id == "" {
			continue
		}
		present, _ := strconv.Atoi(strings.TrimSpace(row["PresentCount"]))
		total, _ := strconv.Atoi(strings.TrimSpace(row["TotalSessions"]))
		pct, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(row["Attendance"]), "%"))
		if err != nil {
			pct = domain.Percent(present, total)
		}
		out = append(out, domain.SummaryRow{
			EnrollmentID:  id,
			Name:          strings.TrimSpace(row["Name"]),
			PresentCount:  present,
			TotalSessions: total,
			AttendancePct: pct,
		})
	}
	return out, nil
}

// RefreshReport hasil RefreshAll per subject.
type RefreshReport struct {
	Refreshed []string          `json:"refreshed"`
	Skipped   []string          `json:"skipped"`
	Failed    map[string]string `json:"failed,omitempty"`
}

// RefreshAll hitung ulang semua subject terdaftar. Subject tanpa sesi
// dilewati; error lain dicatat per subject tanpa menghentikan yang lain.
func (a *Aggregator) RefreshAll() (RefreshReport, error) {
	rep := RefreshReport{Refreshed: []string{}, Skipped: []string{}}
	if a.Subjects == nil {
		return rep, nil
	}
	names, err := a.Subjects.List()
	if err != nil {
		return rep, err
	}
	for _, name := range names {
		_, err := a.Recompute(name)
		switch {
		case err == nil:
			rep.Refreshed = append(rep.Refreshed, name)
		case errors.Is(err, domain.ErrNoSessions):
			rep.Skipped = append(rep.Skipped, name)
		default:
			if rep.Failed == nil {
				rep.Failed = map[string]string{}
			}
			rep.Failed[name] = err.Error()
			log.Printf("[SUMMARY] refresh %q gagal: %v", name, err)
		}
	}
	return rep, nil
}
