package service

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"absensiwajah_backend/internals/features/attendance/domain"
	"absensiwajah_backend/internals/features/attendance/storage"
)

type staticSubjects []string

func (s staticSubjects) List() ([]string, error) { return s, nil }

func newTestAggregator(t *testing.T, subjects ...string) *Aggregator {
	t.Helper()
	return NewAggregator(storage.NewLayout(t.TempDir()), storage.NewLocks(), staticSubjects(subjects))
}

func writeSession(t *testing.T, a *Aggregator, subject, file, content string) {
	t.Helper()
	if err := a.Layout.EnsureSubjectDir(subject); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(a.Layout.SubjectDir(subject), file), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRecompute_NoSessions(t *testing.T) {
	a := newTestAggregator(t)
	if _, err := a.Recompute("Math"); !errors.Is(err, domain.ErrNoSessions) {
		t.Fatalf("expected ErrNoSessions, got %v", err)
	}

	_ = a.Layout.EnsureSubjectDir("Math")
	_ = a.Layout.EnsureSummary("Math")
	if _, err := a.Recompute("Math"); !errors.Is(err, domain.ErrNoSessions) {
		t.Fatalf("summary file alone must not count as a session, got %v", err)
	}
}

func TestRecompute_TwoOfThree(t *testing.T) {
	a := newTestAggregator(t)
	writeSession(t, a, "Math", "Math_2026-01-01_09-00-00.csv",
		"Enrollment,Name,Date,Time\n0001-0001,Ana,2026-01-01,09:00:00\n0002-0002,Budi,2026-01-01,09:00:01\n")
	writeSession(t, a, "Math", "Math_2026-01-02_09-00-00.csv",
		"Enrollment,Name,Date,Time\n0002-0002,Budi,2026-01-02,09:00:00\n")
	writeSession(t, a, "Math", "Math_2026-01-03_09-00-00.csv",
		"Enrollment,Name,Date,Time\n0001-0001,Ana,2026-01-03,09:00:00\n")

	rows, err := a.Recompute("Math")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.SummaryRow{
		{EnrollmentID: "0001-0001", Name: "Ana", PresentCount: 2, TotalSessions: 3, AttendancePct: 67},
		{EnrollmentID: "0002-0002", Name: "Budi", PresentCount: 2, TotalSessions: 3, AttendancePct: 67},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %+v\nwant %+v", rows, want)
	}

	raw, err := os.ReadFile(a.Layout.SummaryPath("Math"))
	if err != nil {
		t.Fatal(err)
	}
	wantFile := "Enrollment,Name,PresentCount,TotalSessions,Attendance\n" +
		"0001-0001,Ana,2,3,67%\n" +
		"0002-0002,Budi,2,3,67%\n"
	if string(raw) != wantFile {
		t.Errorf("summary file:\n%s\nwant:\n%s", raw, wantFile)
	}

	stored, err := a.Summary("Math")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !reflect.DeepEqual(stored, want) {
		t.Errorf("stored summary = %+v", stored)
	}
}

func TestRecompute_SkippedFileStillCountsInDenominator(t *testing.T) {
	a := newTestAggregator(t)
	writeSession(t, a, "Math", "Math_2026-01-01_09-00-00.csv",
		"Enrollment,Name,Date,Time\n0001-0001,Ana,2026-01-01,09:00:00\n")
	writeSession(t, a, "Math", "Math_2026-01-02_09-00-00.csv",
		"Student,When\nAna,09:00\n")

	rows, err := a.Recompute("Math")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %+v", rows)
	}
	got := rows[0]
	if got.PresentCount != 1 || got.TotalSessions != 2 || got.AttendancePct != 50 {
		t.Errorf("got %+v, want present=1 total=2 pct=50", got)
	}
}

func TestRecompute_NoValidSessions(t *testing.T) {
	a := newTestAggregator(t)
	writeSession(t, a, "Math", "Math_2026-01-01_09-00-00.csv", "")

	_, err := a.Recompute("Math")
	if !errors.Is(err, domain.ErrNoValidSessions) {
		t.Fatalf("expected ErrNoValidSessions, got %v", err)
	}

	// summary lama tidak boleh ditimpa jadi 0%
	if _, statErr := os.Stat(a.Layout.SummaryPath("Math")); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("summary must not be written on failure, stat err = %v", statErr)
	}
}

func TestRecompute_DuplicateRowsInOneFileCountTwice(t *testing.T) {
	a := newTestAggregator(t)
	writeSession(t, a, "Math", "Math_2026-01-01_09-00-00.csv",
		"Enrollment,Name\n0001-0001,Ana\n0001-0001,Ana\n , \n")
	writeSession(t, a, "Math", "Math_2026-01-02_09-00-00.csv",
		"Enrollment,Name\n")

	rows, err := a.Recompute("Math")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].PresentCount != 2 || rows[0].TotalSessions != 2 {
		t.Errorf("unexpected rows %+v", rows)
	}
}

func TestRecompute_IgnoresSummaryAndForeignFiles(t *testing.T) {
	a := newTestAggregator(t)
	writeSession(t, a, "Math", "Math_2026-01-01_09-00-00.csv", "Enrollment,Name\n0001-0001,Ana\n")
	writeSession(t, a, "Math", "notes.csv", "Enrollment,Name\n0009-0009,Zed\n")
	writeSession(t, a, "Math", storage.SummaryFile,
		"Enrollment,Name,PresentCount,TotalSessions,Attendance\n0009-0009,Zed,5,5,100%\n")

	rows, err := a.Recompute("Math")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].EnrollmentID != "0001-0001" || rows[0].AttendancePct != 100 {
		t.Errorf("unexpected rows %+v", rows)
	}
}

func TestSummary_UnknownSubject(t *testing.T) {
	a := newTestAggregator(t)
	if _, err := a.Summary("Math"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRefreshAll(t *testing.T) {
	a := newTestAggregator(t, "Math", "Physics", "Biology")
	writeSession(t, a, "Math", "Math_2026-01-01_09-00-00.csv", "Enrollment,Name\n0001-0001,Ana\n")
	writeSession(t, a, "Biology", "Biology_2026-01-01_09-00-00.csv", "")

	rep, err := a.RefreshAll()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(rep.Refreshed, []string{"Math"}) {
		t.Errorf("refreshed = %v", rep.Refreshed)
	}
	if !reflect.DeepEqual(rep.Skipped, []string{"Physics"}) {
		t.Errorf("skipped = %v", rep.Skipped)
	}
	if msg, ok := rep.Failed["Biology"]; !ok || !strings.Contains(msg, "no valid") {
		t.Errorf("failed = %v", rep.Failed)
	}
}
