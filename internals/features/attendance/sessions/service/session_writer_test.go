package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"absensiwajah_backend/internals/features/attendance/domain"
	"absensiwajah_backend/internals/features/attendance/storage"
	sumService "absensiwajah_backend/internals/features/attendance/summary/service"
)

type failingRecompute struct{ calls int }

func (f *failingRecompute) Recompute(string) ([]domain.SummaryRow, error) {
	f.calls++
	return nil, errors.New("disk full")
}

type fakeStudents map[string]string

func (f fakeStudents) Get(_ context.Context, id string) (domain.Student, error) {
	name, ok := f[id]
	if !ok {
		return domain.Student{}, domain.ErrNotFound
	}
	return domain.Student{EnrollmentID: id, Name: name}, nil
}

func fixedClock() func() time.Time {
	t := time.Date(2024, 3, 5, 9, 30, 15, 0, time.UTC)
	return func() time.Time { return t }
}

func newTestWriter(t *testing.T) *Writer {
	t.Helper()
	layout := storage.NewLayout(t.TempDir())
	locks := storage.NewLocks()
	w := NewWriter(layout, locks, sumService.NewAggregator(layout, locks, nil))
	w.Now = fixedClock()
	return w
}

func TestSave_DedupKeepsFirstOccurrence(t *testing.T) {
	w := newTestWriter(t)
	in := []domain.Presence{
		{EnrollmentID: "0001-0001", Name: "A"},
		{EnrollmentID: "0001-0001", Name: "A"},
		{EnrollmentID: "0002-0002", Name: "B"},
	}
	res, err := w.Save(context.Background(), "Math", in)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if res.Session.Rows != 2 {
		t.Errorf("rows = %d, want 2", res.Session.Rows)
	}
	if res.Session.FileName != "Math_2024-03-05_09-30-15.csv" {
		t.Errorf("file name = %q", res.Session.FileName)
	}

	got, err := Read(res.Session.Path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := []domain.Presence{{EnrollmentID: "0001-0001", Name: "A"}, {EnrollmentID: "0002-0002", Name: "B"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip = %v, want %v", got, want)
	}

	if len(res.Summary) != 2 || res.Summary[0].AttendancePct != 100 || res.SummaryError != "" {
		t.Errorf("summary not recomputed: %+v (err=%q)", res.Summary, res.SummaryError)
	}
}

func TestSave_SameSecondDoesNotOverwrite(t *testing.T) {
	w := newTestWriter(t)
	ctx := context.Background()

	first, err := w.Save(ctx, "Math", []domain.Presence{{EnrollmentID: "0001-0001", Name: "A"}})
	if err != nil {
		t.Fatal(err)
	}
	second, err := w.Save(ctx, "Math", []domain.Presence{{EnrollmentID: "0002-0002", Name: "B"}})
	if err != nil {
		t.Fatal(err)
	}
	if second.Session.FileName != "Math_2024-03-05_09-30-15_2.csv" {
		t.Errorf("collision name = %q", second.Session.FileName)
	}

	rows, _ := Read(first.Session.Path)
	if len(rows) != 1 || rows[0].EnrollmentID != "0001-0001" {
		t.Errorf("first session overwritten: %v", rows)
	}
	files, _ := w.Layout.SessionFiles("Math")
	if len(files) != 2 {
		t.Errorf("expected 2 session files, got %d", len(files))
	}
	// 0001 hadir 1 dari 2 sesi
	if second.Summary[0].EnrollmentID != "0001-0001" || second.Summary[0].AttendancePct != 50 {
		t.Errorf("summary after 2 sessions: %+v", second.Summary)
	}
}

func TestSave_RecomputeFailureKeepsSession(t *testing.T) {
	w := newTestWriter(t)
	fr := &failingRecompute{}
	w.Aggregator = fr

	res, err := w.Save(context.Background(), "Math", []domain.Presence{{EnrollmentID: "0001-0001", Name: "A"}})
	if err != nil {
		t.Fatalf("save should succeed even if recompute fails: %v", err)
	}
	if fr.calls != 1 || !strings.Contains(res.SummaryError, "disk full") {
		t.Errorf("recompute error not reported: calls=%d err=%q", fr.calls, res.SummaryError)
	}
	if rows, err := Read(res.Session.Path); err != nil || len(rows) != 1 {
		t.Errorf("session file missing: %v %v", rows, err)
	}
}

func TestSave_StudentLookupDropsUnknownAndFillsNames(t *testing.T) {
	w := newTestWriter(t)
	w.Students = fakeStudents{"0001-0001": "Ana"}

	res, err := w.Save(context.Background(), "Math", []domain.Presence{
		{EnrollmentID: " 0001-0001 ", Name: ""},
		{EnrollmentID: "0009-0009", Name: "Ghost"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.Dropped, []string{"0009-0009"}) {
		t.Errorf("dropped = %v", res.Dropped)
	}
	rows, _ := Read(res.Session.Path)
	if !reflect.DeepEqual(rows, []domain.Presence{{EnrollmentID: "0001-0001", Name: "Ana"}}) {
		t.Errorf("rows = %v", rows)
	}
}

func TestSave_BlankNameIsDroppedWithoutLookup(t *testing.T) {
	w := newTestWriter(t)

	res, err := w.Save(context.Background(), "Math", []domain.Presence{
		{EnrollmentID: "0001-0001", Name: "  "},
		{EnrollmentID: "0002-0002", Name: "B"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(res.Dropped, []string{"0001-0001"}) {
		t.Errorf("dropped = %v", res.Dropped)
	}
	rows, _ := Read(res.Session.Path)
	if !reflect.DeepEqual(rows, []domain.Presence{{EnrollmentID: "0002-0002", Name: "B"}}) {
		t.Errorf("rows = %v", rows)
	}
	// setiap baris yang tertulis ikut terhitung di summary
	if len(res.Summary) != len(rows) {
		t.Errorf("summary has %d rows, session has %d", len(res.Summary), len(rows))
	}
}

type fakeCatalog map[string]bool

func (f fakeCatalog) Exists(name string) (bool, error) { return f[name], nil }

func TestSave_Rejects(t *testing.T) {
	w := newTestWriter(t)
	w.Subjects = fakeCatalog{"Math": true}
	ctx := context.Background()

	if _, err := w.Save(ctx, "  ", nil); !errors.Is(err, domain.ErrInvalidName) {
		t.Errorf("blank subject: expected ErrInvalidName, got %v", err)
	}
	if _, err := w.Save(ctx, "Chemistry", nil); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unregistered subject: expected ErrNotFound, got %v", err)
	}
	if files, _ := w.Layout.SessionFiles("Chemistry"); len(files) != 0 {
		t.Errorf("nothing should be written for a rejected save")
	}
}
