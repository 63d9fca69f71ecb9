package service

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"absensiwajah_backend/internals/features/attendance/domain"
	"absensiwajah_backend/internals/features/attendance/students/repository"
)

type fakeSubjects map[string]bool

func (f fakeSubjects) Exists(name string) (bool, error) { return f[name], nil }

type fakePurger struct {
	purged []string
	all    int
}

func (f *fakePurger) Purge(id string) error { f.purged = append(f.purged, id); return nil }
func (f *fakePurger) PurgeAll() error       { f.all++; return nil }

func newTestRegistry(t *testing.T) (*Registry, *fakePurger) {
	t.Helper()
	repo := repository.NewCSVRepository(filepath.Join(t.TempDir(), "studentdetails.csv"))
	p := &fakePurger{}
	r, err := NewRegistry(repo, fakeSubjects{"Math": true, "Physics": true}, p)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	return r, p
}

func TestAdd_FormatValidation(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	for _, bad := range []string{"12345", "0001-001"} {
		if _, err := r.Add(ctx, bad, "X", nil); !errors.Is(err, domain.ErrInvalidFormat) {
			t.Errorf("Add(%q): expected ErrInvalidFormat, got %v", bad, err)
		}
	}
	if _, err := r.Add(ctx, "0001-0001", "X", nil); err != nil {
		t.Errorf("Add(0001-0001): unexpected error %v", err)
	}
}

func TestAdd_ValidationOrderAndDuplicate(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()

	// format dicek sebelum nama
	if _, err := r.Add(ctx, "bad", "   ", nil); !errors.Is(err, domain.ErrInvalidFormat) {
		t.Errorf("expected ErrInvalidFormat first, got %v", err)
	}
	if _, err := r.Add(ctx, "0001-0001", "   ", nil); !errors.Is(err, domain.ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
	if _, err := r.Add(ctx, "0001-0001", "Ana", []string{"Chemistry"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("unregistered subject: expected ErrNotFound, got %v", err)
	}

	st, err := r.Add(ctx, " 0001-0001 ", " Ana ", []string{"Math", "Physics", "Math", ""})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	want := domain.Student{EnrollmentID: "0001-0001", Name: "Ana", Subjects: []string{"Math", "Physics"}}
	if !reflect.DeepEqual(st, want) {
		t.Errorf("Add = %+v, want %+v", st, want)
	}

	if _, err := r.Add(ctx, "0001-0001", "Other", nil); !errors.Is(err, domain.ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestRemove_AbsentIsNoop(t *testing.T) {
	r, p := newTestRegistry(t)
	ctx := context.Background()
	_, _ = r.Add(ctx, "0001-0001", "Ana", nil)

	removed, err := r.Remove(ctx, "0001-0001")
	if err != nil || !removed {
		t.Fatalf("remove existing = %v, %v", removed, err)
	}
	removed, err = r.Remove(ctx, "0001-0001")
	if err != nil || removed {
		t.Errorf("remove absent = %v, %v (want false, nil)", removed, err)
	}
	if !reflect.DeepEqual(p.purged, []string{"0001-0001", "0001-0001"}) {
		t.Errorf("training samples should be purged on remove, got %v", p.purged)
	}
}

func TestUpdateSubjects(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()
	_, _ = r.Add(ctx, "0001-0001", "Ana", []string{"Math"})

	if _, err := r.UpdateSubjects(ctx, "0009-0009", []string{"Math"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	st, err := r.UpdateSubjects(ctx, "0001-0001", []string{"Physics"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !reflect.DeepEqual(st.Subjects, []string{"Physics"}) {
		t.Errorf("subjects = %v", st.Subjects)
	}
	subs, _ := r.Subjects(ctx, "0001-0001")
	if !reflect.DeepEqual(subs, []string{"Physics"}) {
		t.Errorf("Subjects() = %v", subs)
	}
}

func TestResetAll(t *testing.T) {
	r, p := newTestRegistry(t)
	ctx := context.Background()
	_, _ = r.Add(ctx, "0001-0001", "Ana", nil)
	_, _ = r.Add(ctx, "0002-0002", "Budi", nil)

	if err := r.ResetAll(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	list, _ := r.List(ctx)
	if len(list) != 0 {
		t.Errorf("expected empty list, got %v", list)
	}
	if p.all != 1 {
		t.Errorf("PurgeAll called %d times", p.all)
	}
	if hits, _ := r.Search(ctx, "ana", ""); len(hits) != 0 {
		t.Errorf("index should be empty after reset, got %v", hits)
	}
}

func TestSearch(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()
	_, _ = r.Add(ctx, "0001-0001", "Ana Putri", []string{"Math"})
	_, _ = r.Add(ctx, "0002-0002", "Budi Santoso", []string{"Physics"})
	_, _ = r.Add(ctx, "0123-0263", "Citra", []string{"Math", "Physics"})

	ids := func(list []domain.Student) []string {
		out := []string{}
		for _, s := range list {
			out = append(out, s.EnrollmentID)
		}
		return out
	}

	cases := []struct {
		q, subject string
		want       []string
	}{
		{"", "", []string{"0001-0001", "0002-0002", "0123-0263"}},
		{"", "Math", []string{"0001-0001", "0123-0263"}},
		{"put", "", []string{"0001-0001"}},
		{"BUDI", "", []string{"0002-0002"}},
		{"0263", "", []string{"0123-0263"}},
		{"santosa", "", []string{"0002-0002"}}, // typo 1 huruf
		{"ana", "Physics", []string{}},
	}
	for _, tc := range cases {
		got, err := r.Search(ctx, tc.q, tc.subject)
		if err != nil {
			t.Fatalf("Search(%q,%q): %v", tc.q, tc.subject, err)
		}
		if !reflect.DeepEqual(ids(got), tc.want) {
			t.Errorf("Search(%q,%q) = %v, want %v", tc.q, tc.subject, ids(got), tc.want)
		}
	}
}

func TestSearch_SeesRowsWrittenOutsideRegistry(t *testing.T) {
	r, _ := newTestRegistry(t)
	ctx := context.Background()
	if _, err := r.Add(ctx, "0001-0001", "Ana Lestari", []string{"Math"}); err != nil {
		t.Fatal(err)
	}

	// proses lain menulis ke file master yang sama
	other := repository.NewCSVRepository(r.Repo.(*repository.CSVRepository).Path)
	if err := other.Create(ctx, domain.Student{EnrollmentID: "0002-0002", Name: "Budi Santoso"}); err != nil {
		t.Fatal(err)
	}

	got, err := r.Search(ctx, "budi", "")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(got) != 1 || got[0].EnrollmentID != "0002-0002" {
		t.Errorf("search after outside write = %v", got)
	}

	if _, err := other.Delete(ctx, "0001-0001"); err != nil {
		t.Fatal(err)
	}
	if got, _ := r.Search(ctx, "ana", ""); len(got) != 0 {
		t.Errorf("deleted student still found: %v", got)
	}
}
