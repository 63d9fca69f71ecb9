package repository

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"absensiwajah_backend/internals/features/attendance/domain"
	"absensiwajah_backend/internals/helpers/csvtable"
)

// StudentColumns schema tabel master siswa.
var StudentColumns = []string{"Enrollment", "Name", "Subjects"}

// CSVRepository: satu file CSV, load → mutasi → flush atomic tiap operasi.
type CSVRepository struct {
	Path string
	mu   sync.Mutex
}

func NewCSVRepository(path string) *CSVRepository {
	return &CSVRepository{Path: path}
}

func (r *CSVRepository) open() (*csvtable.Table, error) {
	tbl, err := csvtable.Open(r.Path, StudentColumns)
	if err != nil {
		return nil, domain.IOFailure("read", r.Path, err)
	}
	if tbl.Existed && tbl.Migrated {
		if err := r.flush(tbl); err != nil {
			return nil, err
		}
		log.Printf("[STUDENTS] %s dimigrasi ke kolom %v", r.Path, tbl.Columns)
	}
	return tbl, nil
}

func (r *CSVRepository) flush(tbl *csvtable.Table) error {
	if err := os.MkdirAll(filepath.Dir(r.Path), 0o755); err != nil {
		return domain.IOFailure("mkdir", filepath.Dir(r.Path), err)
	}
	if err := tbl.Flush(); err != nil {
		return domain.IOFailure("write", r.Path, err)
	}
	return nil
}

func rowToStudent(row csvtable.Row) domain.Student {
	return domain.Student{
		EnrollmentID: strings.TrimSpace(row["Enrollment"]),
		Name:         strings.TrimSpace(row["Name"]),
		Subjects:     domain.SplitSubjects(row["Subjects"]),
	}
}

func findRow(tbl *csvtable.Table, id string) csvtable.Row {
	for _, row := range tbl.Rows {
		if strings.TrimSpace(row["Enrollment"]) == id {
			return row
		}
	}
	return nil
}

func (r *CSVRepository) List(_ context.Context) ([]domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tbl, err := r.open()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Student, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		s := rowToStudent(row)
		if s.EnrollmentID == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *CSVRepository) Get(_ context.Context, id string) (domain.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tbl, err := r.open()
	if err != nil {
		return domain.Student{}, err
	}
	row := findRow(tbl, id)
	if row == nil {
		return domain.Student{}, fmt.Errorf("%w: student %s", domain.ErrNotFound, id)
	}
	return rowToStudent(row), nil
}

func (r *CSVRepository) Create(_ context.Context, s domain.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tbl, err := r.open()
	if err != nil {
		return err
	}
	if findRow(tbl, s.EnrollmentID) != nil {
		return fmt.Errorf("%w: enrollment %s already registered", domain.ErrDuplicate, s.EnrollmentID)
	}
	tbl.Append(csvtable.Row{
		"Enrollment": s.EnrollmentID,
		"Name":       s.Name,
		"Subjects":   domain.JoinSubjects(s.Subjects),
	})
	return r.flush(tbl)
}

func (r *CSVRepository) UpdateSubjects(_ context.Context, id string, subjects []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tbl, err := r.open()
	if err != nil {
		return err
	}
	row := findRow(tbl, id)
	if row == nil {
		return fmt.Errorf("%w: student %s", domain.ErrNotFound, id)
	}
	row["Subjects"] = domain.JoinSubjects(subjects)
	return r.flush(tbl)
}

func (r *CSVRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tbl, err := r.open()
	if err != nil {
		return false, err
	}
	if !tbl.Existed {
		return false, nil
	}
	removed := tbl.Filter(func(row csvtable.Row) bool {
		return strings.TrimSpace(row["Enrollment"]) != id
	})
	if removed == 0 {
		return false, nil
	}
	return true, r.flush(tbl)
}

func (r *CSVRepository) Truncate(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tbl, err := r.open()
	if err != nil {
		return err
	}
	tbl.Truncate()
	return r.flush(tbl)
}
