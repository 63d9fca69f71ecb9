// Package repository: penyimpanan master siswa. Dua implementasi:
// CSV (default, StudentDetails/studentdetails.csv) dan gorm (STUDENT_STORE=db).
package repository

import (
	"context"

	"absensiwajah_backend/internals/features/attendance/domain"
)

// Repository kontrak penyimpanan siswa. Validasi input dilakukan di service;
// repo hanya menjaga keunikan EnrollmentID.
type Repository interface {
	// List semua siswa sesuai urutan simpan.
	List(ctx context.Context) ([]domain.Student, error)
	// Get → domain.ErrNotFound kalau tidak ada.
	Get(ctx context.Context, enrollmentID string) (domain.Student, error)
	// Create → domain.ErrDuplicate kalau id sudah ada.
	Create(ctx context.Context, s domain.Student) error
	// UpdateSubjects → domain.ErrNotFound kalau id tidak ada.
	UpdateSubjects(ctx context.Context, enrollmentID string, subjects []string) error
	// Delete return false kalau id memang tidak ada (bukan error).
	Delete(ctx context.Context, enrollmentID string) (bool, error)
	// Truncate hapus semua baris, schema tetap.
	Truncate(ctx context.Context) error
}
