package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"absensiwajah_backend/internals/features/attendance/domain"
	"absensiwajah_backend/internals/features/attendance/students/model"
)

// GormRepository master siswa di tabel students (Postgres / SQLite).
type GormRepository struct {
	DB *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{DB: db}
}

// AutoMigrate dipanggil sekali saat start (schema migration di titik open).
func (r *GormRepository) AutoMigrate() error {
	return r.DB.AutoMigrate(&model.StudentModel{})
}

// isUniqueViolation: 23505 dari Postgres, ErrDuplicatedKey dari TranslateError,
// atau pesan UNIQUE constraint dari SQLite.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func dbFailure(op string, err error) error {
	return domain.IOFailure(op, "students", err)
}

func (r *GormRepository) List(ctx context.Context) ([]domain.Student, error) {
	var rows []model.StudentModel
	if err := r.DB.WithContext(ctx).
		Order("student_created_at ASC, student_enrollment ASC").
		Find(&rows).Error; err != nil {
		return nil, dbFailure("list", err)
	}
	out := make([]domain.Student, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.ToDomain())
	}
	return out, nil
}

func (r *GormRepository) Get(ctx context.Context, id string) (domain.Student, error) {
	var m model.StudentModel
	err := r.DB.WithContext(ctx).
		Where("student_enrollment = ?", id).
		Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Student{}, fmt.Errorf("%w: student %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return domain.Student{}, dbFailure("get", err)
	}
	return m.ToDomain(), nil
}

func (r *GormRepository) Create(ctx context.Context, s domain.Student) error {
	m := model.FromDomain(s)
	if err := r.DB.WithContext(ctx).Create(&m).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: enrollment %s already registered", domain.ErrDuplicate, s.EnrollmentID)
		}
		return dbFailure("create", err)
	}
	return nil
}

func (r *GormRepository) UpdateSubjects(ctx context.Context, id string, subjects []string) error {
	res := r.DB.WithContext(ctx).
		Model(&model.StudentModel{}).
		Where("student_enrollment = ?", id).
		Update("student_subjects", model.SubjectsJSON(subjects))
	if res.Error != nil {
		return dbFailure("update", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: student %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("student_enrollment = ?", id).
		Delete(&model.StudentModel{})
	if res.Error != nil {
		return false, dbFailure("delete", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepository) Truncate(ctx context.Context) error {
	if err := r.DB.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.StudentModel{}).Error; err != nil {
		return dbFailure("truncate", err)
	}
	return nil
}
