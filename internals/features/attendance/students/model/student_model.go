// internals/features/attendance/students/model/student_model.go
package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"absensiwajah_backend/internals/features/attendance/domain"
)

// StudentModel: tabel students (STUDENT_STORE=db). Subjects disimpan sebagai
// JSON array supaya portable antara Postgres & SQLite.
type StudentModel struct {
	StudentEnrollment string         `gorm:"type:varchar(9);primaryKey;column:student_enrollment" json:"student_enrollment"`
	StudentName       string         `gorm:"type:varchar(150);not null;column:student_name" json:"student_name"`
	StudentSubjects   datatypes.JSON `gorm:"column:student_subjects" json:"student_subjects"`

	StudentCreatedAt time.Time `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`
}

func (StudentModel) TableName() string { return "students" }

// SubjectsJSON encode daftar subject; slice kosong → "[]" (bukan null).
func SubjectsJSON(subjects []string) datatypes.JSON {
	if subjects == nil {
		subjects = []string{}
	}
	b, _ := json.Marshal(subjects)
	return datatypes.JSON(b)
}

// ToDomain konversi row DB → domain.Student. JSON rusak dianggap tanpa subject.
func (m StudentModel) ToDomain() domain.Student {
	var subjects []string
	if len(m.StudentSubjects) > 0 {
		_ = json.Unmarshal(m.StudentSubjects, &subjects)
	}
	return domain.Student{
		EnrollmentID: m.StudentEnrollment,
		Name:         m.StudentName,
		Subjects:     domain.UniqueSubjects(subjects),
	}
}

func FromDomain(s domain.Student) StudentModel {
	return StudentModel{
		StudentEnrollment: s.EnrollmentID,
		StudentName:       s.Name,
		StudentSubjects:   SubjectsJSON(s.Subjects),
	}
}
