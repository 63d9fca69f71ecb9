// internals/features/attendance/students/dto/student_dto.go
package dto

import (
	"absensiwajah_backend/internals/features/attendance/domain"
)

/* ===================== REQUESTS ===================== */

type CreateStudentRequest struct {
	EnrollmentID string   `json:"enrollment_id" validate:"required,enrollment"`
	Name         string   `json:"name"          validate:"required,max=120"`
	Subjects     []string `json:"subjects"      validate:"omitempty,dive,max=120"`
}

type UpdateStudentSubjectsRequest struct {
	Subjects []string `json:"subjects" validate:"dive,max=120"`
}

// ListStudentsQuery ?q=&subject=&page=&per_page=
type ListStudentsQuery struct {
	Q       string `query:"q"`
	Subject string `query:"subject"`
}

/* ===================== RESPONSES ===================== */

type StudentResponse struct {
	EnrollmentID string   `json:"enrollment_id"`
	Name         string   `json:"name"`
	Subjects     []string `json:"subjects"`
	SubjectsText string   `json:"subjects_text"`
}

func NewStudentResponse(s domain.Student) StudentResponse {
	subs := s.Subjects
	if subs == nil {
		subs = []string{}
	}
	return StudentResponse{
		EnrollmentID: s.EnrollmentID,
		Name:         s.Name,
		Subjects:     subs,
		SubjectsText: domain.JoinSubjects(subs),
	}
}

func NewStudentResponses(list []domain.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(list))
	for _, s := range list {
		out = append(out, NewStudentResponse(s))
	}
	return out
}
