// internals/features/attendance/subjects/dto/subject_dto.go
package dto

import (
	"time"

	"absensiwajah_backend/internals/features/attendance/domain"
	"absensiwajah_backend/internals/features/attendance/storage"
	"absensiwajah_backend/internals/helpers/dbtime"
)

/* ===================== REQUESTS ===================== */

type RegisterSubjectRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type RemoveSubjectRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

/* ===================== RESPONSES ===================== */

type SubjectResponse struct {
	Name      string     `json:"name"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func NewSubjectResponse(s domain.Subject) SubjectResponse {
	out := SubjectResponse{Name: s.Name}
	if !s.CreatedAt.IsZero() {
		t := s.CreatedAt
		out.CreatedAt = &t
	}
	return out
}

func NewSubjectResponses(list []domain.Subject) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(list))
	for _, s := range list {
		out = append(out, NewSubjectResponse(s))
	}
	return out
}

type SessionEntryResponse struct {
	FileName   string    `json:"file_name"`
	Size       int64     `json:"size"`
	ModifiedAt time.Time `json:"modified_at"`
}

func NewSessionEntryResponses(entries []storage.SessionEntry) []SessionEntryResponse {
	out := make([]SessionEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, SessionEntryResponse{
			FileName:   e.FileName,
			Size:       e.Size,
			ModifiedAt: dbtime.ToAppTime(e.ModTime),
		})
	}
	return out
}
