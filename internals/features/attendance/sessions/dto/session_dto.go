// internals/features/attendance/sessions/dto/session_dto.go
package dto

import (
	"time"

	"absensiwajah_backend/internals/features/attendance/domain"
	sService "absensiwajah_backend/internals/features/attendance/sessions/service"
	"absensiwajah_backend/internals/helpers/dbtime"
)

/* ===================== REQUESTS ===================== */

type PresenceRequest struct {
	EnrollmentID string `json:"enrollment_id" validate:"required,enrollment"`
	Name         string `json:"name"          validate:"omitempty,max=120"`
}

// SaveSessionRequest hasil satu kali "ambil absen" dari modul kamera/pengenal wajah.
type SaveSessionRequest struct {
	Presences []PresenceRequest `json:"presences" validate:"required,min=1,dive"`
}

func (r SaveSessionRequest) ToDomain() []domain.Presence {
	out := make([]domain.Presence, 0, len(r.Presences))
	for _, p := range r.Presences {
		out = append(out, domain.Presence{EnrollmentID: p.EnrollmentID, Name: p.Name})
	}
	return out
}

/* ===================== RESPONSES ===================== */

type SummaryRowResponse struct {
	domain.SummaryRow
	Attendance string `json:"attendance"`
}

type SaveSessionResponse struct {
	Subject      string               `json:"subject"`
	FileName     string               `json:"file_name"`
	CapturedAt   time.Time            `json:"captured_at"`
	Rows         int                  `json:"rows"`
	Dropped      []string             `json:"dropped,omitempty"`
	Summary      []SummaryRowResponse `json:"summary,omitempty"`
	SummaryError string               `json:"summary_error,omitempty"`
	ArchiveKey   string               `json:"archive_key,omitempty"`
}

func NewSaveSessionResponse(res sService.SaveResult) SaveSessionResponse {
	out := SaveSessionResponse{
		Subject:      res.Session.Subject,
		FileName:     res.Session.FileName,
		CapturedAt:   dbtime.ToAppTime(res.Session.CapturedAt),
		Rows:         res.Session.Rows,
		Dropped:      res.Dropped,
		SummaryError: res.SummaryError,
		ArchiveKey:   res.ArchiveKey,
	}
	for _, r := range res.Summary {
		out.Summary = append(out.Summary, SummaryRowResponse{SummaryRow: r, Attendance: r.AttendanceLabel()})
	}
	return out
}
