package domain

import (
	"math"
	"strconv"
	"time"
)

// Presence: satu siswa yang terdeteksi hadir di satu sesi.
type Presence struct {
	EnrollmentID string `json:"enrollment_id"`
	Name         string `json:"name"`
}

// SessionFile metadata satu file sesi di disk.
type SessionFile struct {
	Subject    string    `json:"subject"`
	FileName   string    `json:"file_name"`
	Path       string    `json:"-"`
	CapturedAt time.Time `json:"captured_at"`
	Rows       int       `json:"rows"`
}

// SummaryRow turunan, selalu dihitung ulang penuh dari semua sesi.
type SummaryRow struct {
	EnrollmentID  string `json:"enrollment_id"`
	Name          string `json:"name"`
	PresentCount  int    `json:"present_count"`
	TotalSessions int    `json:"total_sessions"`
	AttendancePct int    `json:"attendance_pct"`
}

// Percent = round(present/total*100), pembulatan half-to-even.
func Percent(present, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.RoundToEven(float64(present) / float64(total) * 100))
}

// AttendanceLabel render persen untuk kolom Attendance ("67%").
func (r SummaryRow) AttendanceLabel() string {
	return strconv.Itoa(r.AttendancePct) + "%"
}

// DedupPresences buang duplikat per EnrollmentID, yang pertama menang.
func DedupPresences(in []Presence) []Presence {
	out := make([]Presence, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, p := range in {
		if _, ok := seen[p.EnrollmentID]; ok {
			continue
		}
		seen[p.EnrollmentID] = struct{}{}
		out = append(out, p)
	}
	return out
}
