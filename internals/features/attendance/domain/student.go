package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// SubjectSeparator dipakai untuk join daftar subject di tabel siswa.
const SubjectSeparator = ";"

var reEnrollment = regexp.MustCompile(`^\d{4}-\d{4}$`)

// Student adalah satu baris di master siswa, key = EnrollmentID.
type Student struct {
	EnrollmentID string   `json:"enrollment_id"`
	Name         string   `json:"name"`
	Subjects     []string `json:"subjects"`
}

// HasSubject cek keanggotaan subject (exact match).
func (s Student) HasSubject(subject string) bool {
	for _, sub := range s.Subjects {
		if sub == subject {
			return true
		}
	}
	return false
}

// NormalizeEnrollmentID trim lalu validasi format dddd-dddd.
func NormalizeEnrollmentID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if !reEnrollment.MatchString(id) {
		return "", fmt.Errorf("%w: %q (use ####-####, e.g. 0123-0263)", ErrInvalidFormat, raw)
	}
	return id, nil
}

// IsEnrollmentID dipakai validator DTO.
func IsEnrollmentID(raw string) bool {
	return reEnrollment.MatchString(strings.TrimSpace(raw))
}

// NormalizeStudentName trim, kosong = ErrInvalidName.
func NormalizeStudentName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: student name is required", ErrInvalidName)
	}
	return name, nil
}

// UniqueSubjects buang entry kosong & duplikat, urutan kemunculan pertama dipertahankan.
func UniqueSubjects(subjects []string) []string {
	out := make([]string, 0, len(subjects))
	seen := make(map[string]struct{}, len(subjects))
	for _, s := range subjects {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// JoinSubjects / SplitSubjects: format kolom Subjects ("a;b;c", boleh kosong).
func JoinSubjects(subjects []string) string {
	return strings.Join(subjects, SubjectSeparator)
}

func SplitSubjects(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	return UniqueSubjects(strings.Split(raw, SubjectSeparator))
}
