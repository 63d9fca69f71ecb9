package domain

import (
	"errors"
	"fmt"
)

// Taksonomi error untuk pembukuan absensi. Konteks ditambahkan dengan wrap
// (fmt.Errorf("%w: ...")), pemanggil cek pakai errors.Is.
var (
	ErrInvalidFormat   = errors.New("invalid enrollment id format")
	ErrInvalidName     = errors.New("invalid name")
	ErrDuplicate       = errors.New("duplicate record")
	ErrNotFound        = errors.New("not found")
	ErrHasRecords      = errors.New("subject has attendance records")
	ErrNoSessions      = errors.New("no attendance sessions")
	ErrNoValidSessions = errors.New("no valid attendance sessions")
	ErrIOFailure       = errors.New("storage failure")
)

// IOFailure membungkus error storage asli supaya errors.Is(err, ErrIOFailure)
// dan errors.Is(err, fs.ErrNotExist) dst. sama-sama jalan.
func IOFailure(op, path string, cause error) error {
	if cause == nil {
		return nil
	}
	return fmt.Errorf("%w: %s %s: %w", ErrIOFailure, op, path, cause)
}
