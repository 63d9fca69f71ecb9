package dbtime

import (
	"testing"
	"time"
)

func TestSetLocation_FallsBackOnUnknownZone(t *testing.T) {
	loc := SetLocation("Not/AZone")
	if loc == nil {
		t.Fatal("location must never be nil")
	}
	if loc.String() != DefaultTimezone && loc != time.UTC {
		t.Errorf("unexpected fallback zone %q", loc.String())
	}
	t.Cleanup(func() { SetLocation("UTC") })
}

func TestParseInApp(t *testing.T) {
	SetLocation("UTC")
	got, err := ParseInApp("2006-01-02 15:04:05", " 2026-03-04 05:06:07 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if !ToAppTime(time.Time{}).IsZero() {
		t.Error("zero time must stay zero")
	}
}
