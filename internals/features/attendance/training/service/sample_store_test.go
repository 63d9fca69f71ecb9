package service

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"

	"absensiwajah_backend/internals/features/attendance/domain"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: 120, B: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return NewStore(filepath.Join(dir, "TrainingImage"), filepath.Join(dir, "TrainingImageLabel", "Trainner.yml"))
}

func TestSaveSample_NormalizesAndNumbers(t *testing.T) {
	s := newTestStore(t)

	first, err := s.SaveSample("0001-0001", "Ana Putri", bytes.NewReader(pngBytes(t, 640, 480)))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first.FileName != "ana-putri_0001-0001_1.jpg" {
		t.Errorf("unexpected file name %q", first.FileName)
	}
	second, err := s.SaveSample("0001-0001", "Ana Putri", bytes.NewReader(pngBytes(t, 50, 50)))
	if err != nil {
		t.Fatalf("save 2: %v", err)
	}
	if !strings.HasSuffix(second.FileName, "_2.jpg") {
		t.Errorf("second sample should be numbered 2, got %q", second.FileName)
	}

	img, err := imaging.Open(first.Path)
	if err != nil {
		t.Fatalf("open sample: %v", err)
	}
	if b := img.Bounds(); b.Dx() > DefaultSampleSize || b.Dy() > DefaultSampleSize {
		t.Errorf("sample not fitted: %v", b)
	}

	list, _ := s.Samples("0001-0001")
	if len(list) != 2 {
		t.Errorf("expected 2 samples, got %d", len(list))
	}
}

func TestSaveSample_Rejects(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.SaveSample("123", "Ana", bytes.NewReader(pngBytes(t, 10, 10))); !errors.Is(err, domain.ErrInvalidFormat) {
		t.Errorf("bad id: expected ErrInvalidFormat, got %v", err)
	}
	if _, err := s.SaveSample("0001-0001", "Ana", strings.NewReader("not an image")); !errors.Is(err, domain.ErrInvalidFormat) {
		t.Errorf("bad image: expected ErrInvalidFormat, got %v", err)
	}
}

func TestThumbnailAndPurge(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Thumbnail("0001-0001", 64); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("no samples: expected ErrNotFound, got %v", err)
	}

	_, _ = s.SaveSample("0001-0001", "Ana", bytes.NewReader(pngBytes(t, 300, 300)))
	thumb, err := s.Thumbnail("0001-0001", 64)
	if err != nil {
		t.Fatalf("thumbnail: %v", err)
	}
	if len(thumb) < 12 || string(thumb[0:4]) != "RIFF" || string(thumb[8:12]) != "WEBP" {
		t.Errorf("thumbnail is not webp")
	}

	if err := s.Purge("0001-0001"); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if list, _ := s.Samples("0001-0001"); len(list) != 0 {
		t.Errorf("samples left after purge: %v", list)
	}
	if err := s.Purge("../etc"); !errors.Is(err, domain.ErrInvalidFormat) {
		t.Errorf("path traversal: expected ErrInvalidFormat, got %v", err)
	}
}

func TestPurgeAll_RemovesModel(t *testing.T) {
	s := newTestStore(t)
	_, _ = s.SaveSample("0001-0001", "Ana", bytes.NewReader(pngBytes(t, 20, 20)))
	_ = os.MkdirAll(filepath.Dir(s.ModelPath), 0o755)
	_ = os.WriteFile(s.ModelPath, []byte("model"), 0o644)

	if err := s.PurgeAll(); err != nil {
		t.Fatalf("purge all: %v", err)
	}
	if _, err := os.Stat(s.Root); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("training dir should be gone, stat err = %v", err)
	}
	if _, err := os.Stat(s.ModelPath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("model file should be gone, stat err = %v", err)
	}
	// kedua kali tetap sukses
	if err := s.PurgeAll(); err != nil {
		t.Errorf("second purge all: %v", err)
	}
}
