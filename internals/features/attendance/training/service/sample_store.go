package service

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"absensiwajah_backend/internals/features/attendance/domain"
	helper "absensiwajah_backend/internals/helpers"
)

/* =======================================================
   TRAINING SAMPLE STORE
   TrainingImage/<enrollment>/<nama>_<enrollment>_<n>.jpg
   + model hasil training di TrainingImageLabel/Trainner.yml
   ======================================================= */

const (
	DefaultSampleSize = 200
	maxSampleBytes    = 5 * 1024 * 1024
)

var sampleExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

type Store struct {
	Root       string // folder TrainingImage
	ModelPath  string // file model (dihapus saat PurgeAll)
	SampleSize int

	mu sync.Mutex
}

func NewStore(root, modelPath string) *Store {
	return &Store{Root: root, ModelPath: modelPath, SampleSize: DefaultSampleSize}
}

type Sample struct {
	FileName string `json:"file_name"`
	Path     string `json:"-"`
	Size     int64  `json:"size"`
}

func (s *Store) studentDir(id string) string { return filepath.Join(s.Root, id) }

/* ===================== DECODE / RESIZE ===================== */

// decodeImage jpeg/png/webp. WebP dikenali dari header RIFF....WEBP.
func decodeImage(all []byte) (image.Image, error) {
	if len(all) == 0 {
		return nil, errors.New("empty file")
	}
	if len(all) >= 12 && string(all[0:4]) == "RIFF" && string(all[8:12]) == "WEBP" {
		return webp.Decode(bytes.NewReader(all))
	}
	img, _, err := image.Decode(bytes.NewReader(all))
	return img, err
}

// fitInto skala gambar (keep aspect) supaya muat di size x size. CatmullRom.
func fitInto(src image.Image, size int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= size && h <= size {
		return src
	}
	scale := math.Min(float64(size)/float64(w), float64(size)/float64(h))
	nw := int(math.Max(1, math.Round(float64(w)*scale)))
	nh := int(math.Max(1, math.Round(float64(h)*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

/* ===================== OPERATIONS ===================== */

// SaveSample simpan satu sampel wajah: grayscale, fit SampleSize, JPEG.
func (s *Store) SaveSample(rawID, name string, r io.Reader) (Sample, error) {
	id, err := domain.NormalizeEnrollmentID(rawID)
	if err != nil {
		return Sample{}, err
	}
	name, err = domain.NormalizeStudentName(name)
	if err != nil {
		return Sample{}, err
	}

	all, err := io.ReadAll(io.LimitReader(r, maxSampleBytes+1))
	if err != nil {
		return Sample{}, domain.IOFailure("read", "upload", err)
	}
	if len(all) > maxSampleBytes {
		return Sample{}, fmt.Errorf("%w: image larger than %d bytes", domain.ErrInvalidFormat, maxSampleBytes)
	}
	img, err := decodeImage(all)
	if err != nil {
		return Sample{}, fmt.Errorf("%w: unsupported image: %v", domain.ErrInvalidFormat, err)
	}

	size := s.SampleSize
	if size <= 0 {
		size = DefaultSampleSize
	}
	gray := imaging.Fit(imaging.Grayscale(img), size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, gray, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return Sample{}, domain.IOFailure("encode", "sample", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.studentDir(id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Sample{}, domain.IOFailure("mkdir", dir, err)
	}
	existing, err := s.samples(id)
	if err != nil {
		return Sample{}, err
	}

	base := helper.Slugify(name, 60) + "_" + id
	for n := len(existing) + 1; ; n++ {
		fileName := fmt.Sprintf("%s_%d.jpg", base, n)
		path := filepath.Join(dir, fileName)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return Sample{}, domain.IOFailure("create", path, err)
		}
		_, werr := f.Write(buf.Bytes())
		cerr := f.Close()
		if werr != nil || cerr != nil {
			_ = os.Remove(path)
			return Sample{}, domain.IOFailure("write", path, errors.Join(werr, cerr))
		}
		log.Printf("[TRAINING] sampel %s disimpan (%d bytes)", fileName, buf.Len())
		return Sample{FileName: fileName, Path: path, Size: int64(buf.Len())}, nil
	}
}

// Samples daftar sampel siswa, urut nama. Folder belum ada → kosong.
func (s *Store) Samples(rawID string) ([]Sample, error) {
	id, err := domain.NormalizeEnrollmentID(rawID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.samples(id)
}

func (s *Store) samples(id string) ([]Sample, error) {
	dir := s.studentDir(id)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Sample{}, nil
	}
	if err != nil {
		return nil, domain.IOFailure("readdir", dir, err)
	}
	out := make([]Sample, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !sampleExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		sm := Sample{FileName: e.Name(), Path: filepath.Join(dir, e.Name())}
		if info, err := e.Info(); err == nil {
			sm.Size = info.Size()
		}
		out = append(out, sm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FileName < out[j].FileName })
	return out, nil
}

// Thumbnail webp dari sampel pertama, muat di size x size.
func (s *Store) Thumbnail(rawID string, size int) ([]byte, error) {
	list, err := s.Samples(rawID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no training samples for %s", domain.ErrNotFound, strings.TrimSpace(rawID))
	}
	if size <= 0 || size > 512 {
		size = 96
	}

	all, err := os.ReadFile(list[0].Path)
	if err != nil {
		return nil, domain.IOFailure("read", list[0].Path, err)
	}
	img, err := decodeImage(all)
	if err != nil {
		return nil, domain.IOFailure("decode", list[0].Path, err)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, fitInto(img, size), &webp.Options{Lossless: false, Quality: 80}); err != nil {
		return nil, domain.IOFailure("encode", "thumbnail", err)
	}
	return buf.Bytes(), nil
}

// Purge hapus folder sampel satu siswa. Tidak ada → no-op.
func (s *Store) Purge(rawID string) error {
	id := strings.TrimSpace(rawID)
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidFormat, rawID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.studentDir(id)
	if err := os.RemoveAll(dir); err != nil {
		return domain.IOFailure("remove", dir, err)
	}
	return nil
}

// PurgeAll hapus semua sampel + file model.
func (s *Store) PurgeAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.RemoveAll(s.Root); err != nil {
		return domain.IOFailure("remove", s.Root, err)
	}
	if s.ModelPath != "" {
		if err := os.Remove(s.ModelPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return domain.IOFailure("remove", s.ModelPath, err)
		}
	}
	log.Printf("[TRAINING] semua sampel & model dihapus")
	return nil
}
