package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"absensiwajah_backend/internals/features/attendance/domain"
	"absensiwajah_backend/internals/features/attendance/students/repository"
)

/* =======================================================
   STUDENT REGISTRY
   Master siswa + validasi + cascade ke sampel wajah.
   ======================================================= */

// SubjectChecker dipenuhi subject registry.
type SubjectChecker interface {
	Exists(name string) (bool, error)
}

// SamplePurger dipenuhi training store.
type SamplePurger interface {
	Purge(enrollmentID string) error
	PurgeAll() error
}

type Registry struct {
	Repo           repository.Repository
	SubjectCatalog SubjectChecker // nil → subject tidak dicek ke katalog
	Samples        SamplePurger   // nil → tanpa cascade
	Index          *SearchIndex
}

func NewRegistry(repo repository.Repository, subjects SubjectChecker, samples SamplePurger) (*Registry, error) {
	idx, err := NewSearchIndex()
	if err != nil {
		return nil, err
	}
	r := &Registry{Repo: repo, SubjectCatalog: subjects, Samples: samples, Index: idx}
	if err := r.Reindex(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

// Reindex bangun ulang index pencarian dari repository.
func (r *Registry) Reindex(ctx context.Context) error {
	list, err := r.Repo.List(ctx)
	if err != nil {
		return err
	}
	if err := r.Index.Rebuild(list); err != nil {
		return fmt.Errorf("rebuild search index: %w", err)
	}
	return nil
}

// normalizeSubjects: trim + NFC, buang duplikat, wajib terdaftar kalau checker ada.
func (r *Registry) normalizeSubjects(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		name, err := domain.NormalizeSubjectName(s)
		if err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	out = domain.UniqueSubjects(out)

	if r.SubjectCatalog == nil {
		return out, nil
	}
	for _, name := range out {
		ok, err := r.SubjectCatalog.Exists(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: subject %q is not registered", domain.ErrNotFound, name)
		}
	}
	return out, nil
}

// Add daftarkan siswa baru. Urutan validasi: format id → nama → subject → duplikat.
func (r *Registry) Add(ctx context.Context, rawID, rawName string, subjects []string) (domain.Student, error) {
	id, err := domain.NormalizeEnrollmentID(rawID)
	if err != nil {
		return domain.Student{}, err
	}
	name, err := domain.NormalizeStudentName(rawName)
	if err != nil {
		return domain.Student{}, err
	}
	subs, err := r.normalizeSubjects(subjects)
	if err != nil {
		return domain.Student{}, err
	}

	st := domain.Student{EnrollmentID: id, Name: name, Subjects: subs}
	if err := r.Repo.Create(ctx, st); err != nil {
		return domain.Student{}, err
	}
	if err := r.Index.Put(st); err != nil {
		log.Printf("[WARN] [STUDENTS] index %s gagal: %v", id, err)
	}
	log.Printf("[STUDENTS] siswa %s (%s) didaftarkan, subjects=%v", id, name, subs)
	return st, nil
}

// Remove hapus siswa. Id yang tidak ada tetap sukses (removed=false).
// Sampel wajah siswa ikut dihapus; riwayat absensi tidak disentuh.
func (r *Registry) Remove(ctx context.Context, rawID string) (bool, error) {
	id := strings.TrimSpace(rawID)
	if id == "" {
		return false, fmt.Errorf("%w: enrollment id is required", domain.ErrInvalidFormat)
	}

	removed, err := r.Repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if err := r.Index.Delete(id); err != nil {
		log.Printf("[WARN] [STUDENTS] unindex %s gagal: %v", id, err)
	}
	if r.Samples != nil {
		if err := r.Samples.Purge(id); err != nil {
			return removed, err
		}
	}
	if removed {
		log.Printf("[STUDENTS] siswa %s dihapus", id)
	}
	return removed, nil
}

// UpdateSubjects ganti daftar subject siswa.
func (r *Registry) UpdateSubjects(ctx context.Context, rawID string, subjects []string) (domain.Student, error) {
	id := strings.TrimSpace(rawID)
	subs, err := r.normalizeSubjects(subjects)
	if err != nil {
		return domain.Student{}, err
	}
	if err := r.Repo.UpdateSubjects(ctx, id, subs); err != nil {
		return domain.Student{}, err
	}
	return r.Repo.Get(ctx, id)
}

// ResetAll kosongkan master siswa (schema tetap) + semua sampel & model.
func (r *Registry) ResetAll(ctx context.Context) error {
	if err := r.Repo.Truncate(ctx); err != nil {
		return err
	}
	if err := r.Index.Rebuild(nil); err != nil {
		log.Printf("[WARN] [STUDENTS] reset index gagal: %v", err)
	}
	if r.Samples != nil {
		if err := r.Samples.PurgeAll(); err != nil {
			return err
		}
	}
	log.Printf("[STUDENTS] semua data siswa di-reset")
	return nil
}

func (r *Registry) Get(ctx context.Context, rawID string) (domain.Student, error) {
	return r.Repo.Get(ctx, strings.TrimSpace(rawID))
}

func (r *Registry) List(ctx context.Context) ([]domain.Student, error) {
	return r.Repo.List(ctx)
}

// Subjects daftar subject siswa (NotFound kalau siswa tidak ada).
func (r *Registry) Subjects(ctx context.Context, rawID string) ([]string, error) {
	st, err := r.Get(ctx, rawID)
	if err != nil {
		return nil, err
	}
	return st.Subjects, nil
}

// Search cari siswa by nama/enrollment, opsional filter subject.
// Query kosong → semua siswa (sesuai filter). Urutan hasil = urutan master.
func (r *Registry) Search(ctx context.Context, q, subject string) ([]domain.Student, error) {
	list, err := r.Repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var hit map[string]struct{}
	if strings.TrimSpace(q) != "" {
		// master bisa diubah di luar proses ini (CSV dibagi dengan tool lain)
		if !r.Index.InSync(list) {
			if err := r.Index.Rebuild(list); err != nil {
				return nil, fmt.Errorf("rebuild search index: %w", err)
			}
			log.Printf("[STUDENTS] index pencarian di-rebuild (%d siswa)", len(list))
		}
		ids, err := r.Index.Search(q, len(list))
		if err != nil {
			return nil, fmt.Errorf("search students: %w", err)
		}
		hit = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			hit[id] = struct{}{}
		}
	}

	subject = strings.TrimSpace(subject)
	if n, err := domain.NormalizeSubjectName(subject); err == nil {
		subject = n
	}
	out := make([]domain.Student, 0, len(list))
	for _, st := range list {
		if hit != nil {
			if _, ok := hit[st.EnrollmentID]; !ok {
				continue
			}
		}
		if subject != "" && !st.HasSubject(subject) {
			continue
		}
		out = append(out, st)
	}
	return out, nil
}
