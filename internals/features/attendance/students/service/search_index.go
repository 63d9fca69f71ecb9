package service

import (
	"strings"
	"sync"

	"github.com/blevesearch/bleve"
	"github.com/blevesearch/bleve/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/mapping"
	"github.com/blevesearch/bleve/search/query"

	"absensiwajah_backend/internals/features/attendance/domain"
)

// SearchIndex index in-memory (bleve) untuk cari siswa by nama / enrollment.
// Sumber kebenaran tetap repository; index bisa di-rebuild kapan saja.
type SearchIndex struct {
	mu   sync.RWMutex
	idx  bleve.Index
	docs map[string]string // enrollment → nama yang sedang ter-index
}

func studentDoc(st domain.Student) map[string]interface{} {
	return map[string]interface{}{"name": st.Name, "enrollment": st.EnrollmentID}
}

func newIndexMapping() *mapping.IndexMappingImpl {
	im := bleve.NewIndexMapping()
	doc := bleve.NewDocumentMapping()

	name := bleve.NewTextFieldMapping()
	doc.AddFieldMappingsAt("name", name)

	enr := bleve.NewTextFieldMapping()
	enr.Analyzer = keyword.Name
	doc.AddFieldMappingsAt("enrollment", enr)

	im.DefaultMapping = doc
	return im
}

func NewSearchIndex() (*SearchIndex, error) {
	idx, err := bleve.NewMemOnly(newIndexMapping())
	if err != nil {
		return nil, err
	}
	return &SearchIndex{idx: idx, docs: map[string]string{}}, nil
}

func (s *SearchIndex) Put(st domain.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.idx.Index(st.EnrollmentID, studentDoc(st)); err != nil {
		return err
	}
	s.docs[st.EnrollmentID] = st.Name
	return nil
}

func (s *SearchIndex) Delete(enrollmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.idx.Delete(enrollmentID); err != nil {
		return err
	}
	delete(s.docs, enrollmentID)
	return nil
}

// InSync true kalau isi index sama persis dengan daftar siswa.
func (s *SearchIndex) InSync(students []domain.Student) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.docs) != len(students) {
		return false
	}
	for _, st := range students {
		if name, ok := s.docs[st.EnrollmentID]; !ok || name != st.Name {
			return false
		}
	}
	return true
}

// Rebuild ganti isi index dengan daftar siswa terbaru.
func (s *SearchIndex) Rebuild(students []domain.Student) error {
	fresh, err := bleve.NewMemOnly(newIndexMapping())
	if err != nil {
		return err
	}
	batch := fresh.NewBatch()
	docs := make(map[string]string, len(students))
	for _, st := range students {
		if err := batch.Index(st.EnrollmentID, studentDoc(st)); err != nil {
			return err
		}
		docs[st.EnrollmentID] = st.Name
	}
	if err := fresh.Batch(batch); err != nil {
		return err
	}

	s.mu.Lock()
	old := s.idx
	s.idx = fresh
	s.docs = docs
	s.mu.Unlock()
	return old.Close()
}

// Search return enrollment id yang cocok. Tiap kata query harus muncul
// (substring) di nama atau enrollment; nama juga toleran typo 1 huruf.
func (s *SearchIndex) Search(q string, limit int) ([]string, error) {
	words := strings.Fields(strings.ToLower(q))
	if len(words) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 1000
	}

	parts := make([]query.Query, 0, len(words))
	for _, w := range words {
		w = strings.NewReplacer("*", "", "?", "", `\`, "").Replace(w)
		if w == "" {
			continue
		}
		inName := bleve.NewWildcardQuery("*" + w + "*")
		inName.SetField("name")
		inEnr := bleve.NewWildcardQuery("*" + w + "*")
		inEnr.SetField("enrollment")
		alts := []query.Query{inName, inEnr}
		if len(w) >= 4 {
			fz := bleve.NewFuzzyQuery(w)
			fz.SetField("name")
			fz.SetFuzziness(1)
			alts = append(alts, fz)
		}
		parts = append(parts, bleve.NewDisjunctionQuery(alts...))
	}
	if len(parts) == 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(bleve.NewConjunctionQuery(parts...), limit, 0, false)

	s.mu.RLock()
	res, err := s.idx.Search(req)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(res.Hits))
	for _, h := range res.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
