// Package csvtable menyimpan satu tabel sebagai file CSV utuh:
// load sekali → mutasi di memori → Flush (tulis ulang penuh, atomic via temp+rename).
package csvtable

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyFile = errors.New("csv file is empty")
	ErrMalformed = errors.New("malformed csv")
)

const utf8BOM = "\ufeff"

type Row map[string]string

type Table struct {
	Path    string
	Columns []string
	Rows    []Row

	// Existed false kalau file belum ada saat Open.
	Existed bool
	// Migrated true kalau kolom schema ditambahkan saat Open.
	Migrated bool
}

/* =========================================================
   OPEN (load + migrasi schema)
========================================================= */

// Open membaca tabel di path. File yang belum ada (atau 0 byte) dianggap tabel
// kosong dengan kolom = schema. Kolom schema yang hilang ditambahkan di belakang
// dengan nilai kosong; kolom ekstra di file tetap dipertahankan.
func Open(path string, schema []string) (*Table, error) {
	t := &Table{Path: path}

	header, records, err := Read(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		t.Columns = append([]string(nil), schema...)
		return t, nil
	case errors.Is(err, ErrEmptyFile):
		t.Existed = true
		t.Columns = append([]string(nil), schema...)
		t.Migrated = true
		return t, nil
	case err != nil:
		return nil, err
	}

	t.Existed = true
	t.Columns = header
	for _, col := range schema {
		if !t.HasColumn(col) {
			t.Columns = append(t.Columns, col)
			t.Migrated = true
		}
	}

	t.Rows = make([]Row, 0, len(records))
	for _, rec := range records {
		row := make(Row, len(t.Columns))
		for i, col := range t.Columns {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Append menambah baris; kolom yang tidak disebut diisi kosong.
func (t *Table) Append(row Row) {
	r := make(Row, len(t.Columns))
	for _, c := range t.Columns {
		r[c] = row[c]
	}
	t.Rows = append(t.Rows, r)
}

// Filter menyisakan baris yang keep(row) == true, return jumlah yang dibuang.
func (t *Table) Filter(keep func(Row) bool) int {
	out := t.Rows[:0]
	removed := 0
	for _, r := range t.Rows {
		if keep(r) {
			out = append(out, r)
		} else {
			removed++
		}
	}
	t.Rows = out
	return removed
}

// Truncate hapus semua baris, schema tetap.
func (t *Table) Truncate() { t.Rows = nil }

// Flush tulis ulang seluruh tabel secara atomic.
func (t *Table) Flush() error {
	records := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			rec[i] = r[c]
		}
		records = append(records, rec)
	}
	if err := WriteAtomic(t.Path, t.Columns, records); err != nil {
		return err
	}
	t.Existed = true
	t.Migrated = false
	return nil
}

/* =========================================================
   READ / WRITE mentah
========================================================= */

// Read parse file CSV dengan baris pertama sebagai header.
// Baris lebih pendek dari header dipad kosong; baris lebih panjang = ErrMalformed.
func Read(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%s: %w", path, ErrEmptyFile)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w: %v", path, ErrMalformed, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w: %v", path, ErrMalformed, err)
		}
		if len(rec) > len(header) {
			line, _ := r.FieldPos(0)
			return nil, nil, fmt.Errorf("%s: %w: line %d has %d fields, header has %d",
				path, ErrMalformed, line, len(rec), len(header))
		}
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		records = append(records, rec)
	}
	return header, records, nil
}

// WriteAtomic tulis ke temp file di folder yang sama, fsync, lalu rename.
// Pembaca tidak pernah melihat file setengah jadi.
func WriteAtomic(path string, header []string, records [][]string) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.Write(header); err != nil {
		return err
	}
	if err = w.WriteAll(records); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
