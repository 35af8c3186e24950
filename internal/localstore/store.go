// Package localstore holds the fallback contact table: a spreadsheet
// snapshot loaded once at startup and queried read-only whenever the
// upstream API yields nothing usable.
package localstore

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one snapshot row, keyed by canonicalized column name.
type Row map[string]string

// Get returns the value of the named column, matching the column name
// case-insensitively and ignoring surrounding whitespace.
func (r Row) Get(column string) string { return r[canon(column)] }

// Query mirrors the contact filter predicates. Full name, creator and
// owner columns match exactly; Tags matches on containment. All
// comparisons are case-insensitive.
type Query struct {
	FullName     string
	Tag          string
	CreatedBy    string
	Owner        string
	PrimaryOwner string
}

// Store is the immutable in-memory snapshot. All methods are safe for
// concurrent use because nothing mutates after Load.
type Store struct {
	columns []string
	rows    []Row
}

func canon(column string) string {
	return strings.ToLower(strings.TrimSpace(column))
}

// Load reads the first sheet of an xlsx file. The first row is the
// header; remaining rows become the table. A missing or unreadable
// file yields an empty store alongside the error, so the process can
// still serve upstream-backed traffic.
func Load(path string) (*Store, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return &Store{}, fmt.Errorf("open contact snapshot %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Store{}, fmt.Errorf("contact snapshot %s has no sheets", path)
	}
	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return &Store{}, fmt.Errorf("read contact snapshot %s: %w", path, err)
	}
	if len(raw) == 0 {
		return &Store{}, nil
	}

	header := raw[0]
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	rows := make([][]string, 0, len(raw)-1)
	for _, r := range raw[1:] {
		rows = append(rows, r)
	}
	return New(header, rows), nil
}

// New builds a store from an in-memory table. Cells beyond the header
// width are dropped; short rows are padded with empty values.
func New(columns []string, cells [][]string) *Store {
	s := &Store{columns: columns}
	for _, cell := range cells {
		row := make(Row, len(columns))
		for i, col := range columns {
			v := ""
			if i < len(cell) {
				v = cell[i]
			}
			row[canon(col)] = v
		}
		s.rows = append(s.rows, row)
	}
	return s
}

// Len reports the number of loaded rows.
func (s *Store) Len() int { return len(s.rows) }

func (s *Store) hasColumn(column string) bool {
	for _, c := range s.columns {
		if canon(c) == canon(column) {
			return true
		}
	}
	return false
}

// matches applies one predicate against one column. A predicate whose
// column is absent from the snapshot passes, matching the upstream
// behavior of ignoring filters it cannot evaluate.
func (s *Store) matches(row Row, column, want string, contains bool) bool {
	if want == "" || !s.hasColumn(column) {
		return true
	}
	have := strings.ToLower(row.Get(column))
	want = strings.ToLower(want)
	if contains {
		return strings.Contains(have, want)
	}
	return have == want
}

// Filter returns every row satisfying all supplied predicates.
func (s *Store) Filter(q Query) []Row {
	var out []Row
	for _, row := range s.rows {
		if !s.matches(row, "Full Name", q.FullName, false) {
			continue
		}
		if !s.matches(row, "Created By", q.CreatedBy, false) {
			continue
		}
		if !s.matches(row, "Owner", q.Owner, false) {
			continue
		}
		if !s.matches(row, "Primary Owner", q.PrimaryOwner, false) {
			continue
		}
		if !s.matches(row, "Tags", q.Tag, true) {
			continue
		}
		out = append(out, row)
	}
	return out
}

// LookupID finds a contact id by exact full name.
func (s *Store) LookupID(fullName string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(fullName))
	if want == "" {
		return "", false
	}
	for _, row := range s.rows {
		if strings.ToLower(row.Get("Full Name")) == want {
			if id := row.Get("Id"); id != "" {
				return id, true
			}
		}
	}
	return "", false
}
