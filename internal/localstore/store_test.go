package localstore

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func testStore() *Store {
	return New(
		[]string{"Id", "Full Name", "Created By", "Owner", "Primary Owner", "Tags"},
		[][]string{
			{"l-1", "Jane Doe", "Recruiter One", "Alice", "Alice", "Engineering, Go"},
			{"l-2", "John Roe", "Recruiter Two", "Bob", "Bob", "Sales"},
			{"l-3", "Jane Poe", "Recruiter One", "Alice", "", ""},
		},
	)
}

func TestFilterExactMatchCaseInsensitive(t *testing.T) {
	rows := testStore().Filter(Query{FullName: "jane doe"})
	if len(rows) != 1 || rows[0].Get("Id") != "l-1" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestFilterTagsContains(t *testing.T) {
	rows := testStore().Filter(Query{Tag: "go"})
	if len(rows) != 1 || rows[0].Get("Id") != "l-1" {
		t.Fatalf("tags containment should match row l-1, got %+v", rows)
	}
}

func TestFilterConjunction(t *testing.T) {
	rows := testStore().Filter(Query{CreatedBy: "Recruiter One", PrimaryOwner: "Alice"})
	if len(rows) != 1 || rows[0].Get("Id") != "l-1" {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func TestFilterMissingColumnPasses(t *testing.T) {
	s := New([]string{"Id", "Full Name"}, [][]string{{"l-1", "Jane Doe"}})
	rows := s.Filter(Query{FullName: "Jane Doe", Owner: "does-not-exist"})
	if len(rows) != 1 {
		t.Fatalf("a predicate without a backing column must pass, got %+v", rows)
	}
}

func TestFilterEmptyQueryReturnsEverything(t *testing.T) {
	if rows := testStore().Filter(Query{}); len(rows) != 3 {
		t.Fatalf("expected all rows, got %d", len(rows))
	}
}

func TestLookupID(t *testing.T) {
	s := testStore()
	id, ok := s.LookupID("  JOHN ROE ")
	if !ok || id != "l-2" {
		t.Fatalf("LookupID: got (%q, %v)", id, ok)
	}
	if _, ok := s.LookupID("Nobody"); ok {
		t.Error("expected lookup miss")
	}
	if _, ok := s.LookupID(""); ok {
		t.Error("blank name must never resolve")
	}
}

func TestRowGetCanonicalizesColumn(t *testing.T) {
	s := New([]string{" Full Name "}, [][]string{{"Jane Doe"}})
	rows := s.Filter(Query{})
	if got := rows[0].Get("full name"); got != "Jane Doe" {
		t.Errorf("Get = %q", got)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contacts.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]string{"Id", "Full Name", "Tags"})
	_ = f.SetSheetRow(sheet, "A2", &[]string{"l-1", "Jane Doe", "Engineering"})
	_ = f.SetSheetRow(sheet, "A3", &[]string{"l-2", "John Roe", ""})
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	_ = f.Close()

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	id, ok := s.LookupID("jane doe")
	if !ok || id != "l-1" {
		t.Fatalf("LookupID after load: (%q, %v)", id, ok)
	}
}

func TestLoadMissingFileYieldsEmptyStore(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.xlsx"))
	if err == nil {
		t.Error("expected an error for a missing snapshot")
	}
	if s == nil || s.Len() != 0 {
		t.Fatalf("missing file must still yield a usable empty store: %+v", s)
	}
	if rows := s.Filter(Query{FullName: "anyone"}); len(rows) != 0 {
		t.Errorf("empty store should match nothing, got %+v", rows)
	}
}
