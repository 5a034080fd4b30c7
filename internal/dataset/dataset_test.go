package dataset

import "testing"

func TestNewNormalizesRowWidth(t *testing.T) {
	ds := New([]string{"a", "b", "c"}, [][]string{
		{"1", "2", "3"},
		{"4"},
		{"5", "6", "7", "8"},
		{},
	})
	if ds.NumRows() != 4 || ds.NumCols() != 3 {
		t.Fatalf("dims = %dx%d, want 4x3", ds.NumRows(), ds.NumCols())
	}
	for i, row := range ds.Rows {
		if len(row) != 3 {
			t.Errorf("row %d has %d fields, want 3", i, len(row))
		}
	}
	if ds.Rows[1][1] != "" || ds.Rows[1][2] != "" {
		t.Errorf("short row not padded: %v", ds.Rows[1])
	}
	if ds.Rows[2][2] != "7" {
		t.Errorf("long row not truncated: %v", ds.Rows[2])
	}
}

func TestColumnIndex(t *testing.T) {
	ds := New([]string{"id", "amount", "id"}, nil)
	i, ok := ds.ColumnIndex("amount")
	if !ok || i != 1 {
		t.Fatalf("ColumnIndex(amount) = %d, %v, want 1, true", i, ok)
	}
	i, ok = ds.ColumnIndex("id")
	if !ok || i != 0 {
		t.Fatalf("ColumnIndex(id) = %d, %v, want first occurrence 0, true", i, ok)
	}
	if _, ok := ds.ColumnIndex("Amount"); ok {
		t.Fatal("ColumnIndex is case-sensitive, Amount should not match")
	}
}

func TestColumnValues(t *testing.T) {
	ds := New([]string{"a", "b"}, [][]string{
		{"1", "x"},
		{"2", "y"},
		{"3", "z"},
	})
	got := ds.Column(1)
	want := []string{"x", "y", "z"}
	if len(got) != len(want) {
		t.Fatalf("Column(1) len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Column(1)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDuplicateRows(t *testing.T) {
	ds := New([]string{"a", "b"}, [][]string{
		{"1", "x"},
		{"1", "x"},
		{"1", "x"},
		{"2", "y"},
	})
	if got := ds.DuplicateRows(); got != 2 {
		t.Errorf("DuplicateRows = %d, want 2", got)
	}
	empty := New([]string{"a"}, nil)
	if got := empty.DuplicateRows(); got != 0 {
		t.Errorf("DuplicateRows on empty dataset = %d, want 0", got)
	}
}

func TestKeyEquality(t *testing.T) {
	if Key([]string{"a", "b"}) == Key([]string{"a", "c"}) {
		t.Fatal("distinct tuples produced equal keys")
	}
	if Key([]string{"", " "}) == Key([]string{" ", ""}) {
		t.Fatal("empty and whitespace fields must not collapse")
	}
	if Key([]string{"a", "b"}) != Key([]string{"a", "b"}) {
		t.Fatal("equal tuples produced distinct keys")
	}
}

func TestApproxBytes(t *testing.T) {
	ds := New([]string{"a"}, [][]string{{"hello"}})
	if ds.ApproxBytes() <= 0 {
		t.Fatalf("ApproxBytes = %d, want positive", ds.ApproxBytes())
	}
	bigger := New([]string{"a"}, [][]string{{"hello"}, {"world"}})
	if bigger.ApproxBytes() <= ds.ApproxBytes() {
		t.Error("ApproxBytes should grow with rows")
	}
}
