package dataset

import (
	"strings"
	"testing"
)

func TestEncodeCSV(t *testing.T) {
	ds := New([]string{"id", "note"}, [][]string{
		{"1", "plain"},
		{"2", "has,comma"},
	})
	b, err := EncodeCSV(ds, 0)
	if err != nil {
		t.Fatalf("EncodeCSV: %v", err)
	}
	want := "id,note\n1,plain\n2,\"has,comma\"\n"
	if string(b) != want {
		t.Errorf("EncodeCSV = %q, want %q", b, want)
	}
}

func TestEncodeCSVTab(t *testing.T) {
	ds := New([]string{"a", "b"}, [][]string{{"1", "2"}})
	b, err := EncodeCSV(ds, '\t')
	if err != nil {
		t.Fatalf("EncodeCSV: %v", err)
	}
	if !strings.HasPrefix(string(b), "a\tb\n") {
		t.Errorf("tab delimiter not applied: %q", b)
	}
}
