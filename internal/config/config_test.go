package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Delimiter != "" {
		t.Errorf("Delimiter = %q, want empty (auto)", c.Delimiter)
	}
	if c.ProgressRows != 50000 {
		t.Errorf("ProgressRows = %d, want 50000", c.ProgressRows)
	}
	if c.MaxRows != 0 {
		t.Errorf("MaxRows = %d, want 0", c.MaxRows)
	}
	if len(c.GroupSets) != 0 {
		t.Errorf("GroupSets = %v, want empty", c.GroupSets)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TABSUM_DELIMITER", ";")
	t.Setenv("TABSUM_MAX_ROWS", "250")

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Delimiter != ";" {
		t.Errorf("Delimiter = %q, want %q", c.Delimiter, ";")
	}
	if c.MaxRows != 250 {
		t.Errorf("MaxRows = %d, want 250", c.MaxRows)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in := &Global{
		Delimiter:    "\t",
		GroupSets:    []string{"page_id", "page_id,ad_id"},
		ProgressRows: 1000,
		MaxRows:      50,
	}
	if err := Save(in, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file missing: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, in)
	}
}

func TestGroupColumnSets(t *testing.T) {
	c := &Global{GroupSets: []string{"page_id", " page_id , ad_id ", "", " , "}}
	got := c.GroupColumnSets()
	want := [][]string{{"page_id"}, {"page_id", "ad_id"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GroupColumnSets = %v, want %v", got, want)
	}
}
