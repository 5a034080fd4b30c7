package stats

import (
	"reflect"
	"testing"

	"github.com/KestrelData/tabsum-cli/internal/dataset"
)

func adsFixture() *dataset.Dataset {
	// Six columns so Analyze takes the concurrent path.
	return dataset.New(
		[]string{"page_id", "ad_id", "impressions", "clicks", "spend", "status"},
		[][]string{
			{"p1", "a1", "100", "3", "1.50", "active"},
			{"p1", "a2", "250", "7", "2.25", "active"},
			{"p2", "a3", "50", "", "0.75", "paused"},
			{"p2", "a3", "50", "", "0.75", "paused"},
			{"p3", "a4", "bad", "1", "", "active"},
		},
	)
}

func TestAnalyzeReportShape(t *testing.T) {
	ds := adsFixture()
	rep := Analyze(ds, "ads")
	if rep.Title != "ads" {
		t.Errorf("Title = %q, want ads", rep.Title)
	}
	if rep.Rows != 5 || rep.Cols != 6 {
		t.Errorf("dims = %dx%d, want 5x6", rep.Rows, rep.Cols)
	}
	if rep.Duplicates != 1 {
		t.Errorf("Duplicates = %d, want 1", rep.Duplicates)
	}
	if len(rep.Columns) != 6 {
		t.Fatalf("columns = %d, want 6", len(rep.Columns))
	}
	for i, name := range ds.Columns {
		if rep.Columns[i].Name != name {
			t.Errorf("column %d = %q, want %q (dataset order)", i, rep.Columns[i].Name, name)
		}
	}
	for _, cs := range rep.Columns {
		checkCountInvariant(t, cs)
	}
}

func TestAnalyzeMatchesSequentialProfile(t *testing.T) {
	ds := adsFixture()
	rep := Analyze(ds, "ads")
	for i, name := range ds.Columns {
		want := ProfileColumn(name, ds.Column(i))
		if !reflect.DeepEqual(rep.Columns[i], want) {
			t.Errorf("column %s: concurrent profile diverges from sequential\n got %+v\nwant %+v", name, rep.Columns[i], want)
		}
	}
}

func TestAnalyzeClassification(t *testing.T) {
	rep := Analyze(adsFixture(), "ads")
	num := rep.NumericColumns()
	want := []string{"impressions", "clicks", "spend"}
	if !reflect.DeepEqual(num, want) {
		t.Errorf("NumericColumns = %v, want %v", num, want)
	}
	cat := rep.CategoricalColumns()
	wantCat := []string{"page_id", "ad_id", "status"}
	if !reflect.DeepEqual(cat, wantCat) {
		t.Errorf("CategoricalColumns = %v, want %v", cat, wantCat)
	}
	imp, ok := rep.Column("impressions")
	if !ok {
		t.Fatal("impressions column missing from report")
	}
	// "bad" stays out of the subset but not out of the counts.
	if imp.NumericCount != 4 || imp.NonEmpty != 5 {
		t.Errorf("impressions subset/non-empty = %d/%d, want 4/5", imp.NumericCount, imp.NonEmpty)
	}
	if imp.Sum != 450 {
		t.Errorf("impressions Sum = %v, want 450", imp.Sum)
	}
}

func TestAnalyzeZeroRows(t *testing.T) {
	ds := dataset.New([]string{"a", "b", "c", "d", "e", "f"}, nil)
	rep := Analyze(ds, "empty")
	if rep.Rows != 0 || rep.Cols != 6 {
		t.Fatalf("dims = %dx%d, want 0x6", rep.Rows, rep.Cols)
	}
	for _, cs := range rep.Columns {
		if cs.Numeric || cs.UniqueCount != 0 || len(cs.TopValues) != 0 {
			t.Errorf("column %s on empty dataset = %+v, want empty categorical", cs.Name, cs)
		}
	}
}

func TestReportColumnLookup(t *testing.T) {
	rep := Analyze(adsFixture(), "ads")
	if _, ok := rep.Column("nope"); ok {
		t.Fatal("lookup of missing column succeeded")
	}
	cs, ok := rep.Column("status")
	if !ok || cs.Name != "status" {
		t.Fatalf("Column(status) = %+v, %v", cs, ok)
	}
}
