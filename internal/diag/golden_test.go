package diag

import (
	"testing"

	"fixit/internal/patch"
	"fixit/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     "NoBareExcept",
			Message:  "another",
			Path:     "./pkg/mod.py",
			Pos:      source.LineCol{Line: 2, Col: 0},
		},
		{
			Severity: SevWarning,
			Code:     "CompareSingletonPrimitivesByIs",
			Message:  "first line\nsecond",
			Path:     "pkg/mod.py",
			Pos:      source.LineCol{Line: 1, Col: 4},
			Patch:    &patch.Patch{OldText: "==", NewText: "is"},
		},
	}

	expected := "pkg/mod.py:1:5: CompareSingletonPrimitivesByIs first line second [fixable]\n" +
		"pkg/mod.py:2:1: NoBareExcept another"

	if got := FormatShortDiagnostics(diags); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagFilter(t *testing.T) {
	b := NewBag(0)
	sp := source.Span{Start: 1, End: 2}
	b.Add(New(SevWarning, "A", sp, "x"))
	b.Add(New(SevWarning, "B", sp, "y"))
	b.Add(New(SevWarning, "A", sp, "z"))
	b.Filter(func(d *Diagnostic) bool { return d.Code != "A" })
	if b.Len() != 1 || b.Items()[0].Code != "B" {
		t.Fatalf("Filter left %+v", b.Items())
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(1)
	if !b.Add(Diagnostic{Code: "A"}) || b.Add(Diagnostic{Code: "B"}) {
		t.Fatal("limit of 1 not honoured")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	d := New(SevWarning, "A", source.Span{Start: 3, End: 4}, "m")
	r.Report(d)
	r.Report(d)
	r.Report(d.WithNote(source.Span{}, "note"))
	r.Report(New(SevWarning, "B", source.Span{Start: 3, End: 4}, "m"))
	if bag.Len() != 2 || r.Dropped != 2 {
		t.Fatalf("expected 2 diagnostics and 2 dropped, got %d and %d", bag.Len(), r.Dropped)
	}
}

func TestSeverityLabels(t *testing.T) {
	if SevWarning.Label() != "warning" || SevError.String() != "ERROR" || Severity(9).String() != "UNKNOWN" {
		t.Fatal("unexpected severity names")
	}
}

func TestCodeValid(t *testing.T) {
	for _, c := range []Code{"IG00", "no-bare_except", "X1"} {
		if !c.Valid() {
			t.Errorf("%q should be valid", c)
		}
	}
	for _, c := range []Code{"", "a b", "x,y", "é"} {
		if c.Valid() {
			t.Errorf("%q should be invalid", c)
		}
	}
}
