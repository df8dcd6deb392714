package report

import (
	"bytes"
	"strings"
	"testing"

	"yo/internal/diag"
	"yo/internal/source"
)

func TestPrintRendersLocationSeverityAndMessage(t *testing.T) {
	bag := diag.NewBag()
	bag.Add(diag.New(diag.UnknownType, source.Span{}, "unknown type %q", "Foo"))

	var buf bytes.Buffer
	Print(&buf, bag, nil, Options{Color: false})

	out := buf.String()
	if !strings.Contains(out, "ERROR") {
		t.Fatalf("expected severity label in output, got %q", out)
	}
	if !strings.Contains(out, "[unknown-type]") {
		t.Fatalf("expected code in output, got %q", out)
	}
	if !strings.Contains(out, `unknown type "Foo"`) {
		t.Fatalf("expected message in output, got %q", out)
	}
}

func TestPrintRendersNotes(t *testing.T) {
	bag := diag.NewBag()
	d := diag.New(diag.AmbiguousCall, source.Span{}, "ambiguous call")
	d.WithNote(source.Span{}, "candidate %s", "foo")
	bag.Add(d)

	var buf bytes.Buffer
	Print(&buf, bag, nil, Options{Color: false})

	if !strings.Contains(buf.String(), "note: candidate foo") {
		t.Fatalf("expected a rendered note, got %q", buf.String())
	}
}

func TestTableAlignsColumnsByRuneWidth(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, []string{"name", "kind"}, [][]string{
		{"sum", "function"},
		{"Point::init", "static-method"},
	})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected a header row plus 2 data rows, got %d lines: %q", len(lines), lines)
	}
	// The name column is 11 runes wide ("Point::init") plus a 2-space gap.
	for i, cell := range []string{"kind", "function", "static-method"} {
		if got := strings.Index(lines[i], cell); got != 13 {
			t.Fatalf("line %d: expected %q to start at column 13, got %d: %q", i, cell, got, lines[i])
		}
	}
}
