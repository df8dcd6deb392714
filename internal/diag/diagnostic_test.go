package diag

import (
	"testing"

	"yo/internal/source"
)

func TestNewDiagnosticFormatsMessage(t *testing.T) {
	d := New(UnknownType, source.Span{File: 1, Start: 2, End: 5}, "unable to resolve nominal type %q", "Frob")
	if d.Code != UnknownType {
		t.Fatalf("Code = %v, want %v", d.Code, UnknownType)
	}
	if d.Severity != SeverityError {
		t.Fatalf("Severity = %v, want error", d.Severity)
	}
	want := `unable to resolve nominal type "Frob"`
	if d.Message != want {
		t.Fatalf("Message = %q, want %q", d.Message, want)
	}
}

func TestWithNoteAppends(t *testing.T) {
	d := New(AmbiguousCall, source.Span{}, "ambiguous call to 'f'")
	d.WithNote(source.Span{Start: 1}, "candidate: f(i32)").WithNote(source.Span{Start: 2}, "candidate: f(u32)")
	if len(d.Notes) != 2 {
		t.Fatalf("len(Notes) = %d, want 2", len(d.Notes))
	}
	if d.Notes[1].Msg != "candidate: f(u32)" {
		t.Fatalf("Notes[1].Msg = %q", d.Notes[1].Msg)
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag()
	if b.HasErrors() {
		t.Fatal("empty bag must not report errors")
	}
	b.Add(&Diagnostic{Severity: SeverityWarning, Code: UnknownIdentifier})
	if b.HasErrors() {
		t.Fatal("warning-only bag must not report errors")
	}
	b.Add(New(Redefinition, source.Span{}, "boom"))
	if !b.HasErrors() {
		t.Fatal("bag with an error Diagnostic must report errors")
	}
	if b.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", b.Len())
	}
}

func TestBagAddNilIsNoop(t *testing.T) {
	b := NewBag()
	b.Add(nil)
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}
}
