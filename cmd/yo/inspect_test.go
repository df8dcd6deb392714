package main

import (
	"testing"

	"yo/internal/ast"
)

func TestParseTypeDescBareNominal(t *testing.T) {
	desc, err := parseTypeDesc("Point")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.Kind != ast.TypeDescNominal || desc.Name != "Point" {
		t.Fatalf("unexpected desc: %+v", desc)
	}
}

func TestParseTypeDescNestedPointer(t *testing.T) {
	desc, err := parseTypeDesc("**i32")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.Kind != ast.TypeDescPointer || desc.Inner.Kind != ast.TypeDescPointer || desc.Inner.Inner.Kind != ast.TypeDescNominal {
		t.Fatalf("unexpected desc shape: %+v", desc)
	}
	if desc.Inner.Inner.Name != "i32" {
		t.Fatalf("expected i32 at the core, got %q", desc.Inner.Inner.Name)
	}
}

func TestParseTypeDescMixedSigils(t *testing.T) {
	desc, err := parseTypeDesc("&*Point")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if desc.Kind != ast.TypeDescReference || desc.Inner.Kind != ast.TypeDescPointer {
		t.Fatalf("unexpected desc shape: %+v", desc)
	}
}

func TestParseTypeDescRejectsBareSigils(t *testing.T) {
	if _, err := parseTypeDesc("**"); err == nil {
		t.Fatal("expected an error for sigils with no trailing name")
	}
}
