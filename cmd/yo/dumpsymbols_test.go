package main

import (
	"bytes"
	"strings"
	"testing"

	"yo/internal/cache"
)

func TestDumpSymbolsCmdRendersCachedSnapshot(t *testing.T) {
	dir := t.TempDir()
	store, err := cache.Open(dir)
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	snap := &cache.Snapshot{
		Module: "demo",
		Callables: []cache.CallableEntry{
			{Canonical: "sum", Mangled: "$Gsum$_i_i$i", RetTypeName: "i32"},
			{Canonical: "identity", RetTypeName: "T", Template: true},
		},
	}
	if err := store.Put("demo", snap); err != nil {
		t.Fatalf("Put: %v", err)
	}

	dumpSymbolsCacheDir = dir
	dumpSymbolsModule = "demo"

	var out bytes.Buffer
	dumpSymbolsCmd.SetOut(&out)
	if err := dumpSymbolsCmd.RunE(dumpSymbolsCmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "sum") || !strings.Contains(got, "$Gsum$_i_i$i") {
		t.Fatalf("expected the sum row in output, got %q", got)
	}
	if !strings.Contains(got, "template") {
		t.Fatalf("expected the template row to be labeled, got %q", got)
	}
}

func TestDumpSymbolsCmdReportsMissingSnapshot(t *testing.T) {
	dumpSymbolsCacheDir = t.TempDir()
	dumpSymbolsModule = "nope"
	if err := dumpSymbolsCmd.RunE(dumpSymbolsCmd, nil); err == nil {
		t.Fatal("expected an error for a missing snapshot")
	}
}
