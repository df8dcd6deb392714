package main

import "testing"

func TestWantColorFallsBackToAutoWhenFlagMissing(t *testing.T) {
	cmd := checkCmd
	if wantColor(cmd) {
		t.Fatal("expected no color when stdout is not a terminal and --color is unregistered")
	}
}
