package main

import "testing"

func TestSanity(t *testing.T) {
	// Smoke test so the CI pipeline has something to catch in this package.
	expected := 2
	actual := 1 + 1

	if expected != actual {
		t.Errorf("Math is broken. Expected %d, got %d", expected, actual)
	}
}

func TestVersionDefault(t *testing.T) {
	if version == "" {
		t.Fatal("version should not be empty")
	}
}
