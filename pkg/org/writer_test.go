package org

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAppendToFileCreates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.org")
	if err := AppendToFile(path, "* TODO First\n"); err != nil {
		t.Fatalf("AppendToFile failed: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("could not read back: %v", err)
	}
	if string(got) != "* TODO First\n" {
		t.Errorf("Expected file to contain the entry, got %q", got)
	}
}

func TestAppendToFileInsertsMissingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.org")
	if err := os.WriteFile(path, []byte("* Existing heading"), 0644); err != nil {
		t.Fatalf("could not write fixture: %v", err)
	}

	if err := AppendToFile(path, "* TODO Added\n"); err != nil {
		t.Fatalf("AppendToFile failed: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "* Existing heading\n* TODO Added\n" {
		t.Errorf("Expected newline inserted before append, got %q", got)
	}
}

func TestAppendToFileNoDoubleNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.org")
	if err := os.WriteFile(path, []byte("* Existing heading\n"), 0644); err != nil {
		t.Fatalf("could not write fixture: %v", err)
	}

	if err := AppendToFile(path, "* TODO Added\n"); err != nil {
		t.Fatalf("AppendToFile failed: %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "* Existing heading\n* TODO Added\n" {
		t.Errorf("Expected no extra blank line, got %q", got)
	}
}
