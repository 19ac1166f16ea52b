package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteCreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "signals")
	fs := NewFileStore(dir)

	if err := fs.Write("signals_20250601_090000.txt", "signal body"); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "signals_20250601_090000.txt"))
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(raw) != "signal body" {
		t.Fatalf("unexpected file content %q", raw)
	}
}

func TestWriteRejectsPathTraversal(t *testing.T) {
	fs := NewFileStore(t.TempDir())

	if err := fs.Write("../escape.txt", "x"); err == nil {
		t.Fatal("expected error for path-escaping name")
	}
	if err := fs.Write("", "x"); err == nil {
		t.Fatal("expected error for empty name")
	}
}
