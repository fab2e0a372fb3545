package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirectoryEntries(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("unable to create fixture file: %v", err)
		}
	}

	entries, err := DirectoryEntries(dir)
	if err != nil {
		t.Fatalf("DirectoryEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 entries, got %d: %v", len(entries), entries)
	}
}

func TestDirectoryEntriesMissing(t *testing.T) {
	if _, err := DirectoryEntries(filepath.Join(t.TempDir(), "does-not-exist")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestProbeRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("unable to create fixture file: %v", err)
	}

	metadata, err := Probe(path)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if metadata.IsDir() {
		t.Error("regular file reported as directory")
	}
	if metadata.Size != 5 {
		t.Errorf("expected size 5, got %d", metadata.Size)
	}
}

func TestProbeDirectory(t *testing.T) {
	dir := t.TempDir()
	metadata, err := Probe(dir)
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	if !metadata.IsDir() {
		t.Error("directory not reported as directory")
	}
}

func TestAccessReadable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("unable to create fixture file: %v", err)
	}

	if !Access(path, AccessRead) {
		t.Error("expected file to be readable")
	}
}
