package walk

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wayfarer-tools/findx/expr"
	"github.com/wayfarer-tools/findx/logging"
)

func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0755); err != nil {
		t.Fatalf("unable to build fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "a.txt"), nil, 0644); err != nil {
		t.Fatalf("unable to build fixture: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "sub", "b.txt"), nil, 0644); err != nil {
		t.Fatalf("unable to build fixture: %v", err)
	}
	return root
}

func TestWalkVisitsAllEntries(t *testing.T) {
	root := buildTree(t)
	config := &Config{MaxDepth: -1, MinDepth: -1, Symlinks: expr.SymlinkNever}

	var visited []string
	err := Walk(context.Background(), []string{root}, config, logging.RootLogger, func(entry *VisitedEntry) (bool, bool, error) {
		visited = append(visited, entry.RelativePath)
		return true, false, nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	if len(visited) != 4 {
		t.Errorf("expected 4 visited entries (root + 3), got %d: %v", len(visited), visited)
	}
}

func TestWalkMaxDepth(t *testing.T) {
	root := buildTree(t)
	config := &Config{MaxDepth: 1, MinDepth: -1, Symlinks: expr.SymlinkNever}

	var visited []string
	err := Walk(context.Background(), []string{root}, config, logging.RootLogger, func(entry *VisitedEntry) (bool, bool, error) {
		visited = append(visited, entry.RelativePath)
		return true, false, nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}

	for _, path := range visited {
		if path == "sub/b.txt" {
			t.Errorf("expected maxdepth=1 to exclude sub/b.txt, visited=%v", visited)
		}
	}
}

func TestWalkQuitStopsTraversal(t *testing.T) {
	root := buildTree(t)
	config := &Config{MaxDepth: -1, MinDepth: -1, Symlinks: expr.SymlinkNever}

	var visited int
	err := Walk(context.Background(), []string{root}, config, logging.RootLogger, func(entry *VisitedEntry) (bool, bool, error) {
		visited++
		return true, true, nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if visited != 1 {
		t.Errorf("expected traversal to stop after first visit, got %d visits", visited)
	}
}

func TestWalkFollowDetectsSymlinkLoop(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "sub"), 0755); err != nil {
		t.Fatalf("unable to build fixture: %v", err)
	}
	if err := os.Symlink(root, filepath.Join(root, "sub", "back")); err != nil {
		t.Skipf("symlinks unsupported on this platform: %v", err)
	}

	config := &Config{MaxDepth: -1, MinDepth: -1, Symlinks: expr.SymlinkAll}

	visits := 0
	done := make(chan error, 1)
	go func() {
		done <- Walk(context.Background(), []string{root}, config, logging.RootLogger, func(entry *VisitedEntry) (bool, bool, error) {
			visits++
			return true, false, nil
		})
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Walk failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Walk did not terminate, symlink loop not detected (visits so far: %d)", visits)
	}
}

func TestWalkPruneStopsDescent(t *testing.T) {
	root := buildTree(t)
	config := &Config{MaxDepth: -1, MinDepth: -1, Symlinks: expr.SymlinkNever}

	var visited []string
	err := Walk(context.Background(), []string{root}, config, logging.RootLogger, func(entry *VisitedEntry) (bool, bool, error) {
		visited = append(visited, entry.RelativePath)
		if entry.RelativePath == "sub" {
			return false, false, nil
		}
		return true, false, nil
	})
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	for _, path := range visited {
		if path == "sub/b.txt" {
			t.Errorf("expected -prune to prevent descent into sub, visited=%v", visited)
		}
	}
}
