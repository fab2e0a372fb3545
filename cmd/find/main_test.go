package main

import (
	"reflect"
	"testing"
)

func TestExtractDebugFlagNone(t *testing.T) {
	categories, rest := extractDebugFlag([]string{".", "-name", "*.go"})
	if categories != nil {
		t.Fatalf("expected no categories, got %v", categories)
	}
	if !reflect.DeepEqual(rest, []string{".", "-name", "*.go"}) {
		t.Fatalf("expected arguments unchanged, got %v", rest)
	}
}

func TestExtractDebugFlagSingle(t *testing.T) {
	categories, rest := extractDebugFlag([]string{".", "-D", "tree,search", "-name", "*.go"})
	if !reflect.DeepEqual(categories, []string{"tree", "search"}) {
		t.Fatalf("expected [tree search], got %v", categories)
	}
	if !reflect.DeepEqual(rest, []string{".", "-name", "*.go"}) {
		t.Fatalf("expected -D pair removed, got %v", rest)
	}
}

func TestExtractDebugFlagMultiple(t *testing.T) {
	categories, rest := extractDebugFlag([]string{"-D", "exec", ".", "-D", "stat", "-print"})
	if !reflect.DeepEqual(categories, []string{"exec", "stat"}) {
		t.Fatalf("expected [exec stat], got %v", categories)
	}
	if !reflect.DeepEqual(rest, []string{".", "-print"}) {
		t.Fatalf("expected both pairs removed, got %v", rest)
	}
}

func TestExtractDebugFlagTrailingWithoutValue(t *testing.T) {
	categories, rest := extractDebugFlag([]string{".", "-D"})
	if categories != nil {
		t.Fatalf("expected no categories for a dangling -D, got %v", categories)
	}
	if !reflect.DeepEqual(rest, []string{".", "-D"}) {
		t.Fatalf("expected dangling -D left in place, got %v", rest)
	}
}
