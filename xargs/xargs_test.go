package xargs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wayfarer-tools/findx/logging"
)

// seqLines assigns each token its own line number, matching how -0/-d
// tokenization reports lines and letting MaxArgs/MaxChars-only tests ignore
// -L grouping.
func seqLines(tokens []string) []int {
	lineOf := make([]int, len(tokens))
	for i := range lineOf {
		lineOf[i] = i
	}
	return lineOf
}

func TestTokenizeWhitespace(t *testing.T) {
	tokens, _, err := Tokenize(strings.NewReader("a b 'c d' \"e f\""), &Options{})
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	expected := []string{"a", "b", "c d", "e f"}
	if len(tokens) != len(expected) {
		t.Fatalf("unexpected token count: %v", tokens)
	}
	for i, tok := range tokens {
		if tok != expected[i] {
			t.Errorf("token %d: expected %q, got %q", i, expected[i], tok)
		}
	}
}

func TestTokenizeNull(t *testing.T) {
	tokens, _, err := Tokenize(strings.NewReader("a\x00b\x00"), &Options{NullDelimited: true})
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if len(tokens) != 2 || tokens[0] != "a" || tokens[1] != "b" {
		t.Errorf("unexpected tokens: %v", tokens)
	}
}

func TestTokenizeDelimiter(t *testing.T) {
	delim := byte(':')
	tokens, _, err := Tokenize(strings.NewReader("a:b:c"), &Options{Delimiter: &delim})
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if len(tokens) != 3 {
		t.Errorf("unexpected tokens: %v", tokens)
	}
}

func TestBatchesRespectsMaxArgs(t *testing.T) {
	tokens := []string{"a", "b", "c", "d", "e"}
	batches, err := Batches(tokens, seqLines(tokens), &Options{Command: []string{"echo"}, MaxArgs: 2, MaxChars: 1 << 20})
	if err != nil {
		t.Fatalf("Batches failed: %v", err)
	}
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	if len(batches[0].Args) != 2 || len(batches[2].Args) != 1 {
		t.Errorf("unexpected batch sizes: %v", batches)
	}
}

func TestBatchesRespectsCharBudget(t *testing.T) {
	tokens := []string{"aaaa", "bbbb", "cccc"}
	batches, err := Batches(tokens, seqLines(tokens), &Options{Command: []string{"echo"}, MaxChars: 10})
	if err != nil {
		t.Fatalf("Batches failed: %v", err)
	}
	for _, b := range batches {
		total := 0
		for _, a := range b.Args {
			total += len(a) + 1
		}
		if total > 10 {
			t.Errorf("batch exceeds char budget: %v (%d chars)", b.Args, total)
		}
	}
}

func TestBatchesOversizedTokenAlone(t *testing.T) {
	tokens := []string{"short", "averyveryverylongtoken"}
	batches, err := Batches(tokens, seqLines(tokens), &Options{Command: []string{"echo"}, MaxChars: 10})
	if err != nil {
		t.Fatalf("Batches failed: %v", err)
	}
	found := false
	for _, b := range batches {
		if len(b.Args) == 1 && b.Args[0] == "averyveryverylongtoken" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected oversized token in its own batch: %v", batches)
	}
}

func TestBatchesMaxLinesGroupsByInputLineNotTokenCount(t *testing.T) {
	tokens, lineOf, err := Tokenize(strings.NewReader("a b c\nd\ne f\n"), &Options{})
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	batches, err := Batches(tokens, lineOf, &Options{Command: []string{"echo"}, MaxLines: 1, MaxChars: 1 << 20})
	if err != nil {
		t.Fatalf("Batches failed: %v", err)
	}
	if len(batches) != 3 {
		t.Fatalf("expected one batch per input line (3), got %d: %v", len(batches), batches)
	}
	if len(batches[0].Args) != 3 {
		t.Errorf("expected the first batch to keep all 3 tokens of its line together, got %v", batches[0].Args)
	}
	if len(batches[2].Args) != 2 {
		t.Errorf("expected the third batch to keep both tokens of its line together, got %v", batches[2].Args)
	}
}

func TestBatchesExitOnLargeArgs(t *testing.T) {
	tokens := []string{"averyveryverylongtoken"}
	_, err := Batches(tokens, seqLines(tokens), &Options{Command: []string{"echo"}, MaxChars: 10, ExitOnLargeArgs: true})
	if err == nil {
		t.Error("expected an error for oversized argument with ExitOnLargeArgs set")
	}
}

func TestRunEchoSucceeds(t *testing.T) {
	code, err := Run(strings.NewReader("hello world"), &Options{Command: []string{"true"}}, logging.RootLogger)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if code != ExitSuccess {
		t.Errorf("expected success exit code, got %d", code)
	}
}

func TestRunNoInputSuppressed(t *testing.T) {
	code, err := Run(strings.NewReader(""), &Options{Command: []string{"true"}, NoRunIfEmpty: true}, logging.RootLogger)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if code != ExitSuccess {
		t.Errorf("expected success exit code, got %d", code)
	}
}

func TestRunOnePassesThroughLineOrientedOutput(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	code, hard, err := runOne([]string{"printf", "a\\nb\\n"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("runOne failed: %v", err)
	}
	if hard {
		t.Error("expected a non-hard failure classification")
	}
	if code != ExitSuccess {
		t.Errorf("expected success, got code %d", code)
	}
	if stdout.String() != "a\nb\n" {
		t.Errorf("expected output to pass through line-by-line unchanged, got %q", stdout.String())
	}
}

func TestRunOneFlushesTrailingPartialLine(t *testing.T) {
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	// printf without a trailing newline exercises LineProcessor.Flush.
	code, _, err := runOne([]string{"printf", "no newline"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("runOne failed: %v", err)
	}
	if code != ExitSuccess {
		t.Errorf("expected success, got code %d", code)
	}
	if stdout.String() != "no newline\n" {
		t.Errorf("expected the trailing partial line to be flushed, got %q", stdout.String())
	}
}

func TestRunCommandNotFound(t *testing.T) {
	code, err := Run(strings.NewReader("x"), &Options{Command: []string{"definitely-not-a-real-command-xyz"}}, logging.RootLogger)
	if err == nil {
		t.Fatal("expected an error for a missing command")
	}
	if code != ExitCommandCannotRun && code != ExitCommandNotFound {
		t.Errorf("unexpected exit code: %d", code)
	}
}

func TestReplaceInvocations(t *testing.T) {
	invocations, err := replaceInvocations(strings.NewReader("one\ntwo\n"), []string{"echo", "{}"}, "{}")
	if err != nil {
		t.Fatalf("replaceInvocations failed: %v", err)
	}
	if len(invocations) != 2 || invocations[0].args[1] != "one" || invocations[1].args[1] != "two" {
		t.Errorf("unexpected invocations: %v", invocations)
	}
}
