package expr

import "testing"

func TestParseDefaultsToPrint(t *testing.T) {
	tree, config, err := Parse([]string{"."})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(config.StartPoints) != 1 || config.StartPoints[0] != "." {
		t.Errorf("unexpected start points: %v", config.StartPoints)
	}
	if !tree.HasAction {
		t.Error("expected implicit -print to count as an action")
	}
	if tree.Root.Kind != KindPrint || tree.Root.Left != nil {
		t.Error("expected a bare implicit -print as the root")
	}
}

func TestParseNamePrimary(t *testing.T) {
	tree, _, err := Parse([]string{".", "-name", "*.go"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// Root is And(Name, Print) since -print is implicit.
	if tree.Root.Kind != KindAnd {
		t.Fatalf("expected implicit AND with -print, got kind %v", tree.Root.Kind)
	}
	if tree.Root.Left.Kind != KindName || tree.Root.Left.Pattern != "*.go" {
		t.Errorf("unexpected left node: %+v", tree.Root.Left)
	}
}

func TestParseTypeAndXtypeAreDistinctKinds(t *testing.T) {
	tree, _, err := Parse([]string{".", "-type", "f", "-a", "-xtype", "l"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	and := tree.Root.Left
	if and.Kind != KindAnd {
		t.Fatalf("expected an explicit AND node, got kind %v", and.Kind)
	}
	if and.Left.Kind != KindType || and.Left.TypeLetters != "f" {
		t.Errorf("unexpected -type node: %+v", and.Left)
	}
	if and.Right.Kind != KindXtype || and.Right.TypeLetters != "l" {
		t.Errorf("unexpected -xtype node: %+v", and.Right)
	}
}

func TestParseOrAndPrecedence(t *testing.T) {
	// -name a -o -name b -a -name c -print  =>  a OR ((b AND c) AND -print):
	// the explicit -print joins the -a chain on the right of -o.
	tree, _, err := Parse([]string{".", "-name", "a", "-o", "-name", "b", "-a", "-name", "c", "-print"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	or := tree.Root
	if or.Kind != KindOr {
		t.Fatalf("expected OR at top of expression, got %v", or.Kind)
	}
	if or.Right.Kind != KindAnd || or.Right.Right.Kind != KindPrint {
		t.Fatalf("expected explicit -print ANDed onto OR's right operand, got %+v", or.Right)
	}
	if or.Left.Kind != KindName || or.Left.Pattern != "a" {
		t.Errorf("unexpected OR left operand: %+v", or.Left)
	}
	and := or.Right.Left
	if and.Kind != KindAnd {
		t.Fatalf("expected AND as OR's right operand, got %v", and.Kind)
	}
	if and.Left.Pattern != "b" || and.Right.Pattern != "c" {
		t.Errorf("unexpected AND operands: %+v / %+v", and.Left, and.Right)
	}
}

func TestParseNotOperators(t *testing.T) {
	for _, tok := range []string{"!", "-not"} {
		tree, _, err := Parse([]string{".", tok, "-name", "a", "-print"})
		if err != nil {
			t.Fatalf("Parse failed for %q: %v", tok, err)
		}
		not := tree.Root.Left
		if not.Kind != KindNot {
			t.Errorf("expected NOT for token %q, got %v", tok, not.Kind)
		}
	}
}

func TestParseParentheses(t *testing.T) {
	tree, _, err := Parse([]string{".", "(", "-name", "a", "-o", "-name", "b", ")", "-print"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if tree.Root.Left.Kind != KindOr {
		t.Errorf("expected parenthesized OR, got %v", tree.Root.Left.Kind)
	}
}

func TestParseCommaOperator(t *testing.T) {
	tree, _, err := Parse([]string{".", "-name", "a", ",", "-name", "b"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// No action is present, so the comma expression sits under the implicit
	// -print.
	if tree.Root.Kind != KindAnd || tree.Root.Left.Kind != KindComma {
		t.Fatalf("expected comma operator under the implicit -print, got %v", tree.Root.Kind)
	}
}

func TestParseSizeUnits(t *testing.T) {
	tree, _, err := Parse([]string{".", "-size", "+10k"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	size := tree.Root.Left
	if size.Kind != KindSize || size.SizeUnit != 'k' || size.Numeric.Mode != NumericGreater || size.Numeric.Value != 10 {
		t.Errorf("unexpected size node: %+v", size)
	}
}

func TestParseExecTerminators(t *testing.T) {
	tree, _, err := Parse([]string{".", "-exec", "echo", "{}", ";"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	exec := tree.Root.Left
	if exec.Kind != KindExec || exec.CommandBatches {
		t.Errorf("unexpected exec node: %+v", exec)
	}

	tree, _, err = Parse([]string{".", "-exec", "echo", "{}", "+"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	exec = tree.Root.Left
	if !exec.CommandBatches {
		t.Error("expected batch mode for '+' terminator")
	}
}

func TestParseOkRejectsPlusTerminator(t *testing.T) {
	if _, _, err := Parse([]string{".", "-ok", "echo", "{}", "+"}); err == nil {
		t.Error("expected error using '+' terminator with -ok")
	}
}

func TestParseUnknownPrimary(t *testing.T) {
	if _, _, err := Parse([]string{".", "-bogus"}); err == nil {
		t.Error("expected error for unknown primary")
	}
}

func TestParseGlobalSymlinkFlags(t *testing.T) {
	_, config, err := Parse([]string{"-L", "."})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if config.Symlinks != SymlinkAll {
		t.Errorf("expected SymlinkAll, got %v", config.Symlinks)
	}
}

func TestParseMultipleStartPoints(t *testing.T) {
	_, config, err := Parse([]string{"a", "b", "c", "-print"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(config.StartPoints) != 3 {
		t.Errorf("expected 3 start points, got %v", config.StartPoints)
	}
}

func TestCompileFormatEscapes(t *testing.T) {
	format, err := CompileFormat(`%p\n`)
	if err != nil {
		t.Fatalf("CompileFormat failed: %v", err)
	}
	if len(format.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(format.Segments))
	}
	if format.Segments[0].Kind != FormatDirective || format.Segments[0].Directive != 'p' {
		t.Errorf("unexpected first segment: %+v", format.Segments[0])
	}
	if format.Segments[1].Kind != FormatLiteral || format.Segments[1].Literal != "\n" {
		t.Errorf("unexpected second segment: %+v", format.Segments[1])
	}
}

func TestCompileFormatWidthModifier(t *testing.T) {
	format, err := CompileFormat(`%-10p|`)
	if err != nil {
		t.Fatalf("CompileFormat failed: %v", err)
	}
	if len(format.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(format.Segments))
	}
	if format.Segments[0].Kind != FormatDirective || format.Segments[0].Directive != 'p' || format.Segments[0].Width != "-10" {
		t.Errorf("unexpected directive segment: %+v", format.Segments[0])
	}
}

func TestCompileFormatOctalEscape(t *testing.T) {
	format, err := CompileFormat(`\101\102`)
	if err != nil {
		t.Fatalf("CompileFormat failed: %v", err)
	}
	if len(format.Segments) != 1 || format.Segments[0].Literal != "AB" {
		t.Errorf("expected octal escapes to decode to \"AB\", got %+v", format.Segments)
	}
}

func TestParseGlobalOptionPrimaries(t *testing.T) {
	_, config, err := Parse([]string{".", "-follow", "-print"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if config.Symlinks != SymlinkAll {
		t.Errorf("expected -follow to set SymlinkAll, got %v", config.Symlinks)
	}

	_, config, err = Parse([]string{".", "-ignore_readdir_race", "-print"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !config.IgnoreReaddirRace {
		t.Error("expected -ignore_readdir_race to set IgnoreReaddirRace")
	}

	_, config, err = Parse([]string{".", "-ignore_readdir_race", "-noignore_readdir_race", "-print"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if config.IgnoreReaddirRace {
		t.Error("expected -noignore_readdir_race to clear IgnoreReaddirRace")
	}
}

func TestCompileFormatTimeSubDirective(t *testing.T) {
	format, err := CompileFormat(`%TY`)
	if err != nil {
		t.Fatalf("CompileFormat failed: %v", err)
	}
	if len(format.Segments) != 1 || format.Segments[0].Directive != 'T' || format.Segments[0].SubDirective != 'Y' {
		t.Errorf("unexpected segments: %+v", format.Segments)
	}
}
