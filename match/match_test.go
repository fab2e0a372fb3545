package match

import "testing"

func TestGlobBasic(t *testing.T) {
	matched, err := Glob("*.go", "main.go", false)
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if !matched {
		t.Error("expected match")
	}
}

func TestGlobCaseFold(t *testing.T) {
	matched, err := Glob("*.GO", "main.go", true)
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if !matched {
		t.Error("expected case-folded match")
	}
}

func TestGlobNoMatch(t *testing.T) {
	matched, err := Glob("*.go", "main.py", false)
	if err != nil {
		t.Fatalf("Glob failed: %v", err)
	}
	if matched {
		t.Error("expected no match")
	}
}

func TestValidateGlobInvalid(t *testing.T) {
	if err := ValidateGlob("[unterminated"); err == nil {
		t.Error("expected error for invalid pattern")
	}
}

func TestDialectFromName(t *testing.T) {
	testCases := []struct {
		name  string
		valid bool
	}{
		{"posix-basic", true},
		{"posix-extended", true},
		{"findutils-default", true},
		{"bogus", false},
	}
	for _, tc := range testCases {
		if _, ok := DialectFromName(tc.name); ok != tc.valid {
			t.Errorf("DialectFromName(%q): expected valid=%v, got %v", tc.name, tc.valid, ok)
		}
	}
}

func TestRegexBasicEscaping(t *testing.T) {
	re, err := Regex(`a\(b\)c`, DialectPosixBasic, false)
	if err != nil {
		t.Fatalf("Regex failed: %v", err)
	}
	if !re.MatchString("abc") {
		t.Error("expected BRE \\( \\) to act as grouping metacharacters")
	}
}

func TestRegexBasicLiteralParens(t *testing.T) {
	re, err := Regex(`a(b)c`, DialectPosixBasic, false)
	if err != nil {
		t.Fatalf("Regex failed: %v", err)
	}
	if !re.MatchString("a(b)c") {
		t.Error("expected bare parens to be literal in BRE")
	}
}

func TestRegexExtended(t *testing.T) {
	re, err := Regex(`a(b|c)+`, DialectPosixExtended, false)
	if err != nil {
		t.Fatalf("Regex failed: %v", err)
	}
	if !re.MatchString("abcb") {
		t.Error("expected ERE alternation/grouping to match")
	}
}

func TestRegexAnchoredWholeMatch(t *testing.T) {
	re, err := Regex("abc", DialectPosixBasic, false)
	if err != nil {
		t.Fatalf("Regex failed: %v", err)
	}
	if re.MatchString("xabcx") {
		t.Error("expected whole-string anchoring, not substring match")
	}
}
