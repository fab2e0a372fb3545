package match

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// RegexDialect identifies one of the regular expression flavors selectable
// via -regextype. find's own wire semantics are all POSIX BRE/ERE family
// dialects; Go's standard regexp package only implements RE2, so each
// dialect is handled by translating its syntax into an RE2-compatible
// pattern before compiling. This translation layer is hand-written because
// no library in the broader dependency set provides a POSIX-to-RE2
// transliterator; regexp.Compile (RE2) is the actual matching engine once
// translation is done.
type RegexDialect int

const (
	// DialectPosixBasic is the default dialect: POSIX basic regular
	// expressions, where metacharacters like + ? | ( ) { } are literal
	// unless backslash-escaped.
	DialectPosixBasic RegexDialect = iota
	// DialectPosixExtended treats +, ?, |, (, ), {, } as metacharacters
	// without escaping, per POSIX ERE.
	DialectPosixExtended
	// DialectFindutilsDefault is documented as an alias for the ERE
	// superset GNU findutils uses by default; it shares the same
	// translation path as DialectPosixExtended.
	DialectFindutilsDefault
	// DialectEd mirrors the ed editor's BRE dialect.
	DialectEd
	// DialectSed mirrors the sed utility's BRE dialect.
	DialectSed
	// DialectGrep mirrors grep's BRE dialect (equivalent to DialectPosixBasic
	// for our purposes, since GNU extensions like \+ and \? are handled
	// identically).
	DialectGrep
	// DialectEmacs mirrors GNU Emacs's regular expression dialect, which is
	// close enough to extended syntax for our translation to treat the same
	// way, aside from Emacs's own word-boundary escapes which are passed
	// through to RE2 where compatible.
	DialectEmacs
)

// DialectFromName converts the string argument to -regextype into a
// RegexDialect. It returns false if the name is not recognized.
func DialectFromName(name string) (RegexDialect, bool) {
	switch name {
	case "posix-basic":
		return DialectPosixBasic, true
	case "posix-extended":
		return DialectPosixExtended, true
	case "findutils-default":
		return DialectFindutilsDefault, true
	case "ed":
		return DialectEd, true
	case "sed":
		return DialectSed, true
	case "grep":
		return DialectGrep, true
	case "emacs":
		return DialectEmacs, true
	default:
		return DialectPosixBasic, false
	}
}

// extended reports whether a dialect treats +, ?, |, (, ) as metacharacters
// without backslash escaping.
func (d RegexDialect) extended() bool {
	switch d {
	case DialectPosixExtended, DialectFindutilsDefault, DialectEmacs:
		return true
	default:
		return false
	}
}

// Regex compiles a pattern under the given dialect into a regular
// expression anchored to match only the entirety of its input (find's
// -regex/-iregex require a whole-path match, not a substring search).
func Regex(pattern string, dialect RegexDialect, foldCase bool) (*regexp.Regexp, error) {
	translated := translateToRE2(pattern, dialect)

	anchored := "^(?:" + translated + ")$"
	if foldCase {
		anchored = "(?i)" + anchored
	}

	compiled, err := regexp.Compile(anchored)
	if err != nil {
		return nil, errors.Wrap(err, "unable to compile regular expression")
	}
	return compiled, nil
}

// translateToRE2 rewrites a POSIX BRE/ERE-family pattern into RE2 syntax.
//
// For extended dialects the pattern is passed through unchanged, since +,
// ?, |, (, ) and POSIX bracket classes such as [[:alpha:]] already mean the
// same thing in RE2. For basic (obsolete) dialects, \(, \), \{, \}, \+, \?, \| are
// unescaped into RE2 metacharacters, while their bare forms are escaped to
// remain literal, since BRE treats the meanings of escaped and unescaped
// forms exactly backwards from RE2/ERE.
func translateToRE2(pattern string, dialect RegexDialect) string {
	if dialect.extended() {
		return pattern
	}

	var out strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == '\\' && i+1 < len(runes) {
			next := runes[i+1]
			switch next {
			case '(', ')', '{', '}', '+', '?', '|':
				out.WriteRune(next)
				i++
				continue
			default:
				out.WriteRune(c)
				out.WriteRune(next)
				i++
				continue
			}
		}
		switch c {
		case '(', ')', '{', '}', '+', '?', '|':
			out.WriteRune('\\')
			out.WriteRune(c)
		default:
			out.WriteRune(c)
		}
	}
	return out.String()
}
