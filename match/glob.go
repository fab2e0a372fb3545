// Package match implements the pattern matchers backing find's -name,
// -path, -iname, -ipath, -regex, and -lname family of primaries.
package match

import (
	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/cases"

	"github.com/pkg/errors"
)

var foldCaser = cases.Fold()

// ValidateGlob reports whether pattern is a well-formed shell glob pattern
// for use with Glob.
func ValidateGlob(pattern string) error {
	if _, err := doublestar.Match(pattern, "a"); err != nil {
		return errors.Wrap(err, "invalid pattern")
	}
	return nil
}

// Glob reports whether name (for -name/-iname, a base name; for -path/
// -ipath, a full path) matches the given shell glob pattern, applying
// doublestar.Match to the whole string. doublestar treats '/' as a path
// separator, so '*' and '?' never match '/' for any of these primaries;
// only a "**" path segment crosses it.
func Glob(pattern, name string, foldCase bool) (bool, error) {
	if foldCase {
		pattern = foldCaser.String(pattern)
		name = foldCaser.String(name)
	}
	matched, err := doublestar.Match(pattern, name)
	if err != nil {
		return false, errors.Wrap(err, "unable to evaluate pattern")
	}
	return matched, nil
}
