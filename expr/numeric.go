package expr

import (
	"strconv"

	"github.com/pkg/errors"
)

// parseNumericComparison parses a find-style [+-]N numeric operand, used by
// -size, -links, -inum, -uid, -gid, -used, and the -*time/-*min primaries.
func parseNumericComparison(text string) (NumericComparison, error) {
	if text == "" {
		return NumericComparison{}, errors.New("empty numeric operand")
	}

	mode := NumericExact
	switch text[0] {
	case '+':
		mode = NumericGreater
		text = text[1:]
	case '-':
		mode = NumericLess
		text = text[1:]
	}

	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return NumericComparison{}, errors.Wrap(err, "invalid numeric operand")
	}
	if value < 0 {
		return NumericComparison{}, errors.New("numeric operand must be non-negative after sign prefix")
	}

	return NumericComparison{Mode: mode, Value: value}, nil
}

// Matches reports whether probed (a size, age, link count, etc.) satisfies
// the comparison.
func (c NumericComparison) Matches(probed int64) bool {
	switch c.Mode {
	case NumericGreater:
		return probed > c.Value
	case NumericLess:
		return probed < c.Value
	default:
		return probed == c.Value
	}
}
