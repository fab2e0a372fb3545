package xargs

import (
	"github.com/wayfarer-tools/findx/process"
)

// defaultCommandOverhead is a rough per-invocation reservation (argv array
// pointers, NUL terminators, the executable path itself) subtracted from the
// character budget before packing arguments, mirroring GNU xargs's own
// conservative fudge factor.
const defaultCommandOverhead = 2048

// Batch is a single grouping of input arguments to be passed to one
// invocation of the target command.
type Batch struct {
	// Args is the batch's input arguments, to be appended after the fixed
	// command template (and any -I replace-string expansions, handled
	// separately).
	Args []string
}

// charBudget computes the maximum number of argument characters allowed per
// invocation, accounting for options.MaxChars (-s) if set, or falling back to
// process.ArgMax() minus the fixed command template and a safety overhead.
func charBudget(options *Options) int {
	if options.MaxChars > 0 {
		return options.MaxChars
	}
	budget := int(process.ArgMax()) - defaultCommandOverhead
	for _, arg := range options.Command {
		budget -= len(arg) + 1
	}
	if budget < 1 {
		budget = 1
	}
	return budget
}

// Batches groups tokens into Batch values respecting options.MaxArgs (-n),
// options.MaxLines (-L), and the character budget derived from options.
// MaxChars (-s) or process.ArgMax(). lineOf records, per token, which input
// line it came from (as produced by Tokenize), so that -L counts whole
// input lines rather than raw tokens. A single token that alone exceeds the
// character budget is placed into its own batch unless options.
// ExitOnLargeArgs is set, in which case an error is returned.
func Batches(tokens []string, lineOf []int, options *Options) ([]Batch, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	budget := charBudget(options)

	var batches []Batch
	var current []string
	var currentChars int
	currentLines := 0
	lastLine := -1

	flush := func() {
		if len(current) > 0 {
			batches = append(batches, Batch{Args: current})
			current = nil
			currentChars = 0
			currentLines = 0
			lastLine = -1
		}
	}

	for i, token := range tokens {
		tokenLen := len(token) + 1
		line := lineOf[i]
		startsNewLine := line != lastLine

		if tokenLen > budget {
			if options.ExitOnLargeArgs {
				return nil, errArgumentTooLong(token)
			}
			flush()
			batches = append(batches, Batch{Args: []string{token}})
			lastLine = -1
			continue
		}

		exceedsArgs := options.MaxArgs > 0 && len(current) >= options.MaxArgs
		exceedsLines := options.MaxLines > 0 && startsNewLine && currentLines >= options.MaxLines
		if len(current) > 0 && (currentChars+tokenLen > budget || exceedsArgs || exceedsLines) {
			flush()
			startsNewLine = true
		}

		current = append(current, token)
		currentChars += tokenLen
		if startsNewLine {
			currentLines++
		}
		lastLine = line
	}
	flush()

	return batches, nil
}

func errArgumentTooLong(token string) error {
	return &argumentTooLongError{token: token}
}

// argumentTooLongError indicates that a single argument exceeded the
// character budget while options.ExitOnLargeArgs was set.
type argumentTooLongError struct {
	token string
}

func (e *argumentTooLongError) Error() string {
	return "argument exceeds maximum command line length: " + e.token
}
