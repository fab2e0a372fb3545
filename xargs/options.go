// Package xargs implements the xargs command-line batching engine:
// tokenizing standard input into arguments, grouping them into batches that
// respect ARG_MAX/-n/-s limits, and spawning (optionally parallel) child
// processes for each batch.
package xargs

// Options holds the parsed xargs command-line configuration.
type Options struct {
	// Command is the command template to run, with Command[0] as the
	// executable. If empty, defaults to {"echo"}.
	Command []string
	// Delimiter, if non-nil, selects a single-byte input delimiter (-d),
	// overriding the default whitespace tokenization.
	Delimiter *byte
	// NullDelimited selects NUL-delimited input tokenization (-0),
	// equivalent to Delimiter pointing at a zero byte but documented
	// separately since it's find -print0's natural counterpart.
	NullDelimited bool
	// MaxArgs caps the number of arguments per invocation (-n). Zero means
	// no explicit cap beyond MaxChars.
	MaxArgs int
	// MaxChars caps the total command-line length per invocation (-s).
	// Zero means use process.ArgMax().
	MaxChars int
	// MaxLines caps input lines treated as a single logical "argument set"
	// per invocation (-L), in addition to MaxArgs/MaxChars.
	MaxLines int
	// ReplaceString triggers -I mode: for each input line, Command is
	// invoked once with ReplaceString replaced by that line (mutually
	// exclusive with batching).
	ReplaceString string
	// Parallel is the number of child processes to run concurrently (-P).
	// Zero or one means sequential execution.
	Parallel int
	// NoRunIfEmpty (-r / GNU default behavior inverted by --no-run-if-empty)
	// suppresses running Command at all if there are no input arguments.
	NoRunIfEmpty bool
	// Interactive prompts for confirmation before each invocation (-p).
	Interactive bool
	// Verbose echoes each constructed command line to standard error before
	// running it (-t).
	Verbose bool
	// ExitOnLargeArgs aborts immediately if a single argument exceeds the
	// size limit, rather than running it in a batch of its own (-x).
	ExitOnLargeArgs bool
}
