package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wayfarer-tools/findx/cmd"
	"github.com/wayfarer-tools/findx/logging"
	"github.com/wayfarer-tools/findx/version"
	"github.com/wayfarer-tools/findx/xargs"
)

func xargsMain(command *cobra.Command, arguments []string) error {
	if xargsConfiguration.version {
		fmt.Println(version.String())
		return nil
	}

	logging.EnableDebugCategories(xargsConfiguration.debugCategories...)

	options, err := buildOptions(arguments, &xargsConfiguration)
	if err != nil {
		return err
	}

	code, err := xargs.Run(os.Stdin, options, logging.RootLogger.ForCategory(logging.CategoryExec))
	if err != nil {
		cmd.Warning(err.Error())
	}
	os.Exit(code)
	return nil
}

var xargsCommand = &cobra.Command{
	Use:   "xargs [options] [command [initial-arguments]]",
	Short: "Build and execute command lines from standard input",
	Run:   cmd.Mainify(xargsMain),
}

// xargsFlags holds every flag-backed setting xargs accepts.
type xargsFlags struct {
	// help indicates whether help information should be shown.
	help bool
	// version indicates whether version information should be shown.
	version bool
	// maxArgs is the -n operand.
	maxArgs int
	// maxChars is the -s operand.
	maxChars int
	// maxLines is the -L operand.
	maxLines int
	// replaceString is the -I operand.
	replaceString string
	// parallel is the -P operand.
	parallel int
	// noRunIfEmpty is -r.
	noRunIfEmpty bool
	// interactive is -p.
	interactive bool
	// verbose is -t.
	verbose bool
	// exitOnLargeArgs is -x.
	exitOnLargeArgs bool
	// nullDelimited is -0.
	nullDelimited bool
	// delimiter is the -d operand.
	delimiter string
	// debugCategories are the -D operands.
	debugCategories []string
}

var xargsConfiguration xargsFlags

// buildOptions translates parsed flags and the trailing command template
// into xargs.Options, the one place where -d's single-byte-delimiter
// requirement is validated.
func buildOptions(command []string, flags *xargsFlags) (*xargs.Options, error) {
	options := &xargs.Options{
		Command:         command,
		MaxArgs:         flags.maxArgs,
		MaxChars:        flags.maxChars,
		MaxLines:        flags.maxLines,
		ReplaceString:   flags.replaceString,
		Parallel:        flags.parallel,
		NoRunIfEmpty:    flags.noRunIfEmpty,
		Interactive:     flags.interactive,
		Verbose:         flags.verbose || flags.interactive,
		ExitOnLargeArgs: flags.exitOnLargeArgs,
		NullDelimited:   flags.nullDelimited,
	}
	if flags.delimiter != "" {
		if len(flags.delimiter) != 1 {
			return nil, errors.New("-d requires a single-byte delimiter")
		}
		delim := flags.delimiter[0]
		options.Delimiter = &delim
	}
	return options, nil
}

func init() {
	flags := xargsCommand.Flags()
	flags.SortFlags = false

	flags.BoolVarP(&xargsConfiguration.help, "help", "h", false, "Show help information")
	flags.BoolVarP(&xargsConfiguration.version, "version", "V", false, "Show version information")
	flags.IntVarP(&xargsConfiguration.maxArgs, "max-args", "n", 0, "Use at most this many arguments per command line")
	flags.IntVarP(&xargsConfiguration.maxChars, "max-chars", "s", 0, "Limit each command line's length")
	flags.IntVarP(&xargsConfiguration.maxLines, "max-lines", "L", 0, "Use at most this many non-blank input lines per command line")
	flags.StringVarP(&xargsConfiguration.replaceString, "replace", "I", "", "Replace occurrences of this string in the command with the input line")
	flags.IntVarP(&xargsConfiguration.parallel, "max-procs", "P", 1, "Run up to this many commands concurrently")
	flags.BoolVarP(&xargsConfiguration.noRunIfEmpty, "no-run-if-empty", "r", false, "Do not run the command if standard input is empty")
	flags.BoolVarP(&xargsConfiguration.interactive, "interactive", "p", false, "Prompt before each command invocation")
	flags.BoolVarP(&xargsConfiguration.verbose, "verbose", "t", false, "Print each command line before running it")
	flags.BoolVarP(&xargsConfiguration.exitOnLargeArgs, "exit", "x", false, "Exit if the size is exceeded rather than splitting further")
	flags.BoolVarP(&xargsConfiguration.nullDelimited, "null", "0", false, "Input items are terminated by a NUL character")
	flags.StringVarP(&xargsConfiguration.delimiter, "delimiter", "d", "", "Input items are terminated by the specified single character")
	flags.StringSliceVarP(&xargsConfiguration.debugCategories, "debug", "D", nil, "Enable diagnostic categories")
}

func main() {
	if err := xargsCommand.Execute(); err != nil {
		cmd.Fatal(err)
	}
}
