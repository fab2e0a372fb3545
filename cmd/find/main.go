package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/wayfarer-tools/findx/action"
	"github.com/wayfarer-tools/findx/cmd"
	"github.com/wayfarer-tools/findx/eval"
	"github.com/wayfarer-tools/findx/expr"
	"github.com/wayfarer-tools/findx/logging"
	"github.com/wayfarer-tools/findx/pkg/stream"
	"github.com/wayfarer-tools/findx/version"
	"github.com/wayfarer-tools/findx/walk"
)

// findMain is find's entry point. Flag parsing is disabled on the Cobra
// command (see the init function below) because find's actual grammar mixes
// start points, global symlink/debug flags, and the expression itself in a
// single argument stream that pflag's declarative flag model can't express;
// instead the raw arguments are handed to extractDebugFlag and expr.Parse,
// which implement find's own scanning rules directly.
func findMain(command *cobra.Command, arguments []string) error {
	if len(arguments) == 1 && (arguments[0] == "--help" || arguments[0] == "-h") {
		return command.Help()
	}
	if len(arguments) == 1 && arguments[0] == "--version" {
		fmt.Println(version.String())
		return nil
	}

	categories, rest := extractDebugFlag(arguments)
	logging.EnableDebugCategories(categories...)
	logger := logging.RootLogger.ForCategory(logging.CategoryTree)

	tree, config, err := expr.Parse(rest)
	if err != nil {
		return errors.Wrap(err, "invalid expression")
	}
	if len(config.StartPoints) == 0 {
		config.StartPoints = []string{"."}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	signalTermination := make(chan os.Signal, 1)
	signal.Notify(signalTermination, cmd.TerminationSignals...)
	go func() {
		<-signalTermination
		cancel()
	}()

	// Standard output is wrapped so that a long run of -print/-ls output
	// stops promptly once ctx is cancelled, instead of draining an entire
	// directory's worth of buffered writes after SIGINT/SIGTERM.
	stdout := stream.NewPreemptableWriter(os.Stdout, ctx.Done(), 64)
	registry := action.NewRegistry(stdout, logging.RootLogger.ForCategory(logging.CategoryExec))
	defer registry.Close()

	stats := &walk.Stats{}
	walkConfig := &walk.Config{
		Symlinks:          config.Symlinks,
		MaxDepth:          config.MaxDepth,
		MinDepth:          config.MinDepth,
		XDev:              config.XDev,
		Depth:             config.Depth,
		IgnoreReaddirRace: config.IgnoreReaddirRace,
		Stats:             stats,
	}

	now := time.Now().Unix()
	started := time.Now()
	failed := false

	visitor := func(entry *walk.VisitedEntry) (bool, bool, error) {
		metadata, lmetadata, loop := resolveMetadata(entry, config.Symlinks)
		if metadata.Problem != nil {
			logger.Warnf("%s: %v", entry.Path, metadata.Problem)
			failed = true
			return false, false, nil
		}

		evalEntry := &eval.Entry{
			Path:                  entry.Path,
			StartPoint:            entry.StartPoint,
			RelativePath:          entry.RelativePath,
			Name:                  entry.Name,
			Depth:                 entry.Depth,
			Metadata:              metadata,
			LinkMetadata:          lmetadata,
			ReachedViaSymlinkLoop: loop,
		}

		_, signal, err := eval.Run(tree.Root, evalEntry, registry, now)
		if err != nil {
			logger.Warnf("%s: %v", entry.Path, err)
			failed = true
		}

		descend := signal != eval.SignalPrune
		quit := signal == eval.SignalQuit
		return descend, quit, nil
	}

	if err := walk.Walk(ctx, config.StartPoints, walkConfig, logger, visitor); err != nil {
		return errors.Wrap(err, "traversal failed")
	}

	execOK, err := registry.FlushExecBatches()
	if err != nil {
		logger.Warnf("-exec/-execdir batch failed: %v", err)
		failed = true
	} else if !execOK {
		failed = true
	}

	logging.RootLogger.ForCategory(logging.CategoryExec).Debugf("wrote %s to standard output", humanize.Bytes(registry.BytesWritten()))
	logging.RootLogger.ForCategory(logging.CategorySearch).Debugf(
		"visited %d files, %d directories, %d symlinks in %s",
		stats.Files, stats.Directories, stats.Symlinks, time.Since(started),
	)

	if failed {
		os.Exit(1)
	}
	return nil
}

// extractDebugFlag pulls out every "-D CATEGORY" pair from arguments
// (find's own grammar has no use for a bare "-D", so this is unambiguous to
// scan for before handing the remainder to expr.Parse), returning the
// collected category names and the arguments with those pairs removed.
func extractDebugFlag(arguments []string) ([]string, []string) {
	var categories []string
	var rest []string
	for i := 0; i < len(arguments); i++ {
		if arguments[i] == "-D" && i+1 < len(arguments) {
			categories = append(categories, strings.Split(arguments[i+1], ",")...)
			i++
			continue
		}
		rest = append(rest, arguments[i])
	}
	return categories, rest
}

var findCommand = &cobra.Command{
	Use:                "find [-H] [-L] [-P] [-D CATEGORY] [path...] [expression]",
	Short:              "Search for files in a directory hierarchy",
	Run:                cmd.Mainify(findMain),
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func init() {
	flags := findCommand.Flags()
	flags.SortFlags = false
	flags.BoolP("help", "h", false, "Show help information")
}

func main() {
	if err := findCommand.Execute(); err != nil {
		cmd.Fatal(err)
	}
}
