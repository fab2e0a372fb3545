package xargs

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/wayfarer-tools/findx/logging"
	"github.com/wayfarer-tools/findx/pkg/parallelism"
	"github.com/wayfarer-tools/findx/pkg/stream"
)

// Exit codes, matching GNU xargs's own documented conventions so that
// scripts depending on them continue to work unmodified.
const (
	ExitSuccess          = 0
	ExitCommandFailed    = 123
	ExitCommandAborted   = 124
	ExitCommandKilled    = 125
	ExitCommandCannotRun = 126
	ExitCommandNotFound  = 127
	ExitOther            = 1
)

// invocation is one fully-resolved argument list: the command template plus
// the arguments of one batch (or of one replace-string line).
type invocation struct {
	args []string
}

// Run reads input, builds invocations according to options, and executes the
// target command either once per batch (default/-n/-s/-L modes) or once per
// input line with substitution (-I mode). It returns the process exit code
// that the calling cmd/xargs main should use.
func Run(input io.Reader, options *Options, logger *logging.Logger) (int, error) {
	command := options.Command
	if len(command) == 0 {
		command = []string{"echo"}
	}

	var invocations []invocation
	var err error
	if options.ReplaceString != "" {
		invocations, err = replaceInvocations(input, command, options.ReplaceString)
	} else {
		invocations, err = batchInvocations(input, command, options)
	}
	if err != nil {
		return ExitOther, err
	}

	if len(invocations) == 0 {
		if options.NoRunIfEmpty {
			return ExitSuccess, nil
		}
		invocations = []invocation{{args: command}}
	}

	return dispatch(invocations, options, logger)
}

// batchInvocations tokenizes input and groups it into Batch values, returning
// one invocation per batch with the fixed command template prepended.
func batchInvocations(input io.Reader, command []string, options *Options) ([]invocation, error) {
	tokens, lineOf, err := Tokenize(input, options)
	if err != nil {
		return nil, err
	}
	batches, err := Batches(tokens, lineOf, options)
	if err != nil {
		return nil, err
	}
	invocations := make([]invocation, len(batches))
	for i, batch := range batches {
		args := make([]string, 0, len(command)+len(batch.Args))
		args = append(args, command...)
		args = append(args, batch.Args...)
		invocations[i] = invocation{args: args}
	}
	return invocations, nil
}

// replaceInvocations reads input line by line and returns one invocation per
// line, with every occurrence of replaceString in command substituted by
// that line's content (matching xargs -I).
func replaceInvocations(input io.Reader, command []string, replaceString string) ([]invocation, error) {
	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var invocations []invocation
	for scanner.Scan() {
		line := scanner.Text()
		args := make([]string, len(command))
		for i, arg := range command {
			args[i] = strings.ReplaceAll(arg, replaceString, line)
		}
		invocations = append(invocations, invocation{args: args})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "unable to read input lines")
	}
	return invocations, nil
}

// dispatch runs each invocation, sequentially or via a worker array sized by
// options.Parallel, and aggregates their exit codes into a single overall
// code using GNU xargs's precedence rules (a hard failure, such as "command
// not found", takes priority over a plain nonzero exit).
func dispatch(invocations []invocation, options *Options, logger *logging.Logger) (int, error) {
	parallel := options.Parallel
	if parallel < 1 {
		parallel = 1
	}

	var aggregate int32
	var hardErr atomic.Value

	// When invocations run concurrently, each child's stdout/stderr writes
	// are routed through a shared, mutex-serialized writer so that two
	// children's output doesn't interleave mid-line on the terminal.
	var stdout, stderr io.Writer = os.Stdout, os.Stderr
	if parallel > 1 {
		stdout = stream.NewConcurrentWriter(os.Stdout)
		stderr = stream.NewConcurrentWriter(os.Stderr)
	}

	run := func(inv invocation) {
		if options.Verbose || options.Interactive {
			fmt.Fprintln(os.Stderr, strings.Join(inv.args, " "))
		}
		if options.Interactive && !confirm() {
			return
		}

		code, hard, err := runOne(inv.args, stdout, stderr)
		if err != nil {
			hardErr.Store(err)
		}
		casMax(&aggregate, int32(code))
		_ = hard
	}

	if parallel == 1 || len(invocations) <= 1 {
		for _, inv := range invocations {
			run(inv)
		}
	} else {
		array := parallelism.NewSIMDWorkerArray(parallel)
		defer array.Terminate()
		err := array.Do(&batchWork{invocations: invocations, run: run})
		if err != nil {
			logger.Warnf("parallel dispatch reported an error: %v", err)
		}
	}

	if err, ok := hardErr.Load().(error); ok && err != nil {
		return int(atomic.LoadInt32(&aggregate)), err
	}
	return int(atomic.LoadInt32(&aggregate)), nil
}

// batchWork shards invocations across a SIMDWorkerArray: worker index
// processes every invocation whose position modulo the array size equals
// index, giving each worker a disjoint subset without any shared queue.
type batchWork struct {
	invocations []invocation
	run         func(invocation)
}

func (w *batchWork) Do(index, size int) error {
	for i := index; i < len(w.invocations); i += size {
		w.run(w.invocations[i])
	}
	return nil
}

// casMax atomically stores value into target if it is larger than target's
// current value, used to keep the "worst" exit code across invocations
// (matching xargs's rule that 123 etc. should win over a plain 0).
func casMax(target *int32, value int32) {
	for {
		current := atomic.LoadInt32(target)
		if value <= current {
			return
		}
		if atomic.CompareAndSwapInt32(target, current, value) {
			return
		}
	}
}

// confirm prompts on standard error and reads a yes/no response from
// standard input, used for -p interactive mode.
func confirm() bool {
	fmt.Fprint(os.Stderr, "?...")
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response := strings.ToLower(strings.TrimSpace(line))
	return response == "y" || response == "yes"
}

// runOne executes a single resolved command invocation and classifies its
// outcome into one of the documented xargs exit codes.
func runOne(args []string, stdout, stderr io.Writer) (code int, hard bool, err error) {
	if len(args) == 0 {
		return ExitOther, true, errors.New("empty command")
	}

	// Each child's output is split into lines before reaching the shared
	// stdout/stderr writer, so that concurrent children (see dispatch's
	// stream.NewConcurrentWriter wrapping) interleave at line boundaries
	// rather than mid-line.
	stdoutLines := &stream.LineProcessor{Callback: func(line string) { fmt.Fprintln(stdout, line) }}
	stderrLines := &stream.LineProcessor{Callback: func(line string) { fmt.Fprintln(stderr, line) }}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdoutLines
	cmd.Stderr = stderrLines

	runErr := cmd.Run()
	stdoutLines.Flush()
	stderrLines.Flush()
	if runErr == nil {
		return ExitSuccess, false, nil
	}

	if exitErr, ok := runErr.(*exec.ExitError); ok {
		status := exitErr.ExitCode()
		switch {
		case status == 255:
			return ExitCommandAborted, false, nil
		case status == -1:
			return ExitCommandKilled, false, nil
		case status >= 1 && status <= 125:
			return ExitCommandFailed, false, nil
		default:
			return ExitCommandFailed, false, nil
		}
	}

	if errors.Is(runErr, exec.ErrNotFound) {
		return ExitCommandNotFound, true, errors.Wrapf(runErr, "command not found: %s", args[0])
	}
	return ExitCommandCannotRun, true, errors.Wrapf(runErr, "unable to run command: %s", args[0])
}
