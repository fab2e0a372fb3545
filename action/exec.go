package action

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/wayfarer-tools/findx/eval"
	"github.com/wayfarer-tools/findx/expr"
	"github.com/wayfarer-tools/findx/process"
)

// substituteBraces replaces every "{}" token in command with replacement.
func substituteBraces(command []string, replacement string) []string {
	substituted := make([]string, len(command))
	for i, arg := range command {
		substituted[i] = strings.ReplaceAll(arg, "{}", replacement)
	}
	return substituted
}

// expandBraces builds an argv by replacing the first "{}" token in command
// with the full paths slice spliced in at that position, matching find's
// "+" batching where the accumulated paths all land where the single "{}"
// appeared in the command template.
func expandBraces(command []string, paths []string) []string {
	for i, arg := range command {
		if arg == "{}" {
			expanded := make([]string, 0, len(command)-1+len(paths))
			expanded = append(expanded, command[:i]...)
			expanded = append(expanded, paths...)
			expanded = append(expanded, command[i+1:]...)
			return expanded
		}
	}
	expanded := make([]string, 0, len(command)+len(paths))
	expanded = append(expanded, command...)
	expanded = append(expanded, paths...)
	return expanded
}

// runCommand executes command, with its standard streams connected to the
// current process's, optionally with its working directory set to dir.
func runCommand(command []string, dir string) (bool, error) {
	if len(command) == 0 {
		return false, nil
	}

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Dir = dir

	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	if _, ok := err.(*exec.ExitError); ok {
		return false, nil
	}
	return false, err
}

// execBatchState accumulates entry paths for one "+"-terminated -exec/
// -execdir predicate instance, keyed by the owning *expr.Node so that two
// distinct -exec ... + primaries in the same expression never share a
// buffer.
type execBatchState struct {
	dir   string
	paths []string
	chars int
	allOK bool
}

// execCommandOverhead mirrors xargs' own conservative per-invocation
// reservation for argv pointers and NUL terminators.
const execCommandOverhead = 2048

// execBudget computes the maximum number of bytes of accumulated path
// arguments allowed before a batch must be flushed, derived the same way
// xargs derives its own default character budget.
func execBudget(command []string) int {
	budget := int(process.ArgMax()) - execCommandOverhead
	for _, arg := range command {
		budget -= len(arg) + 1
	}
	if budget < 1 {
		budget = 1
	}
	return budget
}

// execdirUnsafe reports whether running a child in entry's containing
// directory would be unsafe: a relative start point beginning with "-"
// combined with a containing directory of "." would hand the child a bare
// basename that could be misread as an option by a careless command.
func execdirUnsafe(entry *eval.Entry) bool {
	return filepath.Dir(entry.Path) == "." && strings.HasPrefix(entry.StartPoint, "-")
}

// Exec runs node's command against entry. For a ";"-terminated primary,
// "{}" is substituted with entry's path and the command runs immediately.
// For a "+"-terminated primary, entry's path is appended to a per-Node
// buffer and the command only actually runs once the buffer approaches the
// system argument limit, or when Close flushes whatever remains at the end
// of the traversal.
func (r *Registry) Exec(node *expr.Node, entry *eval.Entry, inDir bool) (bool, error) {
	if inDir && execdirUnsafe(entry) {
		return false, nil
	}

	dir := ""
	substitution := entry.Path
	if inDir {
		dir = filepath.Dir(entry.Path)
		substitution = filepath.Base(entry.Path)
	}

	if !node.CommandBatches {
		resolved := substituteBraces(node.Command, substitution)
		return runCommand(resolved, dir)
	}

	return true, r.appendExecBatch(node, substitution, dir)
}

// appendExecBatch adds path to node's accumulating batch, flushing the
// existing batch first if adding path would exceed the character budget,
// or if path belongs to a different -execdir working directory than the
// batch currently in progress.
func (r *Registry) appendExecBatch(node *expr.Node, path, dir string) error {
	r.execLock.Lock()
	if r.execBatches == nil {
		r.execBatches = make(map[*expr.Node]*execBatchState)
	}
	state, ok := r.execBatches[node]
	if !ok {
		state = &execBatchState{dir: dir, allOK: true}
		r.execBatches[node] = state
	}
	r.execLock.Unlock()

	if len(state.paths) > 0 && dir != state.dir {
		if err := r.flushExecBatch(node, state); err != nil {
			return err
		}
	}
	state.dir = dir

	tokenLen := len(path) + 1
	if len(state.paths) > 0 && state.chars+tokenLen > execBudget(node.Command) {
		if err := r.flushExecBatch(node, state); err != nil {
			return err
		}
	}

	state.paths = append(state.paths, path)
	state.chars += tokenLen
	return nil
}

// flushExecBatch runs node's command once against every path accumulated
// so far in state, folding the invocation's success into state.allOK, and
// resets state so further paths start a fresh batch.
func (r *Registry) flushExecBatch(node *expr.Node, state *execBatchState) error {
	if len(state.paths) == 0 {
		return nil
	}

	argv := expandBraces(node.Command, state.paths)
	ok, err := runCommand(argv, state.dir)
	if err != nil {
		return err
	}
	state.allOK = state.allOK && ok
	state.paths = nil
	state.chars = 0
	return nil
}

// FlushExecBatches runs any -exec/-execdir "+" batches still holding
// unflushed paths, as required at traversal end. It returns false if any
// flushed invocation (including ones flushed earlier) exited nonzero.
func (r *Registry) FlushExecBatches() (bool, error) {
	r.execLock.Lock()
	defer r.execLock.Unlock()

	allOK := true
	for node, state := range r.execBatches {
		if err := r.flushExecBatch(node, state); err != nil {
			return false, err
		}
		allOK = allOK && state.allOK
	}
	return allOK, nil
}
