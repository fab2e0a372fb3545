// Package eval evaluates a parsed expression tree against a single
// filesystem entry visited during traversal, short-circuiting the boolean
// operators exactly as a shell's && and || would.
package eval

import (
	"github.com/wayfarer-tools/findx/expr"
	"github.com/wayfarer-tools/findx/filesystem"
)

// Signal is returned from Run alongside the boolean result to communicate
// control-flow effects that a boolean result alone can't carry (pruning a
// directory, terminating the whole traversal).
type Signal int

const (
	// SignalNone indicates no special control-flow effect occurred.
	SignalNone Signal = iota
	// SignalPrune indicates that -prune was evaluated on a directory; the
	// walker should not descend into it.
	SignalPrune
	// SignalQuit indicates that -quit was evaluated; the walker should stop
	// traversal entirely after finishing any pending output.
	SignalQuit
)

// Entry is the information available to the evaluator about a single
// visited filesystem entry. It's supplied by the walk package and consumed
// read-only by eval and action.
type Entry struct {
	// Path is the full path used to reach this entry, constructed by
	// joining the start point with the relative path traversed so far.
	Path string
	// StartPoint is the literal command-line start point this entry was
	// reached from, used by -execdir/-okdir's safety rule against a
	// relative root that looks like an option.
	StartPoint string
	// RelativePath is Path with StartPoint (and the separator joining it to
	// the rest of the path) removed; empty when Path is StartPoint itself.
	// Used by -printf's %P directive.
	RelativePath string
	// Name is the base name of the entry.
	Name string
	// Depth is the number of directory levels below the relevant start
	// point (the start point itself is depth 0).
	Depth int
	// Metadata is the entry's probed filesystem metadata.
	Metadata *filesystem.Metadata
	// LinkMetadata is the entry's metadata probed with the opposite symlink
	// policy from Metadata: the resolved target when Metadata is an
	// unfollowed link, or the link itself when Metadata was reached by
	// following it. It is nil unless the entry is a symbolic link whose
	// target resolves (used by -xtype).
	LinkMetadata *filesystem.Metadata
	// ReachedViaSymlinkLoop flags an entry whose device/inode pair is
	// already on the current descent path. cmd/find always leaves it false
	// (resolveMetadata has no loop information to report; the walker
	// detects loops itself and does not descend), and no primary reads it.
	ReachedViaSymlinkLoop bool
}

// Sinks bundles the side-effecting hooks that action primaries invoke.
// It's an interface so the eval package doesn't need to import the action
// package (which itself depends on things like process spawning that have
// no business being reachable from pure expression evaluation).
type Sinks interface {
	// Print writes path followed by a newline.
	Print(path string) error
	// Print0 writes path followed by a NUL byte.
	Print0(path string) error
	// Fprint writes path followed by a newline to the named output file.
	Fprint(file, path string) error
	// Fprint0 writes path followed by a NUL byte to the named output file.
	Fprint0(file, path string) error
	// Printf writes a compiled format applied to entry to standard output.
	Printf(format *expr.Format, entry *Entry) error
	// Fprintf writes a compiled format applied to entry to the named output
	// file.
	Fprintf(file string, format *expr.Format, entry *Entry) error
	// Ls writes an ls -dils style listing line for entry.
	Ls(entry *Entry) error
	// Fls writes an ls -dils style listing line for entry to the named
	// output file.
	Fls(file string, entry *Entry) error
	// Delete removes entry's underlying filesystem object.
	Delete(entry *Entry) (bool, error)
	// Exec runs node's command (a -exec/-execdir primary) against entry.
	// For ";"-terminated primaries, "{}" is substituted with entry's path
	// and the command runs immediately. For "+"-terminated primaries,
	// entry's path is appended to a buffer private to that Node instance
	// (keyed by its pointer identity, stable across the whole traversal)
	// and the command only actually runs once enough paths have
	// accumulated to approach the system argument limit, or the
	// implementation's batch-flush is invoked at the end of the walk; the
	// call for any individual entry returns true immediately, matching
	// find's own "+" semantics, and the
	// aggregate success of every flushed invocation is reported separately.
	// inDir, when true, runs the command with its working directory set to
	// entry's containing directory (for -execdir/-okdir).
	Exec(node *expr.Node, entry *Entry, inDir bool) (bool, error)
	// Ok behaves like Exec but first prompts the user for confirmation on
	// the controlling terminal; inDir mirrors Exec's inDir.
	Ok(command []string, entry *Entry, inDir bool) (bool, error)
}
