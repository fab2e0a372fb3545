// Package walk implements find's directory traversal driver: descent order,
// symbolic link policy, device-boundary and depth pruning, and loop
// detection via (device, inode) tracking, structured as a per-walk state
// struct whose methods perform the recursive descent.
package walk

import (
	"github.com/wayfarer-tools/findx/expr"
)

// Config holds the traversal settings that apply across an entire walk
// (derived from expr.Config plus the -xdev/-depth primaries, which affect
// walk order rather than per-entry evaluation).
type Config struct {
	// Symlinks selects the symbolic link following policy.
	Symlinks expr.SymlinkPolicy
	// MaxDepth bounds recursion; -1 means unlimited.
	MaxDepth int
	// MinDepth suppresses evaluation above this depth; -1 means no minimum.
	MinDepth int
	// XDev, when true, refuses to descend into a directory whose device ID
	// differs from its start point's (the -xdev/-mount primaries).
	XDev bool
	// Depth, when true, visits a directory's contents before the directory
	// itself (the -depth primary, also implied by -delete).
	Depth bool
	// IgnoreReaddirRace, when true, downgrades to a debug message the
	// warning normally logged when a child entry vanishes between being
	// listed by a directory read and being probed (the
	// -ignore_readdir_race primary; -noignore_readdir_race, the default,
	// restores the warning).
	IgnoreReaddirRace bool
	// Stats, if non-nil, is populated with entry counts as the walk
	// progresses (for a -D search end-of-run summary). Left nil, counting
	// is skipped entirely.
	Stats *Stats
}

// Stats accumulates counts of what a walk visited, for diagnostic summaries.
// Fields are updated with atomic adds so a future concurrent walker could
// share one Stats across goroutines without a data race.
type Stats struct {
	Files       uint64
	Directories uint64
	Symlinks    uint64
}

// Visitor is invoked once per traversed entry, in pre-order unless
// Config.Depth is set. It returns whether the walker should descend into
// this entry if it's a directory (false for a pruned directory, via
// -prune), whether the walker should stop traversal entirely after this
// call (true for -quit), and any error encountered invoking an action.
type Visitor func(entry *VisitedEntry) (descend bool, quit bool, err error)

// VisitedEntry describes one filesystem entry discovered during the walk,
// with enough context for the caller to construct an eval.Entry.
type VisitedEntry struct {
	// StartPoint is the command-line start point this entry was reached
	// from.
	StartPoint string
	// RelativePath is the path from StartPoint to this entry (empty for
	// the start point itself).
	RelativePath string
	// Path is StartPoint joined with RelativePath, in find's own display
	// form.
	Path string
	// Name is the entry's base name.
	Name string
	// Depth is the number of directory levels below StartPoint.
	Depth int
	// IsDir indicates whether the entry is a directory. Whether it is
	// actually descended into also depends on depth, -xdev, loop detection,
	// and the visitor's -prune verdict.
	IsDir bool
}
