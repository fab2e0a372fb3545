package walk

import (
	"context"
	"os"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/wayfarer-tools/findx/expr"
	"github.com/wayfarer-tools/findx/filesystem"
	"github.com/wayfarer-tools/findx/logging"
	"github.com/wayfarer-tools/findx/pkg/contextutil"
)

// errQuit is a sentinel used to unwind the recursive descent as soon as
// -quit fires, without needing every call site to thread a boolean through
// every return path.
var errQuit = errors.New("walk: quit requested")

// walker holds the mutable state of a single call to Walk: the logger, the
// configuration, and the set of (device, inode) pairs seen on the current
// descent path (used for symbolic-link loop detection under -L).
type walker struct {
	ctx      context.Context
	config   *Config
	visit    Visitor
	logger   *logging.Logger
	rootDev  uint64
	rootSet  bool
	visiting map[devIno]bool
}

// devIno identifies a filesystem entry uniquely enough to detect loops
// introduced by following symbolic links.
type devIno struct {
	device uint64
	inode  uint64
}

// Walk traverses each start point in order, invoking visit for every entry
// encountered. It returns early (without error) if visit ever returns
// quit=true or ctx is cancelled. A start point, child entry, or directory
// that cannot be probed or read is logged as a warning and skipped, and the
// walk continues; such failures are not returned to the caller. The only
// error Walk returns is one returned by visit.
func Walk(ctx context.Context, startPoints []string, config *Config, logger *logging.Logger, visit Visitor) error {
	w := &walker{
		ctx:      ctx,
		config:   config,
		visit:    visit,
		logger:   logger,
		visiting: make(map[devIno]bool),
	}

	for _, startPoint := range startPoints {
		if err := w.walkStartPoint(startPoint); err != nil {
			if err == errQuit {
				return nil
			}
			return err
		}
	}

	return nil
}

func (w *walker) walkStartPoint(startPoint string) error {
	followSymlink := w.config.Symlinks != expr.SymlinkNever
	metadata, err := w.probe(startPoint, followSymlink)
	if err != nil {
		w.logger.Warnf("unable to access %s: %v", startPoint, err)
		return nil
	}

	w.rootDev = metadata.Device
	w.rootSet = true

	entry := &VisitedEntry{
		StartPoint:   startPoint,
		RelativePath: "",
		Path:         startPoint,
		Name:         startPoint,
		Depth:        0,
		IsDir:        metadata.IsDir(),
	}

	return w.visitRecursive(entry, metadata, devIno{metadata.Device, metadata.Inode})
}

// visitRecursive visits entry, then (unless pruned) recurses into it if
// it's a directory within depth bounds, in pre-order or post-order per
// config.Depth.
func (w *walker) visitRecursive(entry *VisitedEntry, metadata *filesystem.Metadata, key devIno) error {
	if contextutil.IsCancelled(w.ctx) {
		return errQuit
	}

	w.recordVisit(metadata)

	aboveMinDepth := w.config.MinDepth < 0 || entry.Depth >= w.config.MinDepth
	withinMaxDepth := w.config.MaxDepth < 0 || entry.Depth < w.config.MaxDepth

	eligibleToDescend := entry.IsDir && withinMaxDepth
	if eligibleToDescend && w.config.Symlinks == expr.SymlinkAll && w.visiting[key] {
		w.logger.Debugf("%s: filesystem loop detected, not descending", entry.Path)
		eligibleToDescend = false
	}
	if eligibleToDescend && w.config.XDev && w.rootSet && metadata.Device != w.rootDev {
		eligibleToDescend = false
	}

	preOrder := !w.config.Depth
	descend := eligibleToDescend

	if preOrder && aboveMinDepth {
		visitorDescend, quit, err := w.visit(entry)
		if err != nil {
			return err
		}
		descend = descend && visitorDescend
		if quit {
			return errQuit
		}
	}

	if descend {
		if err := w.descendInto(entry, key); err != nil {
			return err
		}
	}

	if !preOrder && aboveMinDepth {
		_, quit, err := w.visit(entry)
		if err != nil {
			return err
		}
		if quit {
			return errQuit
		}
	}

	return nil
}

// descendInto reads entry's directory and recurses into each child,
// keeping key marked in w.visiting for the full duration of the descent
// (not merely the directory read) so that a symbolic link rediscovering
// entry further down the tree is recognized as a loop.
func (w *walker) descendInto(entry *VisitedEntry, key devIno) error {
	w.visiting[key] = true
	defer delete(w.visiting, key)

	names, err := filesystem.DirectoryEntries(entry.Path)
	if err != nil {
		w.logger.Warnf("unable to read directory %s: %v", entry.Path, err)
		return nil
	}

	for _, name := range names {
		if name == "." || name == ".." {
			continue
		}
		childRelative := name
		if entry.RelativePath != "" {
			childRelative = entry.RelativePath + "/" + name
		}
		childPath := join(entry.StartPoint, childRelative)

		followChildSymlink := w.config.Symlinks == expr.SymlinkAll
		childMetadata, err := w.probe(childPath, followChildSymlink)
		if err != nil {
			if w.config.IgnoreReaddirRace && os.IsNotExist(err) {
				w.logger.Debugf("%s: vanished during traversal, ignoring", childPath)
			} else {
				w.logger.Warnf("unable to access %s: %v", childPath, err)
			}
			continue
		}

		child := &VisitedEntry{
			StartPoint:   entry.StartPoint,
			RelativePath: childRelative,
			Path:         childPath,
			Name:         name,
			Depth:        entry.Depth + 1,
			IsDir:        childMetadata.IsDir(),
		}

		if err := w.visitRecursive(child, childMetadata, devIno{childMetadata.Device, childMetadata.Inode}); err != nil {
			return err
		}
	}

	return nil
}

// recordVisit tallies metadata into the walk's Stats, if one was configured.
// Symbolic links are counted as symlinks rather than as files or
// directories, matching what -type l identifies them as.
func (w *walker) recordVisit(metadata *filesystem.Metadata) {
	if w.config.Stats == nil {
		return
	}
	switch {
	case metadata.IsSymlink():
		atomic.AddUint64(&w.config.Stats.Symlinks, 1)
	case metadata.IsDir():
		atomic.AddUint64(&w.config.Stats.Directories, 1)
	default:
		atomic.AddUint64(&w.config.Stats.Files, 1)
	}
}

// probe stats path, following a trailing symbolic link if requested.
func (w *walker) probe(path string, followSymlink bool) (*filesystem.Metadata, error) {
	if followSymlink {
		if metadata, err := filesystem.Probe(path); err == nil {
			return metadata, nil
		}
	}
	return filesystem.LProbe(path)
}
