package main

import (
	"github.com/wayfarer-tools/findx/expr"
	"github.com/wayfarer-tools/findx/filesystem"
	"github.com/wayfarer-tools/findx/walk"
)

// resolveMetadata probes entry a second time for the evaluator's benefit
// (the walker already probed it once to decide whether to descend, but
// doesn't thread that result back through Visitor to keep the walk package
// independent of eval.Entry's shape). It follows entry's path according to
// the traversal's symlink policy to produce the metadata -type reports
// against, and — whenever entry is a symbolic link — also probes it the
// opposite way, so -xtype can report the type the current policy did not
// pick (a broken or unresolvable target leaves that second probe nil, which
// -xtype treats as "report it as a link" per find's own documented
// fallback).
func resolveMetadata(entry *walk.VisitedEntry, policy expr.SymlinkPolicy) (metadata, linkMetadata *filesystem.Metadata, reachedViaLoop bool) {
	followAtThisEntry := policy == expr.SymlinkAll ||
		(policy == expr.SymlinkCommandLineOnly && entry.Depth == 0)

	raw, err := filesystem.LProbe(entry.Path)
	if err != nil {
		return &filesystem.Metadata{Name: entry.Name, Problem: err}, nil, false
	}

	if !raw.IsSymlink() {
		return raw, nil, false
	}

	resolved, resolveErr := filesystem.Probe(entry.Path)

	if followAtThisEntry {
		if resolveErr != nil {
			return raw, nil, false
		}
		return resolved, raw, false
	}

	if resolveErr != nil {
		return raw, nil, false
	}
	return raw, resolved, false
}
