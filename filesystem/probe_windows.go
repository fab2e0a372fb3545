//go:build windows

package filesystem

import (
	"os"

	"github.com/pkg/errors"
)

// Probe stats the entry at path, following a trailing symbolic link.
func Probe(path string) (*Metadata, error) {
	return probe(path, true)
}

// LProbe stats the entry at path without following a trailing symbolic link.
func LProbe(path string) (*Metadata, error) {
	return probe(path, false)
}

// probe uses os.Stat/os.Lstat rather than raw Windows API calls: Windows has
// no device/inode/uid/gid concept that maps onto POSIX semantics, so the
// richer unix.Stat_t-based probing used on POSIX platforms has nothing
// additional to offer here beyond what os.FileInfo already exposes.
func probe(path string, followSymlink bool) (*Metadata, error) {
	var info os.FileInfo
	var err error
	if followSymlink {
		info, err = os.Stat(path)
	} else {
		info, err = os.Lstat(path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to stat path")
	}

	metadata := &Metadata{
		Mode:    info.Mode(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Links:   1,
	}

	if metadata.IsSymlink() {
		if target, err := os.Readlink(path); err == nil {
			metadata.LinkTarget = target
		}
	}

	return metadata, nil
}
