//go:build darwin

package filesystem

import (
	"os"
	"time"

	"golang.org/x/sys/unix"

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

func probe(path string, followSymlink bool) (*Metadata, error) {
	var raw unix.Stat_t
	var err error
	if followSymlink {
		err = unix.Stat(path, &raw)
	} else {
		err = unix.Lstat(path, &raw)
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to stat path")
	}

	metadata := &Metadata{
		Mode:       os.FileMode(raw.Mode & 0777),
		Size:       raw.Size,
		ModTime:    time.Unix(raw.Mtimespec.Unix()),
		AccessTime: time.Unix(raw.Atimespec.Unix()),
		ChangeTime: time.Unix(raw.Ctimespec.Unix()),
		Device:     uint64(raw.Dev),
		Inode:      uint64(raw.Ino),
		Links:      uint64(raw.Nlink),
		UID:        raw.Uid,
		GID:        raw.Gid,
		Blocks:     raw.Blocks,
	}
	metadata.Mode |= modeTypeFromRaw(uint32(raw.Mode))
	if raw.Mode&unix.S_ISUID != 0 {
		metadata.Mode |= os.ModeSetuid
	}
	if raw.Mode&unix.S_ISGID != 0 {
		metadata.Mode |= os.ModeSetgid
	}
	if raw.Mode&unix.S_ISVTX != 0 {
		metadata.Mode |= os.ModeSticky
	}

	if metadata.IsSymlink() {
		if target, err := os.Readlink(path); err == nil {
			metadata.LinkTarget = target
		}
	}

	return metadata, nil
}

// modeTypeFromRaw converts a raw POSIX mode's file-type bits into the
// corresponding os.FileMode type bits.
func modeTypeFromRaw(raw uint32) os.FileMode {
	switch raw & unix.S_IFMT {
	case unix.S_IFDIR:
		return os.ModeDir
	case unix.S_IFLNK:
		return os.ModeSymlink
	case unix.S_IFIFO:
		return os.ModeNamedPipe
	case unix.S_IFSOCK:
		return os.ModeSocket
	case unix.S_IFBLK:
		return os.ModeDevice
	case unix.S_IFCHR:
		return os.ModeDevice | os.ModeCharDevice
	default:
		return 0
	}
}
