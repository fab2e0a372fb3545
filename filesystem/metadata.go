package filesystem

import (
	"os"
	"time"
)

// Metadata holds the subset of filesystem metadata that expression
// evaluation and the -ls/-printf actions need. It's deliberately flatter
// than os.FileInfo: fields that only make sense on POSIX systems (device,
// inode, uid, gid, link count) are present but zero on platforms that can't
// supply them.
type Metadata struct {
	// Name is the base name of the entry. Probe and LProbe leave it empty;
	// cmd/find fills it in only on the Problem record it builds for an
	// entry whose probe failed.
	Name string
	// Mode is the entry's type and permission bits.
	Mode os.FileMode
	// Size is the entry's size in bytes, as reported by stat.
	Size int64
	// ModTime is the entry's last content-modification time.
	ModTime time.Time
	// AccessTime is the entry's last access time.
	AccessTime time.Time
	// ChangeTime is the entry's last inode-change time.
	ChangeTime time.Time
	// Device is the ID of the device containing the entry.
	Device uint64
	// Inode is the entry's inode number.
	Inode uint64
	// Links is the entry's hard link count.
	Links uint64
	// UID is the entry's owning user ID.
	UID uint32
	// GID is the entry's owning group ID.
	GID uint32
	// Blocks is the number of 512-byte blocks allocated to the entry.
	Blocks int64
	// LinkTarget is the target of the entry if it is a symbolic link, and
	// the link could be read. It's empty otherwise.
	LinkTarget string
	// Problem records an error encountered while probing this entry (for
	// example, a permission-denied stat). A non-nil Problem means the
	// remaining fields may be zero-valued. Probing failures are carried as
	// data rather than returned as errors from the walk, so cmd/find can
	// report the entry, skip its evaluation, and continue with the next one.
	Problem error
}

// IsDir reports whether the probed entry is a directory.
func (m *Metadata) IsDir() bool {
	return m.Mode.IsDir()
}

// IsSymlink reports whether the probed entry is a symbolic link.
func (m *Metadata) IsSymlink() bool {
	return m.Mode&os.ModeSymlink != 0
}
