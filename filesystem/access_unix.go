//go:build !windows

package filesystem

import "golang.org/x/sys/unix"

// Access reports whether the real (not effective) user running this process
// has the requested access to path, mirroring the semantics of the access(2)
// system call that -readable/-writable/-executable are specified against.
func Access(path string, mode AccessMode) bool {
	var how uint32
	switch mode {
	case AccessRead:
		how = unix.R_OK
	case AccessWrite:
		how = unix.W_OK
	case AccessExecute:
		how = unix.X_OK
	}
	return unix.Access(path, how) == nil
}
