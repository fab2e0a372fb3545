//go:build windows

package filesystem

import "os"

// Access reports whether the requested access to path is available. Windows
// has no real/effective UID distinction, so this falls back to a best-effort
// open probe rather than access(2) semantics.
func Access(path string, mode AccessMode) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}

	switch mode {
	case AccessRead:
		f, err := os.Open(path)
		if err != nil {
			return false
		}
		f.Close()
		return true
	case AccessWrite:
		if info.IsDir() {
			return info.Mode().Perm()&0200 != 0
		}
		f, err := os.OpenFile(path, os.O_WRONLY, 0)
		if err != nil {
			return false
		}
		f.Close()
		return true
	case AccessExecute:
		return info.IsDir() || info.Mode().Perm()&0111 != 0
	}
	return false
}
