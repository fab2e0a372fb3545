//go:build windows

package process

// windowsCommandLineLimit is the documented maximum command-line length
// accepted by CreateProcess on Windows.
const windowsCommandLineLimit = 32699

// ArgMax returns the maximum number of bytes of command-line arguments that
// may be passed to a child process on this system, minus the space consumed
// by the current environment and a safety margin.
func ArgMax() int64 {
	limit := int64(windowsCommandLineLimit)
	limit -= environSize()
	limit -= argMaxSafetyMargin

	if limit < 4096 {
		limit = 4096
	}
	return limit
}
