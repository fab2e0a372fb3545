//go:build linux || darwin || freebsd || netbsd || openbsd

package process

import "golang.org/x/sys/unix"

// fallbackArgMax is used if the system call querying ARG_MAX fails.
const fallbackArgMax = 131072

// ArgMax returns the maximum number of bytes of command-line arguments and
// environment that may be passed to exec on this system, minus the space
// consumed by the current environment and a safety margin. It's the basis
// for xargs' default command-line length limit.
func ArgMax() int64 {
	limit, err := unix.Sysconf(unix.SC_ARG_MAX)
	if err != nil || limit <= 0 {
		limit = fallbackArgMax
	}

	limit -= environSize()
	limit -= argMaxSafetyMargin

	if limit < 4096 {
		limit = 4096
	}
	return limit
}
