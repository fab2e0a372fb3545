package process

import "os"

// environSize estimates the number of bytes the current environment will
// consume in a child process's argument/environment space, including the
// NUL terminator and pointer overhead per entry (mirroring the accounting
// the real execve does when laying out argv/envp).
func environSize() int64 {
	var size int64
	for _, entry := range os.Environ() {
		size += int64(len(entry)) + 1 + ptrSize
	}
	return size
}

// ptrSize is the pointer size used when estimating argv/envp overhead.
const ptrSize = 8

// argMaxSafetyMargin is subtracted from the computed limit to leave headroom
// for the child's own argv[0], environment growth, and platform rounding,
// mirroring the conservative margin GNU xargs applies to _SC_ARG_MAX.
const argMaxSafetyMargin = 2048
