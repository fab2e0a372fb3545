// Package must provides small helpers for performing best-effort cleanup and
// I/O operations whose errors are worth logging but not worth propagating
// (e.g. closing a file we're about to exit over anyway).
package must

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/wayfarer-tools/findx/logging"
)

// Fprint writes to w, logging a warning if the write fails or is partial.
func Fprint(w io.Writer, logger *logging.Logger, a ...any) {
	s := fmt.Sprint(a...)
	n, err := fmt.Fprint(w, s)
	if err != nil {
		logger.Warnf("unable to write '%s': %s", s, err.Error())
	}
	if n < len(s) {
		logger.Warnf("unable to write all of '%s'; wrote only %d of %d bytes", s, n, len(s))
	}
}

// Close closes c, logging a warning on failure.
func Close(c io.Closer, logger *logging.Logger) {
	if err := c.Close(); err != nil {
		logger.Warnf("unable to close: %s", err.Error())
	}
}

// WriteString writes s via ws, logging a warning if the write fails or is
// partial.
func WriteString(ws interface{ WriteString(string) (int, error) }, s string, logger *logging.Logger) {
	n, err := ws.WriteString(s)
	if err != nil {
		logger.Warnf("unable to write string '%s': %s", s, err.Error())
	}
	if n < len(s) {
		logger.Warnf("unable to write all of string '%s'; wrote only %d of %d bytes", s, n, len(s))
	}
}

// OSRemove removes the named file, logging a warning on failure.
func OSRemove(name string, logger *logging.Logger) {
	if err := os.Remove(name); err != nil {
		logger.Warnf("unable to remove '%s': %s", name, err.Error())
	}
}

// IOCopy copies from src to dst, logging a warning on failure.
func IOCopy(dst io.Writer, src io.Reader, logger *logging.Logger) {
	if _, err := io.Copy(dst, src); err != nil {
		logger.Warnf("unable to copy from source to destination: %s", err.Error())
	}
}

// CommandHelp prints a command's help text, logging a warning on failure.
func CommandHelp(c *cobra.Command, logger *logging.Logger) {
	if err := c.Help(); err != nil {
		logger.Warnf("unable to print help: %s", err.Error())
	}
}

// Succeed logs a warning if err is non-nil, describing the task that failed.
func Succeed(err error, task string, logger *logging.Logger) {
	if err != nil {
		logger.Warnf("unable to %s: %s", task, err.Error())
	}
}
