//go:build windows

package must

import (
	"golang.org/x/sys/windows"

	"github.com/wayfarer-tools/findx/logging"
)

// CloseWindowsHandle closes a Windows handle, logging a warning on failure.
func CloseWindowsHandle(wh windows.Handle, logger *logging.Logger) {
	if err := windows.CloseHandle(wh); err != nil {
		logger.Warnf("unable to close handle %d: %s", wh, err.Error())
	}
}
