package process

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Current represents the current process.
var Current struct {
	// ExecutablePath is the path to the current executable.
	ExecutablePath string
	// ExecutableParentPath is the path to the directory containing the
	// current executable.
	ExecutableParentPath string
}

func init() {
	// Compute the current executable's path.
	path, err := os.Executable()
	if err != nil {
		panic(errors.Wrap(err, "unable to compute current executable's path"))
	}
	Current.ExecutablePath = path
	Current.ExecutableParentPath = filepath.Dir(path)
}
