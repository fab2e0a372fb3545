package filesystem

import (
	"os"

	"github.com/pkg/errors"
)

// DirectoryEntries returns the names of all entries in the directory at the
// specified path, in whatever order the operating system's directory reader
// returns them. Unlike a general-purpose directory lister, it deliberately
// does not sort the result: several traversal semantics (in particular, how
// -maxdepth/-prune interact with directories that mutate during a walk) are
// specified in terms of raw readdir order, and imposing a stable sort here
// would be a behavioral change, not a cosmetic one.
func DirectoryEntries(path string) ([]string, error) {
	directory, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open directory")
	}
	defer directory.Close()

	names, err := directory.Readdirnames(0)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read directory names")
	}

	return names, nil
}
