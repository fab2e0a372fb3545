package action

import (
	"fmt"

	"github.com/wayfarer-tools/findx/pkg/must"
)

// Print writes path followed by a newline to standard output.
func (r *Registry) Print(path string) error {
	must.Fprint(r.Stdout, r.Logger, path, "\n")
	return nil
}

// Print0 writes path followed by a NUL byte to standard output, for safe
// consumption by "xargs -0".
func (r *Registry) Print0(path string) error {
	_, err := fmt.Fprint(r.Stdout, path, "\x00")
	return err
}

// Fprint writes path followed by a newline to the named output file.
func (r *Registry) Fprint(file, path string) error {
	w, err := r.openOutputFile(file)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, path, "\n")
	return err
}

// Fprint0 writes path followed by a NUL byte to the named output file.
func (r *Registry) Fprint0(file, path string) error {
	w, err := r.openOutputFile(file)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, path, "\x00")
	return err
}
