package action

import (
	"github.com/wayfarer-tools/findx/eval"
	"github.com/wayfarer-tools/findx/expr"
)

// Printf writes a compiled -printf format applied to entry to standard
// output.
func (r *Registry) Printf(format *expr.Format, entry *eval.Entry) error {
	return renderFormat(r.Stdout, format, entry)
}

// Fprintf writes a compiled -fprintf format applied to entry to the named
// output file.
func (r *Registry) Fprintf(file string, format *expr.Format, entry *eval.Entry) error {
	w, err := r.openOutputFile(file)
	if err != nil {
		return err
	}
	return renderFormat(w, format, entry)
}
