package action

import (
	"os"

	"github.com/wayfarer-tools/findx/eval"
)

// Delete removes entry's underlying filesystem object: os.Remove for files
// and symbolic links, os.Remove for (now-empty, since -delete forces
// post-order traversal) directories. A failure is reported back to the
// caller (rather than just logged) since, unlike -fprint/-ls output
// failures, a failed -delete changes whether the overall command should
// exit non-zero.
func (r *Registry) Delete(entry *eval.Entry) (bool, error) {
	if err := os.Remove(entry.Path); err != nil {
		return false, err
	}
	return true, nil
}
