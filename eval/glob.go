package eval

import (
	"github.com/wayfarer-tools/findx/expr"
	"github.com/wayfarer-tools/findx/match"
)

// matchGlob applies node's glob pattern (already validated at parse time)
// against subject, folding case for the "i" family of primaries.
func matchGlob(node *expr.Node, subject string) (bool, error) {
	return match.Glob(node.Pattern, subject, node.FoldCase)
}
