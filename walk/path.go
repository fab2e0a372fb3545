package walk

import "strings"

// join combines a start point argument with a relative path accumulated
// during traversal, preserving the start point's own form exactly as
// find does: "find ." prints "./foo", and "find /tmp" prints "/tmp/foo",
// rather than normalizing away the user's chosen prefix the way
// filepath.Join would (filepath.Join("a/", "b") == "a/b", which is fine,
// but filepath.Join(".", "b") == "b", dropping the "./" that find
// preserves).
func join(startPoint, relative string) string {
	if relative == "" {
		return startPoint
	}
	if strings.HasSuffix(startPoint, "/") {
		return startPoint + relative
	}
	return startPoint + "/" + relative
}
