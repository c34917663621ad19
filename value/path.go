package value

import "strings"

// RootPath is the sentinel path addressing a whole document.
const RootPath = "root"

// At resolves a dot-separated object path against v. The empty path and the
// literal "root" address the whole document. Traversal descends object fields
// only; there is no array-index addressing.
func At(v Value, path string) (Value, bool) {
	if path == "" || path == RootPath {
		return v, true
	}

	current := v
	for _, part := range strings.Split(path, ".") {
		next, ok := current.Field(part)
		if !ok {
			return Value{}, false
		}
		current = next
	}
	return current, true
}
