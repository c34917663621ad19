// Package pathutil builds the dot/bracket document paths used in validation
// errors (e.g. "user.metrics[0]").
package pathutil

import "fmt"

// Join extends a document path with an object key. The root path is the
// empty string, so Join("", "id") is "id" and Join("user", "id") is
// "user.id".
func Join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// Index extends a document path with an array index, e.g. "tags[2]".
func Index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// Child is like Join but keeps the leading dot for keys reported relative to
// an object node ("" + "age" -> ".age"), matching the path form used for
// missing required fields.
func Child(path, key string) string {
	return path + "." + key
}
