// Package registry stores versioned schema documents with metadata, tags,
// and dependency tracking.
//
// An Entry is identified by its (name, version) pair. Registration runs
// three checks in order: the schema document's structural shape, uniqueness
// of the pair, and resolvability of every declared dependency; each failure
// is a hard error from the valerrors package. "Latest" follows registration
// order, and exactly one version per name carries the Current flag at a
// time.
//
// The registry stores and serves schemas; it never validates data against
// them. Pair it with the schema package for that.
package registry
