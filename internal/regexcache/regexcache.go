// Package regexcache provides a process-wide cache of compiled regular
// expressions shared by the schema and typecheck packages.
//
// Schema pattern constraints are typically evaluated many times against the
// same pattern string; caching the compiled form keeps repeated validation
// cheap. Patterns that fail to compile are cached as failures so the compile
// error is not re-attempted per document.
package regexcache

import (
	"regexp"
	"sync"
)

var (
	mu       sync.RWMutex
	compiled = make(map[string]*regexp.Regexp)
	failed   = make(map[string]struct{})
)

// Get returns the compiled form of pattern, compiling and caching it on first
// use. The second return is false when the pattern does not compile;
// non-compiling patterns are treated as non-fatal by all callers.
func Get(pattern string) (*regexp.Regexp, bool) {
	mu.RLock()
	re, ok := compiled[pattern]
	if ok {
		mu.RUnlock()
		return re, true
	}
	_, bad := failed[pattern]
	mu.RUnlock()
	if bad {
		return nil, false
	}

	re, err := regexp.Compile(pattern)

	mu.Lock()
	defer mu.Unlock()
	if err != nil {
		failed[pattern] = struct{}{}
		return nil, false
	}
	compiled[pattern] = re
	return re, true
}

// Matches reports whether s matches pattern. It returns match=false,
// ok=false when the pattern does not compile.
func Matches(pattern, s string) (match, ok bool) {
	re, ok := Get(pattern)
	if !ok {
		return false, false
	}
	return re.MatchString(s), true
}
