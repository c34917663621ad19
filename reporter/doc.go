// Package reporter aggregates validation errors from every valkit subsystem
// into one shared shape, summarizes them, and proposes fixes.
//
// The schema, typecheck, and integrity packages each keep their own error
// vocabulary; callers normalize findings into reporter.Error records and
// accumulate them here. The reporter offers filtered views (by type,
// severity, or path substring), aggregate summaries, and a suggestion engine
// that matches hand-registered pattern rules first and falls back to fixed
// per-type suggestions, deduplicating the result by title.
//
// DetectErrors additionally supports proactive scanning: registered
// substring patterns are matched against a string-typed document root and
// synthesize errors on contact.
package reporter
