// Package integrity verifies document integrity beyond schema conformance:
// structural checksums, cross-field constraints (not-null, uniqueness,
// foreign keys, numeric ranges, string formats), and consistency probes.
//
// A Checker accumulates expected checksums keyed by document identity and a
// list of declarative constraints, then Check runs everything against a
// document and reports all findings with a consistency score. The score
// starts at 100 and drops per violation by severity (Low 5, Medium 15, High
// 30, Critical 50), never below 0.
//
// Uniqueness across a data set requires knowledge of other records, which a
// single-document check does not have. By default a Unique constraint only
// flags explicit nulls; pass WithSeenIndex to supply the previously seen
// values per path and get real duplicate detection:
//
//	seen := map[string][]value.Value{"user.email": priorEmails}
//	result := checker.Check(doc, "user-42", integrity.WithSeenIndex(seen))
package integrity
