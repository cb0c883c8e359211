// Package diagnostic provides structured errors, warnings and notes
// produced when checking the annotations of a code base.
//
// Key capabilities:
//   - Malformed strict-typed values reported as errors
//   - Likely misspelled type tags reported with suggestions
//   - Aggregation across packages and declarations
package diagnostic
