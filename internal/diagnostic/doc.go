// Package diagnostic provides structured warnings and errors collected while
// an export rule is prepared.
//
// Key capabilities:
//   - Duplicate leaf and duplicate key field warnings
//   - Field resolution errors gathered for a whole rule
//   - Combining error diagnostics into a single error that unwraps to
//     every cause
package diagnostic
