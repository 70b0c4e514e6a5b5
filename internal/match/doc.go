// Package match provides edit-distance based name matching used to suggest
// the intended field when an export rule names a field that does not exist.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings (rune based)
//   - Similarity: normalized, case-insensitive similarity score
//   - Suggest: ranks candidate names closest to a misspelled one
package match
