// Package match provides tag normalization, Levenshtein distance and
// candidate ranking used to suggest corrections for misspelled type tags.
//
// Key functions:
//   - NormalizeTag: folds case and separators
//   - Levenshtein: computes edit distance between strings
//   - Rank / Suggest: rank known tags against a word
package match
