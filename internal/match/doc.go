// Package match provides key normalization, Levenshtein distance, and
// "did you mean" ranking for misspelled config values and keys.
//
// Key functions:
//   - Normalize: folds case and strips separators ("Duty_On" -> "dutyon")
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known spellings against an unknown one
package match
