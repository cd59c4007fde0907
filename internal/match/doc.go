// Package match provides identifier normalization, Levenshtein distance and
// candidate ranking used to attach "did you mean" suggestions to unknown
// names in spec files (profiles, families, types, functions).
//
// Key functions:
//   - NormalizeIdent: normalizes identifiers for fuzzy matching
//   - Levenshtein: computes edit distance between strings
//   - RankCandidates: ranks known names against an unknown one
//   - Suggest: returns the few names worth proposing to the user
package match
