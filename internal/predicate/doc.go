// Package predicate compiles the optional generation-time mirror of a
// spec's validation predicate.
//
// The real predicate is Go code in the user's package and only runs once
// the generated code is compiled. The mirror is an expr-lang expression over
// the candidate value `s` that lets slicegen reject an invalid default or a
// mislabelled sample before any code is written.
//
// Functions available to expressions:
//   - bytes(s): the bytes of s as integers
//   - runes(s): the code points of s as integers
//   - validUTF8(s): whether s is valid UTF-8
//   - isASCII(s): whether every byte of s is below 0x80
//
// Example:
//
//	all(bytes(s), {# < 128}) && len(s) <= 64
package predicate
