// Package analyze provides package loading and the collaborator contract
// checks slicegen runs against the user's package.
//
// It uses golang.org/x/tools/go/packages with go/types to find the
// user-declared custom types, their declared methods and the validation
// predicates, while hiding any previously generated output so stale
// generated code never masks or collides with what is about to be emitted.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: kind of the underlying type and user-declared methods
//   - FuncInfo: package-level function with its signature
//   - Issue: a contract violation with a stable diagnostic code
package analyze
