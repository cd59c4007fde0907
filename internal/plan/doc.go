// Package plan turns a validated spec file into the normalised Model that
// code generation consumes.
//
// Build pipeline:
//  1. Structural validation of the spec file (package spec)
//  2. Profile resolution: explicit override, then the file, then the fallback
//  3. Per spec: owned/profile gating, family resolution against the
//     catalogue (explicit subset or every applicable family), implied
//     requirements, canonical ordering
//  4. Generation-time predicate checks: default validity and samples
//  5. Optional collaborator contract checks against the analysed package
//
// Unsatisfiable combinations are specification-time errors carrying the
// file, line and field of the offending entry; nothing is deferred to the
// generated code.
package plan
