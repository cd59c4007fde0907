// Package diagnostic provides structured specification-time errors,
// warnings and infos for slicegen.
//
// Every diagnostic carries a stable code, the spec file and YAML line it
// refers to, the spec name and the offending field path, so tooling can
// point at the exact entry that prevented generation.
//
// Key capabilities:
//   - Severity buckets (errors, warnings, infos) with Merge
//   - "did you mean" suggestions attached to unknown names
//   - Deterministic ordering for printing
package diagnostic
