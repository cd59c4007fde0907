// Package catalog defines the fixed catalogue of generated method families,
// the environment profiles generated code may target, and the matrix that
// decides, for every family and profile, whether the family is implemented,
// degraded or omitted.
//
// Key types:
//   - Profile: core < alloc < std capability levels
//   - Family: a named group of generated methods (eq, ord, hash, ...)
//   - Inner: the primitive sequence kind wrapped by a custom type
//   - Support: Implemented, Degraded or Omitted
//
// The catalogue is the single source of truth for profile gating: the
// planner rejects explicit requests that a profile cannot satisfy, and the
// generator asks Facilities which import paths a fragment references.
package catalog
