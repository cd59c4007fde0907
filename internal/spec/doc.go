// Package spec provides the YAML schema, parsing, defaults, structural
// validation and discovery of slicegen specification files.
//
// A spec file declares, for each validated slice type, the user's own type
// names and predicate. slicegen never declares those types itself; it only
// attaches generated behaviour to them.
//
// # Schema Overview
//
//	version: "1"
//	package: ascii
//	profile: std            # core | alloc | std
//	output: ascii_slicegen.go
//	tests: true             # also emit <output>_test.go from samples
//	specs:
//	  - custom: AsciiStr    # type AsciiStr string
//	    inner: string       # string | []byte
//	    error: "*AsciiError"
//	    validate: validateASCII
//	    check: 'isASCII(s)' # generation-time mirror of validate
//	    default: ""
//	    owned:
//	      custom: AsciiBuf  # type AsciiBuf []byte
//	      validate: validateASCIIBytes
//	    families: [validate, tryfrom, eq, ord, display]
//	    samples:
//	      accept: ["hello"]
//	      reject: ["héllo"]
//
// The spec file is the only place a specification exists: it is consumed at
// generation time and never becomes a value in generated code.
//
// Every key remembers its YAML line so diagnostics point at the offending
// field. Unknown keys are reported with "did you mean" suggestions rather
// than silently ignored.
package spec
