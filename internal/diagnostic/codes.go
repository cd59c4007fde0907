package diagnostic

// Stable diagnostic codes.
const (
	CodeParse            = "parse_error"
	CodeVersion          = "unsupported_version"
	CodeRequired         = "required_field"
	CodeUnknownField     = "unknown_field"
	CodeInvalidOutput    = "invalid_output"
	CodeInvalidPackage   = "invalid_package"
	CodeInvalidIdent     = "invalid_identifier"
	CodeInvalidType      = "invalid_type"
	CodeInvalidInner     = "invalid_inner"
	CodeDuplicate        = "duplicate_type"
	CodeUnknownProfile   = "unknown_profile"
	CodeUnknownFamily    = "unknown_family"
	CodeDuplicateFamily  = "duplicate_family"
	CodeOwnedNeedsAlloc  = "owned_requires_alloc"
	CodeFamilyProfile    = "family_requires_profile"
	CodeFamilyOwned      = "family_requires_owned"
	CodeFamilyInner      = "family_requires_string_inner"
	CodeDefaultMissing   = "default_missing"
	CodeFamilyImplied    = "family_implied"
	CodeFamilyDegraded   = "family_degraded"
	CodeCheckCompile     = "check_invalid"
	CodeDefaultUnverify  = "default_unverifiable"
	CodeDefaultInvalid   = "default_invalid"
	CodeSampleMismatch   = "sample_mismatch"
	CodeSamplesUnchecked = "samples_unverifiable"
	CodeTypeNotFound     = "type_not_found"
	CodeNotTransparent   = "custom_not_transparent"
	CodeFuncNotFound     = "validate_not_found"
	CodeFuncSignature    = "validate_signature"
	CodeMethodConflict   = "method_conflict"
	CodeTestsOmitted     = "tests_omitted"
)
