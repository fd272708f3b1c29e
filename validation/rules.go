package validation

const (
	// Parsing
	RuleValidationTypeMismatch      = "validation-type-mismatch"
	RuleValidationUnrecognizedField = "validation-unrecognized-field"
	RuleValidationInvalidSyntax     = "validation-invalid-syntax"
	RuleValidationSupportedVersion  = "validation-supported-version"
	RuleValidationInvalidReference  = "validation-invalid-reference"
	RuleValidationInvalidFormat     = "validation-invalid-format"
	RuleValidationUnsupported       = "validation-unsupported"

	// Resolution
	RuleReferenceNotFound     = "reference-not-found"
	RuleCircularReference     = "reference-circular"
	RuleDocumentNotRegistered = "reference-document-not-registered"
)
