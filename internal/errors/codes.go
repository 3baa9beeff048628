// Package errors provides the coded validation errors produced while compiling a game
// definition.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Document errors
	CodeSchemaViolation          Code = "SCHEMA_VIOLATION"
	CodeUnsupportedSchemaVersion Code = "UNSUPPORTED_SCHEMA_VERSION"
	CodeInvalidConfiguration     Code = "INVALID_CONFIGURATION"

	// Definition errors
	CodeDuplicateDefinition Code = "DUPLICATE_DEFINITION"
	CodeUndefinedReference  Code = "UNDEFINED_REFERENCE"
	CodeMissingDefinition   Code = "MISSING_DEFINITION"

	// Template errors
	CodeDependencyCycle     Code = "DEPENDENCY_CYCLE"
	CodeConflictingTemplate Code = "CONFLICTING_TEMPLATE"
	CodeMissingTemplate     Code = "MISSING_TEMPLATE"
	CodeInvalidGeometry     Code = "INVALID_GEOMETRY"

	// Layout errors
	CodeLayoutSize          Code = "LAYOUT_SIZE"
	CodeUnsatisfiableLayout Code = "UNSATISFIABLE_LAYOUT"
	CodeAmbiguousLayout     Code = "AMBIGUOUS_LAYOUT"
	CodeOutOfBounds         Code = "OUT_OF_BOUNDS"
)

// Title returns a short human-readable label for the code.
func (c Code) Title() string {
	switch c {
	case CodeSchemaViolation:
		return "schema violation"
	case CodeUnsupportedSchemaVersion:
		return "unsupported schema version"
	case CodeInvalidConfiguration:
		return "invalid configuration"
	case CodeDuplicateDefinition:
		return "duplicate definition"
	case CodeUndefinedReference:
		return "undefined reference"
	case CodeMissingDefinition:
		return "missing definition"
	case CodeDependencyCycle:
		return "dependency cycle"
	case CodeConflictingTemplate:
		return "conflicting template"
	case CodeMissingTemplate:
		return "missing template"
	case CodeInvalidGeometry:
		return "invalid geometry"
	case CodeLayoutSize:
		return "invalid layout size"
	case CodeUnsatisfiableLayout:
		return "unsatisfiable layout"
	case CodeAmbiguousLayout:
		return "ambiguous layout"
	case CodeOutOfBounds:
		return "out of bounds"
	default:
		return "unknown error"
	}
}
