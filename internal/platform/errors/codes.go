// Package errors provides structured errors shared by the binding layer, the
// script engine and world storage.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Argument errors
	CodeArgumentMissing Code = "ARGUMENT_MISSING"
	CodeArgumentType    Code = "ARGUMENT_TYPE"

	// Dispatch errors
	CodeUnknownBinding Code = "UNKNOWN_BINDING"

	// Script errors
	CodeScriptLoad Code = "SCRIPT_LOAD"
	CodeScriptRun  Code = "SCRIPT_RUN"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"
	CodeStorage  Code = "STORAGE"
)

// IsArgument reports whether the code describes a misused script argument.
func (c Code) IsArgument() bool {
	return c == CodeArgumentMissing || c == CodeArgumentType
}
