// Package errors provides structured error handling with i18n support.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Pattern errors
	CodePatternCompile Code = "PATTERN_COMPILE_FAILED"
	CodePatternEmpty   Code = "PATTERN_EMPTY"

	// Flag errors
	CodeFlagUnknown     Code = "FLAG_UNKNOWN"
	CodeFlagWrongEngine Code = "FLAG_WRONG_ENGINE"

	// Subject errors
	CodeSubjectTooLong Code = "SUBJECT_TOO_LONG"

	// Engine errors
	CodeEngineUnknown   Code = "ENGINE_UNKNOWN"
	CodeEngineLoading   Code = "ENGINE_LOADING"
	CodeEngineBootstrap Code = "ENGINE_BOOTSTRAP_FAILED"
	CodeEngineExecution Code = "ENGINE_EXECUTION_FAILED"

	// Snapshot errors
	CodeSnapshotCorrupt    Code = "SNAPSHOT_CORRUPT"
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
	CodeNotFound           Code = "NOT_FOUND"

	// Snippet errors
	CodeSnippetKindUnknown Code = "SNIPPET_KIND_UNKNOWN"
)

// HTTPStatus maps the code to the status the web surface responds with.
// Validation warnings never reach this mapping; they ride along a 200.
func (c Code) HTTPStatus() int {
	switch c {
	case CodePatternCompile, CodePatternEmpty, CodeFlagUnknown, CodeFlagWrongEngine,
		CodeSubjectTooLong, CodeEngineUnknown, CodeSnippetKindUnknown:
		return http.StatusUnprocessableEntity
	case CodeEngineLoading:
		return http.StatusAccepted
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
