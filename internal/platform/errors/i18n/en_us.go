package i18n

// Error codes must match internal/platform/errors/codes.go. They are
// duplicated as strings to avoid an import cycle.
const (
	CodePatternCompile     = "PATTERN_COMPILE_FAILED"
	CodePatternEmpty       = "PATTERN_EMPTY"
	CodeFlagUnknown        = "FLAG_UNKNOWN"
	CodeFlagWrongEngine    = "FLAG_WRONG_ENGINE"
	CodeSubjectTooLong     = "SUBJECT_TOO_LONG"
	CodeEngineUnknown      = "ENGINE_UNKNOWN"
	CodeEngineLoading      = "ENGINE_LOADING"
	CodeEngineBootstrap    = "ENGINE_BOOTSTRAP_FAILED"
	CodeEngineExecution    = "ENGINE_EXECUTION_FAILED"
	CodeSnapshotCorrupt    = "SNAPSHOT_CORRUPT"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeNotFound           = "NOT_FOUND"
	CodeSnippetKindUnknown = "SNIPPET_KIND_UNKNOWN"
)

var enUS = map[Code]string{
	CodePatternCompile:     "The pattern could not be compiled: {{.detail}}",
	CodePatternEmpty:       "Enter a pattern to start matching.",
	CodeFlagUnknown:        "Unrecognized flag(s): {{.flags}}",
	CodeFlagWrongEngine:    "Flag(s) {{.flags}} are not supported by the {{.engine}} engine and will be ignored.",
	CodeSubjectTooLong:     "The test string is very large; matching may be slow.",
	CodeEngineUnknown:      "Unknown engine {{.engine}}.",
	CodeEngineLoading:      "The Lua engine is still loading. Try again in a moment.",
	CodeEngineBootstrap:    "The Lua engine failed to start.",
	CodeEngineExecution:    "The match run failed unexpectedly.",
	CodeSnapshotCorrupt:    "The saved session could not be restored.",
	CodeStorageUnavailable: "Session storage is unavailable; changes will not be saved.",
	CodeNotFound:           "Not found.",
	CodeSnippetKindUnknown: "Unknown snippet kind {{.kind}}.",
}
