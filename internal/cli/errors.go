package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Input errors
	ErrInvalidInput = "INVALID_INPUT"

	// Resolution errors
	ErrNoMatch = "NO_MATCH"

	// Configuration errors
	ErrConfigInvalid  = "CONFIG_INVALID"
	ErrDatasetInvalid = "DATASET_INVALID"
	ErrUnknownRegion  = "UNKNOWN_REGION"

	// File errors
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnFallbackNow    = "FALLBACK_TO_NOW"
	WarnYearNotCovered = "YEAR_NOT_COVERED"
)
