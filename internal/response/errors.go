package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Storage ───────────────────────────────────────────────────────
	ErrLoadFailed ErrCode = "LOAD_FAILED"
	ErrSaveFailed ErrCode = "SAVE_FAILED"

	// ─── Routing ───────────────────────────────────────────────────────
	ErrMethodNotAllowed ErrCode = "METHOD_NOT_ALLOWED"
	ErrNotFound         ErrCode = "NOT_FOUND"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns the static client-facing message for a given error code.
// Messages never carry error details.
func GetMessage(code ErrCode) string {
	switch code {
	case ErrInvalidPayload:
		return "Invalid data format"
	case ErrLoadFailed:
		return "Failed to retrieve questions"
	case ErrSaveFailed:
		return "Failed to save questions"
	case ErrMethodNotAllowed:
		return "Method not allowed"
	case ErrNotFound:
		return "Not found"
	case ErrRateLimitExceeded:
		return "Too many requests"
	default:
		return "Internal server error"
	}
}
