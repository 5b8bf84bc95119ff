package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeTokenExpired           = "token_expired"
	ErrCodeAuthenticationRequired = "authentication_required"
	ErrCodeForbidden              = "forbidden"

	// Request errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"
	ErrCodeUnknownKind      = "unknown_scene_kind"

	// Resource errors
	ErrCodeNotFound        = "not_found"
	ErrCodeGameNotFound    = "game_not_found"
	ErrCodeSessionNotFound = "session_not_found"
	ErrCodeConflict        = "conflict"

	// Game flow errors
	ErrCodeNotOwner    = "not_owner"
	ErrCodeSessionOver = "session_over"
	ErrCodeSessionBusy = "session_busy"
	ErrCodeNotQueued   = "not_in_feed"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"
)
