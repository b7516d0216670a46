package errors

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "EMPTY_CART"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Detailed error information (optional)
}

// Notice converts an AppError into the shape used for user-facing notifications.
func Notice(err AppError) *ErrorInfo {
	info := &ErrorInfo{
		Code:    err.ErrorCode(),
		Message: err.Message(),
	}
	if err.Kind() != KindInternal && err.Kind() != KindCollaborator && err.Details() != "" {
		info.Details = err.Details()
	}

	return info
}
