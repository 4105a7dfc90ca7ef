package global

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type APIResponse struct {
	Success bool                   `json:"success"`
	Data    interface{}            `json:"data,omitempty"`
	Message string                 `json:"message,omitempty"`
	Errors  []ValidationError      `json:"errors,omitempty"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

func SuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Data:    data,
	}
}

func ErrorResponse(message string, errors []ValidationError) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
		Errors:  errors,
	}
}

// ErrorResponseWithMeta carries machine-readable hints alongside the error,
// e.g. remaining vault slots or the maximum redeemable points.
func ErrorResponseWithMeta(message string, errors []ValidationError, meta map[string]interface{}) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
		Errors:  errors,
		Meta:    meta,
	}
}
