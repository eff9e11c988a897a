package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is a plain acknowledgement envelope
type MessageResponse struct {
	Message string `json:"message"`
}
