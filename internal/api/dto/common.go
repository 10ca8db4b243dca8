package dto

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// MessageResponse is the body of requests that only report success
type MessageResponse struct {
	Message string `json:"message"`
}
