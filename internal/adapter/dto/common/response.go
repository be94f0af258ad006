package common

// Response is the generic success envelope
type Response struct {
	Data interface{} `json:"data,omitempty"`
}

// ErrorResponse is the generic error envelope
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}
