package dto

// Envelope wraps every response body.
type Envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// Fail builds an unsuccessful envelope.
func Fail(message string, details ...string) Envelope {
	return Envelope{Success: false, Message: message, Errors: details}
}
