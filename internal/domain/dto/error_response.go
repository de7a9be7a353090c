package dto

import "time"

// ErrorResponse is the JSON body of every failed API call.
//
// Fields:
//   - Message: short, user-facing summary.
//   - ErrorDetails: the underlying error text, when there is one.
//   - Timestamp: when the error was produced.
type ErrorResponse struct {
	Message      string    `json:"message" example:"invalid date"`
	ErrorDetails string    `json:"error_details,omitempty" example:"parsing time \"2024-13-01\": month out of range"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface so handlers can attach it to gin's error list.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Message: message, Timestamp: time.Now()}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
