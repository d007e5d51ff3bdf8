package errors

import (
	"encoding/json"
	"net/http"
)

// wireError is the error body shape returned by the Oway API. Some endpoints
// use "message", others "error".
type wireError struct {
	Message string `json:"message"`
	ErrMsg  string `json:"error"`
	Code    string `json:"code"`
}

// FromResponse builds a classified error from a non-2xx API response.
// The body is parsed for a message and code; when neither is present the
// standard status text is used. requestID should be the id echoed by the
// server when available, else the id the client generated.
func FromResponse(status int, body []byte, requestID string) *Error {
	var we wireError
	if len(body) > 0 {
		_ = json.Unmarshal(body, &we)
	}

	message := we.Message
	if message == "" {
		message = we.ErrMsg
	}
	if message == "" {
		message = http.StatusText(status)
	}
	if message == "" {
		message = "request failed"
	}

	return FromStatus(status, message, we.Code, requestID)
}
