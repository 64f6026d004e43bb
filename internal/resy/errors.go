package resy

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid resy credentials")
	ErrMalformedResponse  = errors.New("malformed response body")
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("resy %s failed: %s (status=%d)", e.Op, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("resy %s failed (status=%d)", e.Op, e.StatusCode)
}

func newAPIError(op string, status int, body []byte) *APIError {
	// resy puts a human readable reason in "message" when it has one
	var r struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &r)
	return &APIError{Op: op, StatusCode: status, Message: r.Message, Body: body}
}

// StatusCode returns the HTTP status carried by an *APIError anywhere in err's chain.
func StatusCode(err error) (int, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode, true
	}
	return 0, false
}
