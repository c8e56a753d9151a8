package api

import "fmt"

// RequestError covers every way a backend call can fail: a non-2xx
// response, an unreadable body, or a transport-level failure. The layers
// above never distinguish those cases. Message holds the server-supplied
// message when one was present, otherwise the endpoint's fallback text.
type RequestError struct {
	StatusCode int // zero when the request never reached the server
	Message    string
	cause      error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, e.Message)
}

func (e *RequestError) Unwrap() error { return e.cause }

// errorBody is the error shape the backend promises: {"message": "..."}.
type errorBody struct {
	Message string `json:"message"`
}
