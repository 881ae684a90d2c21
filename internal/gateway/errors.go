package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody bounds how much of an error response body is read.
const maxErrorBody = 64 << 10

// StatusError is a non-2xx backend response. Detail holds the parsed
// `detail` field of the error body when the backend sent one.
type StatusError struct {
	Code   int
	Status string
	Detail string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Status
}

// NotFound reports whether the error is a 404.
func (e *StatusError) NotFound() bool { return e.Code == http.StatusNotFound }

// ErrInvalidPayload indicates the backend returned a 2xx response whose
// body does not conform to the expected schema.
type ErrInvalidPayload struct {
	Operation string
	Content   json.RawMessage
	Err       error
}

func (e *ErrInvalidPayload) Error() string {
	return fmt.Sprintf("invalid %s payload: %v", e.Operation, e.Err)
}

func (e *ErrInvalidPayload) Unwrap() error { return e.Err }

// decodeError builds a StatusError from a non-2xx response, attempting
// to parse a structured {detail: ...} body first.
func decodeError(resp *http.Response) error {
	se := &StatusError{
		Code:   resp.StatusCode,
		Status: resp.Status,
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return se
	}

	var parsed struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		if parsed.Detail != "" {
			se.Detail = parsed.Detail
		} else if parsed.Message != "" {
			se.Detail = parsed.Message
		}
	}
	return se
}
