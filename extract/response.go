package extract

import (
	"errors"
	"net/http"
)

// Response is the uniform rejection for per-field extraction. Field types
// fail with arbitrary error types; generated code converts them all to
// this one representation before propagating.
type Response struct {
	// StatusCode is the HTTP status the rejection maps to.
	StatusCode int
	// Message is the human-readable rejection text.
	Message string
}

// Error implements the error interface.
func (r *Response) Error() string {
	return r.Message
}

// StatusCoder is implemented by extraction errors that carry their own
// HTTP status.
type StatusCoder interface {
	StatusCode() int
}

// AsResponse converts an extraction error into the uniform *Response
// rejection. Errors that already are a *Response pass through unchanged;
// errors exposing a status code keep it; everything else becomes a 400.
func AsResponse(err error) error {
	if err == nil {
		return nil
	}

	var resp *Response
	if errors.As(err, &resp) {
		return resp
	}

	status := http.StatusBadRequest

	var sc StatusCoder
	if errors.As(err, &sc) {
		status = sc.StatusCode()
	}

	return &Response{
		StatusCode: status,
		Message:    err.Error(),
	}
}
