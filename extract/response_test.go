package extract

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

type statusErr struct {
	status int
}

func (e *statusErr) Error() string {
	return "teapot refused"
}

func (e *statusErr) StatusCode() int {
	return e.status
}

func TestAsResponseNil(t *testing.T) {
	if AsResponse(nil) != nil {
		t.Fatal("nil error should stay nil")
	}
}

func TestAsResponsePassthrough(t *testing.T) {
	orig := &Response{StatusCode: http.StatusUnauthorized, Message: "no token"}

	got := AsResponse(orig)
	if got != orig {
		t.Fatal("existing *Response should pass through unchanged")
	}
}

func TestAsResponseWrapped(t *testing.T) {
	orig := &Response{StatusCode: http.StatusNotFound, Message: "gone"}
	wrapped := fmt.Errorf("extracting field: %w", orig)

	got := AsResponse(wrapped)

	var resp *Response
	if !errors.As(got, &resp) {
		t.Fatalf("got %T", got)
	}

	if resp != orig {
		t.Fatal("wrapped *Response should unwrap to the original")
	}
}

func TestAsResponseStatusCoder(t *testing.T) {
	got := AsResponse(&statusErr{status: http.StatusTeapot})

	var resp *Response
	if !errors.As(got, &resp) {
		t.Fatalf("got %T", got)
	}

	if resp.StatusCode != http.StatusTeapot {
		t.Errorf("got status %d", resp.StatusCode)
	}

	if resp.Message != "teapot refused" {
		t.Errorf("got message %q", resp.Message)
	}
}

func TestAsResponseGenericError(t *testing.T) {
	got := AsResponse(errors.New("boom"))

	var resp *Response
	if !errors.As(got, &resp) {
		t.Fatalf("got %T", got)
	}

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("got status %d", resp.StatusCode)
	}

	if resp.Error() != "boom" {
		t.Errorf("got %q", resp.Error())
	}
}
