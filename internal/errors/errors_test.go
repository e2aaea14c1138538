package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("disk on fire")
	err := Wrap(ErrInternalServer, cause)

	if err.Code != "INTERNAL_ERROR" || err.StatusCode != http.StatusInternalServerError {
		t.Errorf("unexpected wrapped error %+v", err)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped error to unwrap to its cause")
	}
	if !stderrors.Is(err, ErrInternalServer) {
		t.Error("expected wrapped error to match its sentinel")
	}
	if err.Error() != ErrInternalServer.Message {
		t.Errorf("expected sentinel message, got %q", err.Error())
	}
}

func TestWithMessage(t *testing.T) {
	err := WithMessage(ErrInvalidInput, "amount must be positive")
	if err.Message != "amount must be positive" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if ErrInvalidInput.Message != "Invalid input" {
		t.Error("sentinel must not be mutated")
	}

	var appErr *AppError
	wrapped := fmt.Errorf("handler: %w", err)
	if !stderrors.As(wrapped, &appErr) || appErr.Code != "INVALID_INPUT" {
		t.Error("expected errors.As to find the AppError")
	}
	if stderrors.Is(err, ErrNotFound) {
		t.Error("different codes must not match")
	}
}

func TestFrom(t *testing.T) {
	appErr, ok := From(fmt.Errorf("service: %w", Wrap(ErrGoalNotFound, stderrors.New("record not found"))))
	if !ok || appErr.Code != "GOAL_NOT_FOUND" || appErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected goal not found, got %+v (ok=%v)", appErr, ok)
	}

	appErr, ok = From(stderrors.New("boom"))
	if ok || appErr != ErrInternalServer {
		t.Errorf("expected internal server error fallback, got %+v (ok=%v)", appErr, ok)
	}
}
