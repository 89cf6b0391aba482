package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorMessage(t *testing.T) {
	err := New("TEST", "something broke", http.StatusBadRequest)
	if err.Error() != "something broke" {
		t.Fatalf("unexpected message: %q", err.Error())
	}

	wrapped := err.WithInternal(errors.New("root cause"))
	if wrapped.Error() != "something broke: root cause" {
		t.Fatalf("unexpected wrapped message: %q", wrapped.Error())
	}
}

func TestWithInternalPreservesSentinelIdentity(t *testing.T) {
	wrapped := ErrAccountNotFound.WithInternal(errors.New("no rows"))

	if !errors.Is(wrapped, ErrAccountNotFound) {
		t.Fatal("expected wrapped error to match its sentinel")
	}
	if errors.Is(wrapped, ErrBadCredential) {
		t.Fatal("expected no match against a different sentinel")
	}
}

func TestUnwrapExposesInternal(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := ErrStoreUnavailable.WithInternal(cause)

	if !errors.Is(wrapped, cause) {
		t.Fatal("expected internal error to be reachable via errors.Is")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil) != nil {
		t.Fatal("expected nil for nil input")
	}

	appErr := FromError(ErrNotVerified)
	if appErr.Code != ErrNotVerified.Code {
		t.Fatalf("expected code %q, got %q", ErrNotVerified.Code, appErr.Code)
	}

	generic := FromError(errors.New("boom"))
	if generic.Code != ErrInternalServer.Code {
		t.Fatalf("expected internal server code, got %q", generic.Code)
	}
	if generic.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected 500 status, got %d", generic.StatusCode)
	}
}

func TestFromErrorUnwrapsFmtWrapped(t *testing.T) {
	wrapped := fmt.Errorf("verify: %w", ErrAlreadyVerified)

	appErr := FromError(wrapped)
	if appErr.Code != ErrAlreadyVerified.Code {
		t.Fatalf("expected already-verified code, got %q", appErr.Code)
	}
}
