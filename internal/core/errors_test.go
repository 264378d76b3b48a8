package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	e := &Error{Code: "TEST", Message: "something failed"}
	if e.Error() != "[TEST] something failed" {
		t.Errorf("unexpected message: %s", e.Error())
	}

	wrapped := WrapError(e, fmt.Errorf("root cause"))
	if wrapped.Error() != "[TEST] something failed: root cause" {
		t.Errorf("unexpected wrapped message: %s", wrapped.Error())
	}
}

func TestError_Is(t *testing.T) {
	cause := fmt.Errorf("shares held: 50")
	err := WrapError(ErrInsufficientShares, cause)

	if !errors.Is(err, ErrInsufficientShares) {
		t.Error("wrapped error should match its base by code")
	}
	if errors.Is(err, ErrUnknownStrategy) {
		t.Error("error should not match a different code")
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := WrapError(ErrConfigInvalid, cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause through Unwrap")
	}
}
