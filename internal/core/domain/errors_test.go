package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		msg  string
	}{
		{"ErrNotFound", ErrNotFound, "not found"},
		{"ErrInvalidInput", ErrInvalidInput, "invalid input"},
		{"ErrUnauthorized", ErrUnauthorized, "unauthorized"},
		{"ErrForbidden", ErrForbidden, "forbidden"},
		{"ErrTokenExpired", ErrTokenExpired, "token expired"},
		{"ErrSessionNotFound", ErrSessionNotFound, "session not found"},
		{"ErrInvalidCredentials", ErrInvalidCredentials, "invalid credentials"},
		{"ErrInvalidProvider", ErrInvalidProvider, "invalid provider"},
		{"ErrAPIKeyInvalid", ErrAPIKeyInvalid, "api key invalid or missing"},
		{"ErrAIUnavailable", ErrAIUnavailable, "ai service unavailable"},
		{"ErrStoreUnavailable", ErrStoreUnavailable, "document store unavailable"},
		{"ErrMalformedOutput", ErrMalformedOutput, "malformed model output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.msg {
				t.Errorf("expected %q, got %q", tt.msg, tt.err.Error())
			}
		})
	}
}

func TestErrorsAreDistinct(t *testing.T) {
	allErrors := []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrUnauthorized,
		ErrForbidden,
		ErrTokenExpired,
		ErrTokenInvalid,
		ErrSessionNotFound,
		ErrInvalidCredentials,
		ErrInvalidProvider,
		ErrAPIKeyInvalid,
		ErrAIUnavailable,
		ErrStoreUnavailable,
		ErrMalformedOutput,
	}

	for i, err1 := range allErrors {
		for j, err2 := range allErrors {
			if i != j && errors.Is(err1, err2) {
				t.Errorf("errors should be distinct: %v and %v", err1, err2)
			}
		}
	}
}

func TestErrorsIs_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("match_documents rpc: %w", ErrStoreUnavailable)
	if !errors.Is(wrapped, ErrStoreUnavailable) {
		t.Error("wrapped error should match sentinel")
	}
	if errors.Is(wrapped, ErrAIUnavailable) {
		t.Error("wrapped error should not match a different sentinel")
	}
}
