package errors

import (
	stderr "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewError(t *testing.T) {
	t.Parallel()

	err := NewError(ErrCodeInvalidPolicy, "unknown eviction policy")

	if err.Code != ErrCodeInvalidPolicy {
		t.Errorf("Code = %s, want %s", err.Code, ErrCodeInvalidPolicy)
	}
	if err.Category != CategoryConfiguration {
		t.Errorf("Category = %s, want %s", err.Category, CategoryConfiguration)
	}
	if err.Retryable {
		t.Error("configuration errors should not be retryable by default")
	}
	if err.Timestamp.IsZero() {
		t.Error("Timestamp should be set")
	}
}

func TestGetCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code ErrorCode
		want ErrorCategory
	}{
		{ErrCodeInvalidPolicy, CategoryConfiguration},
		{ErrCodeInvalidCapacity, CategoryConfiguration},
		{ErrCodeConfigLoad, CategoryConfiguration},
		{ErrCodeTierIndex, CategoryHierarchy},
		{ErrCodeEmptyPolicy, CategoryHierarchy},
		{ErrCodeFetchFailed, CategoryBacking},
		{ErrCodeConnectionTimeout, CategoryBacking},
		{ErrCodeObjectNotFound, CategoryBacking},
		{ErrCodeInternalError, CategoryInternal},
		{ErrCodeUnknownError, CategoryInternal},
	}

	for _, tt := range tests {
		if got := GetCategory(tt.code); got != tt.want {
			t.Errorf("GetCategory(%s) = %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	err := NewError(ErrCodeTierIndex, "tier index out of range").
		WithComponent("hierarchy").
		WithOperation("RemoveTier")

	msg := err.Error()
	if !strings.Contains(msg, "hierarchy") || !strings.Contains(msg, "RemoveTier") {
		t.Errorf("Error() = %q, want component and operation included", msg)
	}
	if !strings.Contains(msg, string(ErrCodeTierIndex)) {
		t.Errorf("Error() = %q, want error code included", msg)
	}
}

func TestErrorIs(t *testing.T) {
	t.Parallel()

	err := NewError(ErrCodeInvalidCapacity, "capacity must be positive")
	target := NewError(ErrCodeInvalidCapacity, "different message")

	if !stderr.Is(err, target) {
		t.Error("errors with the same code should match via errors.Is")
	}

	other := NewError(ErrCodeInvalidPolicy, "unrelated")
	if stderr.Is(err, other) {
		t.Error("errors with different codes should not match")
	}
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := fmt.Errorf("underlying failure")
	err := NewError(ErrCodeFetchFailed, "fetch failed").WithCause(cause)

	if !stderr.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestWithDetailAndContext(t *testing.T) {
	t.Parallel()

	err := NewError(ErrCodeInvalidCapacity, "capacity must be positive").
		WithDetail("capacity", -1).
		WithContext("tier", "L1")

	if err.Details["capacity"] != -1 {
		t.Errorf("Details[capacity] = %v, want -1", err.Details["capacity"])
	}
	if err.Context["tier"] != "L1" {
		t.Errorf("Context[tier] = %q, want L1", err.Context["tier"])
	}

	s := err.String()
	if !strings.Contains(s, "TierCacheError{") {
		t.Errorf("String() = %q, want TierCacheError prefix", s)
	}
}

func TestRetryableDefaults(t *testing.T) {
	t.Parallel()

	if !IsRetryableByDefault(ErrCodeConnectionTimeout) {
		t.Error("connection timeout should be retryable")
	}
	if IsRetryableByDefault(ErrCodeTierIndex) {
		t.Error("tier index errors should not be retryable")
	}
}

func TestJSON(t *testing.T) {
	t.Parallel()

	err := NewError(ErrCodeConfigLoad, "cannot read file")
	out := err.JSON()
	if !strings.Contains(out, `"code":"CONFIG_LOAD"`) {
		t.Errorf("JSON() = %q, want code field", out)
	}
}
