package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeNetwork, cause, "failed to fetch")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeRetrieval, "test"),
			code:     ErrCodeRetrieval,
			expected: true,
		},
		{
			name:     "different code",
			err:      New(ErrCodeRetrieval, "test"),
			code:     ErrCodeCacheCorruption,
			expected: false,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeRetrieval,
			expected: false,
		},
		{
			name:     "wrapped structured error",
			err:      Wrap(ErrCodeVersionLookup, errors.New("inner"), "outer"),
			code:     ErrCodeVersionLookup,
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeTimeout, "slow")); got != ErrCodeTimeout {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeTimeout)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeNetwork, "registry unreachable")); got != "registry unreachable" {
		t.Errorf("UserMessage() = %v", got)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %v", got)
	}
}

func TestIsFatal(t *testing.T) {
	if !IsFatal(New(ErrCodeRetrieval, "clone failed")) {
		t.Error("retrieval errors should be fatal")
	}
	for _, code := range []Code{
		ErrCodeUnsupportedEcosystem,
		ErrCodeClassificationUnavailable,
		ErrCodeVersionLookup,
		ErrCodeConflictUnresolvable,
		ErrCodeCacheCorruption,
	} {
		if IsFatal(New(code, "degraded")) {
			t.Errorf("%s should not be fatal", code)
		}
	}
}

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "numpy", false},
		{"valid scoped", "@types/node", false},
		{"valid module path", "github.com/spf13/cobra", false},
		{"empty", "", true},
		{"traversal", "../etc/passwd", true},
		{"double slash", "foo//bar", true},
		{"backslash", `foo\bar`, true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePackageName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRepoPath(t *testing.T) {
	if err := ValidateRepoPath("services/api"); err != nil {
		t.Errorf("valid path rejected: %v", err)
	}
	if err := ValidateRepoPath("/"); err != nil {
		t.Errorf("root tag rejected: %v", err)
	}
	if err := ValidateRepoPath("../outside"); err == nil {
		t.Error("traversal path accepted")
	}
	if err := ValidateRepoPath(""); err == nil {
		t.Error("empty path accepted")
	}
}
