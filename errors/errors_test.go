package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeResolution, "gone")
	if !err.Retryable {
		t.Error("RESOLUTION_FAILED should be retryable")
	}
	if New(ErrCodeCyclicDependency, "loop").Retryable {
		t.Error("CYCLIC_DEPENDENCY should not be retryable")
	}
}

func TestConfigValidation_Message(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"config", "Invalid property : config"},
		{"mock", "Invalid property : mock"},
		{"mock.module", "Invalid property : mock.module"},
		{"mock.className", "Invalid property : mock.className"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			err := ConfigValidation(tc.path)
			if err.Message != tc.want {
				t.Errorf("expected %q, got %q", tc.want, err.Message)
			}
			if err.Details["field"] != tc.path {
				t.Errorf("expected field=%s, got %v", tc.path, err.Details["field"])
			}
			if !IsConfigValidation(err) {
				t.Error("expected IsConfigValidation to be true")
			}
		})
	}
}

func TestNotRegistered(t *testing.T) {
	err := NotRegistered("db")
	if !strings.Contains(err.Error(), "Alias 'db' is not registered!") {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !IsResolution(err) {
		t.Error("expected resolution error")
	}
}

func TestInstantiation_NamesType(t *testing.T) {
	err := Instantiation("svc", 42)
	if err.Details["type"] != "int" {
		t.Errorf("expected type=int, got %v", err.Details["type"])
	}
	if !IsInstantiation(err) {
		t.Error("expected instantiation error")
	}
}

func TestCyclicDependency_Chain(t *testing.T) {
	chain := []string{"a", "b", "a"}
	err := CyclicDependency(chain)
	if !strings.Contains(err.Message, "a -> b -> a") {
		t.Errorf("expected chain in message, got %q", err.Message)
	}
	chain[0] = "x"
	if got := err.Details["chain"].([]string)[0]; got != "a" {
		t.Errorf("details should hold a copy of the chain, got %q", got)
	}
}

func TestHasCode_FollowsCauses(t *testing.T) {
	inner := CyclicDependency([]string{"a", "a"})
	outer := Resolution("b", "dependency failed").WithCause(inner)
	wrapped := fmt.Errorf("get b: %w", outer)

	if !IsResolution(wrapped) {
		t.Error("expected outer code to match")
	}
	if !IsCyclicDependency(wrapped) {
		t.Error("expected cause code to match")
	}
	if IsInstantiation(wrapped) {
		t.Error("unexpected instantiation match")
	}
	if HasCode(stderrors.New("plain"), ErrCodeResolution) {
		t.Error("plain errors carry no code")
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := Validation("bad").WithDetails(map[string]any{"a": 1}).WithDetail("b", 2)
	if err.Details["a"] != 1 || err.Details["b"] != 2 {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestAppError_ErrorIncludesCause(t *testing.T) {
	err := Internal(stderrors.New("boom"))
	if !strings.Contains(err.Error(), "cause: boom") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
	if !stderrors.Is(err, err.Cause) {
		t.Error("expected Unwrap to expose the cause")
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("wrap: %w", EmptyResult("x"))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AppError in chain")
	}
	if appErr.Message != "x cannot be instantiated/fetched!" {
		t.Errorf("unexpected message %q", appErr.Message)
	}
	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("expected no AppError")
	}
}
