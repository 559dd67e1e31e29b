package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestDictionaryNotFoundError(t *testing.T) {
	err := NewDictionaryNotFoundError("zh-basic")

	expectedMsg := "dictionary named 'zh-basic' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrDictionaryNotFound) {
		t.Error("Expected error to match ErrDictionaryNotFound sentinel")
	}

	if errors.Is(err, ErrDictionaryAlreadyExists) {
		t.Error("Error should not match ErrDictionaryAlreadyExists")
	}
}

func TestDictionaryAlreadyExistsError(t *testing.T) {
	err := NewDictionaryAlreadyExistsError("zh-basic")

	expectedMsg := "dictionary named 'zh-basic' already exists"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrDictionaryAlreadyExists) {
		t.Error("Expected error to match ErrDictionaryAlreadyExists sentinel")
	}
}

func TestEmptyDictionaryError(t *testing.T) {
	anonymous := NewEmptyDictionaryError()
	if anonymous.Error() != "dictionary has no tokens" {
		t.Errorf("Unexpected message: %s", anonymous.Error())
	}

	named := NewEmptyDictionaryError("zh-basic")
	if named.Error() != "dictionary 'zh-basic' has no tokens" {
		t.Errorf("Unexpected message: %s", named.Error())
	}

	if !errors.Is(named, ErrEmptyDictionary) {
		t.Error("Expected error to match ErrEmptyDictionary sentinel")
	}
}

func TestResultLimitError(t *testing.T) {
	err := NewResultLimitError(25)

	if err.Error() != "segmentation stopped after 25 results" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
	if !errors.Is(err, ErrResultLimitExceeded) {
		t.Error("Expected error to match ErrResultLimitExceeded sentinel")
	}
}

func TestJobNotFoundError(t *testing.T) {
	err := NewJobNotFoundError("job-123")

	expectedMsg := "job with ID 'job-123' not found"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrJobNotFound) {
		t.Error("Expected error to match ErrJobNotFound sentinel")
	}
}

func TestValidationError(t *testing.T) {
	withField := NewValidationError("text", "text is required")
	if withField.Error() != "validation error for field 'text': text is required" {
		t.Errorf("Unexpected message: %s", withField.Error())
	}

	withoutField := NewValidationError("", "bad request")
	if withoutField.Error() != "validation error: bad request" {
		t.Errorf("Unexpected message: %s", withoutField.Error())
	}

	if !errors.Is(withField, ErrInvalidInput) {
		t.Error("Expected error to match ErrInvalidInput sentinel")
	}
}

func TestSameNameError(t *testing.T) {
	err := NewSameNameError("zh-basic")

	expectedMsg := "new name 'zh-basic' is the same as the current name"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}

	if !errors.Is(err, ErrSameName) {
		t.Error("Expected error to match ErrSameName sentinel")
	}
}

func TestWrappedErrorsStillMatch(t *testing.T) {
	wrapped := fmt.Errorf("segment request failed: %w", NewEmptyDictionaryError("zh"))

	if !errors.Is(wrapped, ErrEmptyDictionary) {
		t.Error("Expected wrapped error to match ErrEmptyDictionary")
	}

	var emptyErr *EmptyDictionaryError
	if !errors.As(wrapped, &emptyErr) {
		t.Fatal("Expected errors.As to extract *EmptyDictionaryError")
	}
	if emptyErr.Name != "zh" {
		t.Errorf("Expected dictionary name 'zh', got '%s'", emptyErr.Name)
	}
}
