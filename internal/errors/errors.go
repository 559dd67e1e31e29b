package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrDictionaryNotFound is returned when a dictionary is not found
	ErrDictionaryNotFound = errors.New("dictionary not found")

	// ErrDictionaryAlreadyExists is returned when trying to create a dictionary that already exists
	ErrDictionaryAlreadyExists = errors.New("dictionary already exists")

	// ErrEmptyDictionary is returned when segmentation is requested against a dictionary with no tokens
	ErrEmptyDictionary = errors.New("dictionary is empty")

	// ErrResultLimitExceeded is returned when an enumeration stops at its result budget
	ErrResultLimitExceeded = errors.New("result limit exceeded")

	// ErrJobNotFound is returned when a job is not found
	ErrJobNotFound = errors.New("job not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrSameName is returned when trying to rename to the same name
	ErrSameName = errors.New("same name provided")
)

// DictionaryNotFoundError carries the name of the missing dictionary
type DictionaryNotFoundError struct {
	Name string
}

func (e *DictionaryNotFoundError) Error() string {
	return fmt.Sprintf("dictionary named '%s' not found", e.Name)
}

func (e *DictionaryNotFoundError) Is(target error) bool {
	return target == ErrDictionaryNotFound
}

// NewDictionaryNotFoundError creates a new DictionaryNotFoundError
func NewDictionaryNotFoundError(name string) *DictionaryNotFoundError {
	return &DictionaryNotFoundError{Name: name}
}

// DictionaryAlreadyExistsError carries the name that is already taken
type DictionaryAlreadyExistsError struct {
	Name string
}

func (e *DictionaryAlreadyExistsError) Error() string {
	return fmt.Sprintf("dictionary named '%s' already exists", e.Name)
}

func (e *DictionaryAlreadyExistsError) Is(target error) bool {
	return target == ErrDictionaryAlreadyExists
}

// NewDictionaryAlreadyExistsError creates a new DictionaryAlreadyExistsError
func NewDictionaryAlreadyExistsError(name string) *DictionaryAlreadyExistsError {
	return &DictionaryAlreadyExistsError{Name: name}
}

// EmptyDictionaryError is returned when a dictionary has no entries.
// Name is empty for anonymous in-process dictionaries.
type EmptyDictionaryError struct {
	Name string
}

func (e *EmptyDictionaryError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("dictionary '%s' has no tokens", e.Name)
	}
	return "dictionary has no tokens"
}

func (e *EmptyDictionaryError) Is(target error) bool {
	return target == ErrEmptyDictionary
}

// NewEmptyDictionaryError creates a new EmptyDictionaryError
func NewEmptyDictionaryError(name ...string) *EmptyDictionaryError {
	err := &EmptyDictionaryError{}
	if len(name) > 0 {
		err.Name = name[0]
	}
	return err
}

// ResultLimitError reports that an enumeration was cut short after Limit segmentations
type ResultLimitError struct {
	Limit int
}

func (e *ResultLimitError) Error() string {
	return fmt.Sprintf("segmentation stopped after %d results", e.Limit)
}

func (e *ResultLimitError) Is(target error) bool {
	return target == ErrResultLimitExceeded
}

// NewResultLimitError creates a new ResultLimitError
func NewResultLimitError(limit int) *ResultLimitError {
	return &ResultLimitError{Limit: limit}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// SameNameError represents an error when trying to rename to the same name
type SameNameError struct {
	Name string
}

func (e *SameNameError) Error() string {
	return fmt.Sprintf("new name '%s' is the same as the current name", e.Name)
}

func (e *SameNameError) Is(target error) bool {
	return target == ErrSameName
}

// NewSameNameError creates a new SameNameError
func NewSameNameError(name string) *SameNameError {
	return &SameNameError{Name: name}
}
