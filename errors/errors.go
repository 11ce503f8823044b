package errors

import (
	stderrors "errors"
	"fmt"
)

// Error codes for the hunter system.
const (
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInvalidState     = "INVALID_STATE"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeStoreFailure     = "STORE_FAILURE"
)

// HunterError represents a domain error with a stable code.
type HunterError struct {
	Code    string
	Message string
	Err     error
}

func (e *HunterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *HunterError) Unwrap() error {
	return e.Err
}

// NewHunterError creates a new HunterError.
func NewHunterError(code, message string, err error) *HunterError {
	return &HunterError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// CodeOf returns the code of the first HunterError in err's chain, or "".
func CodeOf(err error) string {
	var he *HunterError
	if stderrors.As(err, &he) {
		return he.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// ErrQuestNotFound returns an error when a quest is not found.
func ErrQuestNotFound(questID string) *HunterError {
	return &HunterError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("quest not found: %s", questID),
	}
}

// ErrItemNotFound returns an error when an item is not found.
func ErrItemNotFound(itemID string) *HunterError {
	return &HunterError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("item not found: %s", itemID),
	}
}

func ErrCharacterNotFound(characterID uint) *HunterError {
	return &HunterError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("character not found: %d", characterID),
	}
}

// ErrQuestNotActive returns an error when a quest is no longer active.
func ErrQuestNotActive(questID string, status string) *HunterError {
	return &HunterError{
		Code:    ErrCodeInvalidState,
		Message: fmt.Sprintf("quest %s is %s, not active", questID, status),
	}
}

// ErrDailyQuestLocked returns an error when the player edits a system-managed quest.
func ErrDailyQuestLocked(questID string) *HunterError {
	return &HunterError{
		Code:    ErrCodeInvalidState,
		Message: fmt.Sprintf("daily quest %s is managed by the system", questID),
	}
}

func ErrInvalidDifficulty(value string) *HunterError {
	return &HunterError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("invalid difficulty: %q", value),
	}
}

func ErrInvalidAttribute(value string) *HunterError {
	return &HunterError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("invalid attribute: %q", value),
	}
}

// ErrInsufficientStatPoints returns an error when an allocation exceeds the unspent pool.
func ErrInsufficientStatPoints(available, requested int) *HunterError {
	return &HunterError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("not enough stat points (available: %d, requested: %d)", available, requested),
	}
}

// ErrValidation returns a validation error.
func ErrValidation(field, reason string) *HunterError {
	return &HunterError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
	}
}

// ErrStoreFailure wraps storage errors.
func ErrStoreFailure(operation string, err error) *HunterError {
	return &HunterError{
		Code:    ErrCodeStoreFailure,
		Message: fmt.Sprintf("store error during %s", operation),
		Err:     err,
	}
}

// AsStoreFailure passes HunterErrors through untouched and wraps anything
// else as a STORE_FAILURE for the given operation.
func AsStoreFailure(operation string, err error) error {
	if err == nil {
		return nil
	}
	var he *HunterError
	if stderrors.As(err, &he) {
		return err
	}
	return ErrStoreFailure(operation, err)
}
