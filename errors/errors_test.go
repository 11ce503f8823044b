package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHunterError_Error(t *testing.T) {
	tests := []struct {
		name    string
		err     *HunterError
		wantMsg string
	}{
		{
			name:    "error without wrapped error",
			err:     &HunterError{Code: ErrCodeNotFound, Message: "quest not found: q-1"},
			wantMsg: "NOT_FOUND: quest not found: q-1",
		},
		{
			name:    "error with wrapped error",
			err:     &HunterError{Code: ErrCodeStoreFailure, Message: "store error during save", Err: stderrors.New("disk full")},
			wantMsg: "STORE_FAILURE: store error during save: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestHunterError_Unwrap(t *testing.T) {
	original := stderrors.New("original error")
	err := ErrStoreFailure("load", original)

	assert.Same(t, original, err.Unwrap())
	assert.True(t, stderrors.Is(err, original))
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("completing: %w", ErrQuestNotActive("q-1", "completed"))

	assert.Equal(t, ErrCodeInvalidState, CodeOf(wrapped))
	assert.True(t, Is(wrapped, ErrCodeInvalidState))
	assert.False(t, Is(wrapped, ErrCodeNotFound))
	assert.Equal(t, "", CodeOf(stderrors.New("plain")))
	assert.False(t, Is(nil, ErrCodeNotFound))
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *HunterError
		code string
	}{
		{"quest not found", ErrQuestNotFound("q"), ErrCodeNotFound},
		{"item not found", ErrItemNotFound("i"), ErrCodeNotFound},
		{"character not found", ErrCharacterNotFound(1), ErrCodeNotFound},
		{"quest not active", ErrQuestNotActive("q", "failed"), ErrCodeInvalidState},
		{"daily locked", ErrDailyQuestLocked("q"), ErrCodeInvalidState},
		{"invalid difficulty", ErrInvalidDifficulty("Z"), ErrCodeValidationFailed},
		{"invalid attribute", ErrInvalidAttribute("luck"), ErrCodeValidationFailed},
		{"insufficient points", ErrInsufficientStatPoints(1, 3), ErrCodeValidationFailed},
		{"validation", ErrValidation("title", "required"), ErrCodeValidationFailed},
		{"store", ErrStoreFailure("save", nil), ErrCodeStoreFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestAsStoreFailure(t *testing.T) {
	assert.NoError(t, AsStoreFailure("op", nil))

	domain := ErrQuestNotFound("q-9")
	assert.Same(t, domain, AsStoreFailure("op", domain))

	err := AsStoreFailure("save quest", stderrors.New("boom"))
	require.Error(t, err)
	assert.Equal(t, ErrCodeStoreFailure, CodeOf(err))
	assert.Contains(t, err.Error(), "save quest")
}
