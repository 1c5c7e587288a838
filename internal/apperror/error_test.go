package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection refused")

	assert.Equal(t, KindNotFound, KindOf(NotFound(MsgCandidateNotFound)))
	assert.Equal(t, KindDuplicateEmail, KindOf(fmt.Errorf("insert: %w", DuplicateEmail(cause))))
	assert.Equal(t, KindInternal, KindOf(cause))
	assert.True(t, Is(StorageUnavailable(cause), KindStorageUnavailable))
	assert.False(t, Is(nil, KindInternal))
}

func TestStatusCodes(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation(MsgNameEmailRequired).Code)
	assert.Equal(t, http.StatusBadRequest, DuplicateEmail(nil).Code)
	assert.Equal(t, http.StatusNotFound, NotFound(MsgFeedbackNotFound).Code)
	assert.Equal(t, http.StatusInternalServerError, StorageUnavailable(nil).Code)
	assert.Equal(t, http.StatusInternalServerError, Internal(nil).Code)
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Internal(cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Server Error: boom", err.Error())
	assert.Equal(t, MsgServerError, err.Message)
}
