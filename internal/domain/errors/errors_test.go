package errors

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WrapMessageKeepsIdentity(t *testing.T) {
	err := ErrRunInProgress.WrapMessage("lock held by another run")

	assert.ErrorIs(t, err, ErrRunInProgress)
	assert.Contains(t, err.Error(), "lock held by another run")

	var appErr AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode())
	assert.Equal(t, "RUN_IN_PROGRESS", appErr.ErrorCode())
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "failed to list device ids")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "failed to list device ids", err.Details())
	assert.Contains(t, err.Error(), "connection reset")
}
