package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/famtask/famtask-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(apperr.NotFound("missing")))
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(apperr.Conflict("dup")))
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(errors.New("plain")))
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	base := apperr.Invalid("bad input")
	wrapped := fmt.Errorf("handling request: %w", base)

	assert.True(t, apperr.IsKind(wrapped, apperr.KindInvalid))
	assert.False(t, apperr.IsKind(wrapped, apperr.KindNotFound))
}

func TestErrorMessage(t *testing.T) {
	plain := apperr.NotFound("task not found")
	assert.Equal(t, "task not found", plain.Error())

	withCause := apperr.Wrap(apperr.KindInternal, "query failed", errors.New("disk full"))
	assert.Equal(t, "query failed: disk full", withCause.Error())
	assert.Equal(t, "disk full", errors.Unwrap(withCause).Error())
}

func TestIsKindNil(t *testing.T) {
	assert.False(t, apperr.IsKind(nil, apperr.KindInternal))
}
