package triplify_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/triplify"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := triplify.Errorf(triplify.ENOTFOUND, "extractor %q not found", "html-mf-hcard")

	assert.Equal(t, triplify.ENOTFOUND, triplify.ErrorCode(err))
	assert.Equal(t, "extractor \"html-mf-hcard\" not found", triplify.ErrorMessage(err))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, triplify.ErrorCode(nil))
	})

	t.Run("non-application error is internal", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, triplify.EINTERNAL, triplify.ErrorCode(errors.New("boom")))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("fetch: %w", triplify.Errorf(triplify.EACQUISITION, "HTTP 404"))
		assert.Equal(t, triplify.EACQUISITION, triplify.ErrorCode(err))
	})

	t.Run("pipeline error code wins over its cause", func(t *testing.T) {
		t.Parallel()
		err := &triplify.PipelineError{
			State: triplify.StateAcquireFailed,
			Code:  triplify.EACQUISITION,
			Err:   triplify.Errorf(triplify.EINVALID, "bad URL"),
		}
		assert.Equal(t, triplify.EACQUISITION, triplify.ErrorCode(err))
		assert.Equal(t, "bad URL", triplify.ErrorMessage(err))
	})
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, triplify.ErrorMessage(nil))
}
