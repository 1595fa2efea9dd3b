package simpletxmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure_CommitWrap(t *testing.T) {
	err := fmt.Errorf("%w: commit: %w", ErrTxFailed, &pq.Error{Code: "40001"})
	assert.True(t, isSerializationFailure(err))
}

func TestIsSerializationFailure_OtherSQLState(t *testing.T) {
	err := fmt.Errorf("%w: commit: %w", ErrTxFailed, &pq.Error{Code: "23505"})
	assert.False(t, isSerializationFailure(err))
}

func TestIsSerializationFailure_NoDriverError(t *testing.T) {
	assert.False(t, isSerializationFailure(errors.New("connection reset")))
}
