package txmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure_BareDriverError(t *testing.T) {
	assert.True(t, isSerializationFailure(&pq.Error{Code: "40001"}))
}

func TestIsSerializationFailure_CommitWrap(t *testing.T) {
	// Ошибка коммита оборачивается в run() - конфликт сериализации
	// должен оставаться видимым сквозь обертку
	err := fmt.Errorf("%w: commit: %w", ErrTxFailed, &pq.Error{Code: "40001"})
	assert.True(t, isSerializationFailure(err))
}

func TestIsSerializationFailure_RepositoryChain(t *testing.T) {
	// Цепочка, как она приходит из транзакционного замыкания use case:
	// ошибка драйвера -> sentinel репозитория -> sentinel use case
	errExecQuery := errors.New("storage_appointment: failed to execute query")
	errInternal := errors.New("create_appointment: internal error")

	err := fmt.Errorf("%w: ListWithFilter - execute query: %w", errExecQuery, &pq.Error{Code: "40001"})
	err = fmt.Errorf("%w: failed to list appointments: %w", errInternal, err)

	assert.True(t, isSerializationFailure(err))
}

func TestIsSerializationFailure_OtherSQLState(t *testing.T) {
	err := fmt.Errorf("%w: commit: %w", ErrTxFailed, &pq.Error{Code: "23505"})
	assert.False(t, isSerializationFailure(err))
}

func TestIsSerializationFailure_NoDriverError(t *testing.T) {
	assert.False(t, isSerializationFailure(errors.New("connection reset")))
	assert.False(t, isSerializationFailure(fmt.Errorf("%w: begin: %w", ErrTxFailed, errors.New("down"))))
}
