package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

func TestLogin_PlainPassword(t *testing.T) {
	svc := NewService("geheim", "test-secret", 24, nopLogger{})

	token, ttl, err := svc.Login("geheim")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, 24*time.Hour, ttl)
}

func TestLogin_BcryptPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("geheim"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewService(string(hash), "test-secret", 24, nopLogger{})

	_, _, err = svc.Login("geheim")
	assert.NoError(t, err)

	_, _, err = svc.Login("falsch")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InvalidPassword(t *testing.T) {
	svc := NewService("geheim", "test-secret", 24, nopLogger{})

	_, _, err := svc.Login("falsch")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_EmptyConfiguredPassword(t *testing.T) {
	// Пустой пароль в конфигурации не должен пускать никого
	svc := NewService("", "test-secret", 24, nopLogger{})

	_, _, err := svc.Login("")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken(t *testing.T) {
	svc := NewService("geheim", "test-secret", 24, nopLogger{})

	token, _, err := svc.Login("geheim")
	require.NoError(t, err)

	assert.NoError(t, svc.VerifyToken(token))
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer := NewService("geheim", "secret-a", 24, nopLogger{})
	verifier := NewService("geheim", "secret-b", 24, nopLogger{})

	token, _, err := issuer.Login("geheim")
	require.NoError(t, err)

	assert.ErrorIs(t, verifier.VerifyToken(token), ErrInvalidToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc := NewService("geheim", "test-secret", 24, nopLogger{})

	assert.ErrorIs(t, svc.VerifyToken("not-a-jwt"), ErrInvalidToken)
}
