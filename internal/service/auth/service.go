package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CookieName имя cookie с токеном администратора
const CookieName = "admin_token"

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Service сервис аутентификации администратора
// Единственный пользователь - администратор салона, пароль задается
// в конфигурации (plain-текстом или bcrypt-хэшем)
type Service struct {
	password  string
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(password, jwtSecret string, tokenTTLHours int, logger Logger) *Service {
	return &Service{
		password:  password,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  time.Duration(tokenTTLHours) * time.Hour,
		logger:    logger,
	}
}

// Login проверяет пароль администратора и выдает JWT токен
func (s *Service) Login(password string) (string, time.Duration, error) {
	if !s.passwordMatches(password) {
		s.logger.Warn("Login: invalid admin password attempt")
		return "", 0, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, fmt.Errorf("%w: Login - sign token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: admin authenticated, token issued for %s", s.tokenTTL)
	return signed, s.tokenTTL, nil
}

// VerifyToken проверяет JWT токен администратора
func (s *Service) VerifyToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["role"] != "admin" {
		return ErrInvalidToken
	}

	return nil
}

// passwordMatches сравнивает пароль с конфигурационным значением
// Bcrypt-хэш распознается по префиксу, иначе сравнение как plain-текст
func (s *Service) passwordMatches(password string) bool {
	if strings.HasPrefix(s.password, "$2a$") || strings.HasPrefix(s.password, "$2b$") {
		return bcrypt.CompareHashAndPassword([]byte(s.password), []byte(password)) == nil
	}
	return s.password != "" && s.password == password
}
