package services

import (
	"errors"
	"time"
)

// Ошибки домена аутентификации.
var (
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
	ErrMissingCredential     = errors.New("no bearer token provided")
	ErrForbidden             = errors.New("insufficient role")
	ErrTokenGenerationFailed = errors.New("failed to generate authentication tokens")
)

// Типы токенов, зашиваемые в полезную нагрузку.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// TokenPair представляет пару токенов аутентификации.
type TokenPair struct {
	UserID       string
	Email        string
	Role         string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Claims определяет расшифрованную полезную нагрузку проверенного токена.
type Claims struct {
	UserID    string
	Email     string
	Role      string
	TokenType string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
