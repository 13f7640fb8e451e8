package entities

import (
	"errors"
	"time"
)

// Роли пользователей системы.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Определяем ошибки домена пользователя как константы.
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already in use")
	ErrUsernameAlreadyExists = errors.New("username already in use")
	ErrInvalidRole           = errors.New("role must be ADMIN or USER")
	ErrInvalidEmail          = errors.New("invalid email format")
	ErrEmptyUsername         = errors.New("username cannot be empty")
	ErrPasswordTooShort      = errors.New("password must contain at least 8 characters")
	ErrPasswordTooWeak       = errors.New("password must contain at least one letter and one digit")
)

// User представляет основную сущность домена пользователя.
// RefreshToken хранит единственный действующий refresh токен пользователя;
// nil означает, что действующего токена нет.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	Role         string
	RefreshToken *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole проверяет, что роль входит в множество допустимых значений.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
