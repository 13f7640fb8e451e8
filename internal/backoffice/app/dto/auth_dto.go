// Package dto содержит объекты передачи данных HTTP-слоя.
package dto

import (
	"time"
)

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	EmailUsername string `json:"email_username"`
	Password      string `json:"password"`
}

// RegisterRequest содержит данные для создания учетной записи.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// RefreshRequest содержит данные для обновления токенов.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse содержит данные о выданной паре токенов.
type TokenResponse struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// UserProfileResponse содержит данные профиля пользователя.
type UserProfileResponse struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// MessageResponse содержит произвольное информационное сообщение.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse содержит сообщение об ошибке.
type ErrorResponse struct {
	Error string `json:"error"`
}
