// Package api определяет входные порты сервиса.
package api

import (
	"context"

	"finledger/internal/backoffice/domain/entities"
	"finledger/internal/backoffice/domain/services"
)

// AuthUseCase определяет основной порт для операций аутентификации.
type AuthUseCase interface {
	// Login аутентифицирует пользователя по email или имени пользователя.
	Login(ctx context.Context, identifier, password string) (*services.TokenPair, error)

	// RefreshTokens выдает новую пару токенов взамен действующего refresh токена.
	RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error)
}

// UserUseCase определяет основной порт для пользовательских операций.
type UserUseCase interface {
	// Register создает новую учетную запись. Вызывается только администратором.
	Register(ctx context.Context, email, username, password, role string) (*entities.User, error)

	GetUserProfile(ctx context.Context, userID string) (*entities.User, error)
}
