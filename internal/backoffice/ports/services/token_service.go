package services

import (
	"context"
	"time"

	"finledger/internal/backoffice/domain/services"
)

// TokenService определяет интерфейс для операций с токенами JWT.
// Оба метода генерации возвращают подписанный токен и момент его истечения.
type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID, email, role string) (string, time.Time, error)

	GenerateRefreshToken(ctx context.Context, userID, email, role string) (string, time.Time, error)

	// ValidateAccessToken проверяет подпись, срок действия и тип "access".
	ValidateAccessToken(ctx context.Context, token string) (*services.Claims, error)

	// ValidateRefreshToken проверяет подпись, срок действия и тип "refresh".
	ValidateRefreshToken(ctx context.Context, token string) (*services.Claims, error)
}
