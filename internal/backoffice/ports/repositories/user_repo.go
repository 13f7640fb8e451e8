package repositories

import (
	"context"

	"finledger/internal/backoffice/domain/entities"
)

// UserRepository определяет интерфейс для операций сохранения данных пользователей.
// Refresh токен пользователя хранится в единственном слоте; запись нового
// значения делает предыдущее недействительным.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	// FindByEmailOrUsername разрешает идентификатор входа: сначала по email,
	// затем по имени пользователя.
	FindByEmailOrUsername(ctx context.Context, identifier string) (*entities.User, error)

	// SaveRefreshToken безусловно перезаписывает слот refresh токена.
	SaveRefreshToken(ctx context.Context, userID, token string) error

	// RotateRefreshToken заменяет currentToken на newToken одним условным
	// обновлением строки; возвращает services.ErrInvalidRefreshToken, если
	// слот уже содержит другое значение.
	RotateRefreshToken(ctx context.Context, userID, currentToken, newToken string) error

	GetRefreshToken(ctx context.Context, userID string) (*string, error)
}
