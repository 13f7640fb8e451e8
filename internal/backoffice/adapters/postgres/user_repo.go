// Package postgres содержит pgx-реализации репозиториев сервиса.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"finledger/internal/backoffice/domain/entities"
	"finledger/internal/backoffice/domain/services"
	"finledger/internal/backoffice/ports/repositories"
	"finledger/pkg/logger"
)

// Код ошибки PostgreSQL для нарушения уникальности.
const uniqueViolationCode = "23505"

type PgxPoolInterface interface {
	QueryRow(ctx context.Context, query string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, query string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, query string, args ...interface{}) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create создает нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	query := `
        INSERT INTO users (email, username, password_hash, role)
        VALUES ($1, $2, $3, $4)
        RETURNING id, email, username, password_hash, role, refresh_token, created_at, updated_at
    `

	var createdUser entities.User
	err := r.pool.QueryRow(ctx, query,
		user.Email,
		user.Username,
		user.PasswordHash,
		user.Role,
	).Scan(
		&createdUser.ID,
		&createdUser.Email,
		&createdUser.Username,
		&createdUser.PasswordHash,
		&createdUser.Role,
		&createdUser.RefreshToken,
		&createdUser.CreatedAt,
		&createdUser.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			if strings.Contains(pgErr.ConstraintName, "email") {
				log.Debug(ctx, "duplicate email", zap.String("email", user.Email))
				return nil, entities.ErrEmailAlreadyExists
			}
			log.Debug(ctx, "duplicate username", zap.String("username", user.Username))
			return nil, entities.ErrUsernameAlreadyExists
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return &createdUser, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByID"))

	query := `
        SELECT id, email, username, password_hash, role, refresh_token, created_at, updated_at
        FROM users
        WHERE id = $1
    `

	var user entities.User
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("id", id))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by id", zap.Error(err))
		return nil, fmt.Errorf("error querying user by id: %w", err)
	}

	return &user, nil
}

// FindByEmailOrUsername находит пользователя по email или имени пользователя.
func (r *UserRepository) FindByEmailOrUsername(ctx context.Context, identifier string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindByEmailOrUsername"))

	query := `
        SELECT id, email, username, password_hash, role, refresh_token, created_at, updated_at
        FROM users
        WHERE email = $1 OR username = $1
    `

	var user entities.User
	err := r.pool.QueryRow(ctx, query, identifier).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.RefreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found")
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user by identifier", zap.Error(err))
		return nil, fmt.Errorf("error querying user by identifier: %w", err)
	}

	return &user, nil
}

// SaveRefreshToken безусловно перезаписывает слот refresh токена пользователя.
func (r *UserRepository) SaveRefreshToken(ctx context.Context, userID, token string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "SaveRefreshToken"))

	query := `
        UPDATE users
        SET refresh_token = $2, updated_at = NOW()
        WHERE id = $1
    `

	result, err := r.pool.Exec(ctx, query, userID, token)
	if err != nil {
		log.Error(ctx, "error saving refresh token", zap.Error(err))
		return fmt.Errorf("error saving refresh token: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "user not found for refresh token save", zap.String("userID", userID))
		return entities.ErrUserNotFound
	}

	return nil
}

// RotateRefreshToken заменяет текущее значение слота условным обновлением
// одной строки. Совпадение со старым значением и запись нового происходят
// атомарно, поэтому из конкурирующих ротаций одного токена продвинуть слот
// может не более одной.
func (r *UserRepository) RotateRefreshToken(ctx context.Context, userID, currentToken, newToken string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "RotateRefreshToken"))

	query := `
        UPDATE users
        SET refresh_token = $3, updated_at = NOW()
        WHERE id = $1 AND refresh_token = $2
    `

	result, err := r.pool.Exec(ctx, query, userID, currentToken, newToken)
	if err != nil {
		log.Error(ctx, "error rotating refresh token", zap.Error(err))
		return fmt.Errorf("error rotating refresh token: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "stored refresh token does not match", zap.String("userID", userID))
		return services.ErrInvalidRefreshToken
	}

	return nil
}

// GetRefreshToken возвращает текущее значение слота refresh токена.
func (r *UserRepository) GetRefreshToken(ctx context.Context, userID string) (*string, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "GetRefreshToken"))

	query := `
        SELECT refresh_token
        FROM users
        WHERE id = $1
    `

	var token *string
	err := r.pool.QueryRow(ctx, query, userID).Scan(&token)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("userID", userID))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error querying refresh token", zap.Error(err))
		return nil, fmt.Errorf("error querying refresh token: %w", err)
	}

	return token, nil
}
