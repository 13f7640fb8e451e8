package userrepo_test

import (
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/backoffice/adapters/postgres"
	"finledger/internal/backoffice/domain/entities"
)

func TestUserRepository_FindByID(t *testing.T) {
	ctx := testContext(t)

	now := time.Now().UTC().Truncate(time.Microsecond)
	storedToken := "stored-refresh-token"
	userColumns := []string{"id", "email", "username", "password_hash", "role", "refresh_token", "created_at", "updated_at"}

	t.Run("Пользователь найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM users .+").
			WithArgs("user-123").
			WillReturnRows(
				pgxmock.NewRows(userColumns).
					AddRow("user-123", "admin@example.com", "admin", "hashed_password",
						entities.RoleAdmin, &storedToken, now, now),
			)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByID(ctx, "user-123")

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "user-123", user.ID)
		assert.Equal(t, entities.RoleAdmin, user.Role)
		require.NotNil(t, user.RefreshToken)
		assert.Equal(t, storedToken, *user.RefreshToken)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM users .+").
			WithArgs("missing").
			WillReturnRows(pgxmock.NewRows(userColumns))

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByID(ctx, "missing")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_FindByEmailOrUsername(t *testing.T) {
	ctx := testContext(t)

	now := time.Now().UTC().Truncate(time.Microsecond)
	userColumns := []string{"id", "email", "username", "password_hash", "role", "refresh_token", "created_at", "updated_at"}

	t.Run("Поиск по email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM users .+").
			WithArgs("admin@example.com").
			WillReturnRows(
				pgxmock.NewRows(userColumns).
					AddRow("user-123", "admin@example.com", "admin", "hashed_password",
						entities.RoleAdmin, (*string)(nil), now, now),
			)

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByEmailOrUsername(ctx, "admin@example.com")

		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "admin", user.Username)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Идентификатор не найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM users .+").
			WithArgs("ghost").
			WillReturnRows(pgxmock.NewRows(userColumns))

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByEmailOrUsername(ctx, "ghost")

		assert.Nil(t, user)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка запроса", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT .+ FROM users .+").
			WithArgs("admin").
			WillReturnError(errors.New("database connection error"))

		repo := postgres.NewUserRepository(mock)
		user, err := repo.FindByEmailOrUsername(ctx, "admin")

		assert.Nil(t, user)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error querying user by identifier")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
