package userrepo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/backoffice/adapters/postgres"
	"finledger/internal/backoffice/domain/entities"
	"finledger/pkg/logger"
)

func testContext(t *testing.T) context.Context {
	t.Helper()

	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func TestUserRepository_Create(t *testing.T) {
	ctx := testContext(t)

	inputUser := &entities.User{
		Email:        "new@example.com",
		Username:     "newuser",
		PasswordHash: "hashed_new_password",
		Role:         entities.RoleUser,
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	userColumns := []string{"id", "email", "username", "password_hash", "role", "refresh_token", "created_at", "updated_at"}

	t.Run("Успешное создание пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(inputUser.Email, inputUser.Username, inputUser.PasswordHash, inputUser.Role).
			WillReturnRows(
				pgxmock.NewRows(userColumns).
					AddRow("generated-uuid", inputUser.Email, inputUser.Username, inputUser.PasswordHash,
						inputUser.Role, (*string)(nil), now, now),
			)

		repo := postgres.NewUserRepository(mock)
		createdUser, err := repo.Create(ctx, inputUser)

		require.NoError(t, err)
		require.NotNil(t, createdUser)
		assert.Equal(t, "generated-uuid", createdUser.ID)
		assert.Equal(t, inputUser.Email, createdUser.Email)
		assert.Equal(t, inputUser.Username, createdUser.Username)
		assert.Equal(t, entities.RoleUser, createdUser.Role)
		assert.Nil(t, createdUser.RefreshToken)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Дублирующийся email", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(inputUser.Email, inputUser.Username, inputUser.PasswordHash, inputUser.Role).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

		repo := postgres.NewUserRepository(mock)
		createdUser, err := repo.Create(ctx, inputUser)

		assert.Nil(t, createdUser)
		assert.ErrorIs(t, err, entities.ErrEmailAlreadyExists)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Дублирующееся имя пользователя", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(inputUser.Email, inputUser.Username, inputUser.PasswordHash, inputUser.Role).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"})

		repo := postgres.NewUserRepository(mock)
		createdUser, err := repo.Create(ctx, inputUser)

		assert.Nil(t, createdUser)
		assert.ErrorIs(t, err, entities.ErrUsernameAlreadyExists)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Общая ошибка БД", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		dbError := errors.New("database connection error")
		mock.ExpectQuery("INSERT INTO users .+").
			WithArgs(inputUser.Email, inputUser.Username, inputUser.PasswordHash, inputUser.Role).
			WillReturnError(dbError)

		repo := postgres.NewUserRepository(mock)
		createdUser, err := repo.Create(ctx, inputUser)

		assert.Nil(t, createdUser)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "error creating user")

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
