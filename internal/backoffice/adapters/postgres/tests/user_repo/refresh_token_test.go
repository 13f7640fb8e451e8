package userrepo_test

import (
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finledger/internal/backoffice/adapters/postgres"
	"finledger/internal/backoffice/domain/entities"
	"finledger/internal/backoffice/domain/services"
)

func TestUserRepository_SaveRefreshToken(t *testing.T) {
	ctx := testContext(t)

	t.Run("Слот перезаписывается безусловно", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE users .+").
			WithArgs("user-123", "new-refresh-token").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := postgres.NewUserRepository(mock)
		err = repo.SaveRefreshToken(ctx, "user-123", "new-refresh-token")

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE users .+").
			WithArgs("missing", "new-refresh-token").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := postgres.NewUserRepository(mock)
		err = repo.SaveRefreshToken(ctx, "missing", "new-refresh-token")

		assert.ErrorIs(t, err, entities.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_RotateRefreshToken(t *testing.T) {
	ctx := testContext(t)

	t.Run("Совпадающий токен продвигает слот", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE users .+").
			WithArgs("user-123", "current-token", "next-token").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := postgres.NewUserRepository(mock)
		err = repo.RotateRefreshToken(ctx, "user-123", "current-token", "next-token")

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Несовпадающий токен не обновляет строку", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE users .+").
			WithArgs("user-123", "superseded-token", "next-token").
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := postgres.NewUserRepository(mock)
		err = repo.RotateRefreshToken(ctx, "user-123", "superseded-token", "next-token")

		assert.ErrorIs(t, err, services.ErrInvalidRefreshToken)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Ошибка выполнения запроса", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE users .+").
			WithArgs("user-123", "current-token", "next-token").
			WillReturnError(errors.New("database connection error"))

		repo := postgres.NewUserRepository(mock)
		err = repo.RotateRefreshToken(ctx, "user-123", "current-token", "next-token")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "error rotating refresh token")
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_GetRefreshToken(t *testing.T) {
	ctx := testContext(t)

	t.Run("Слот занят", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		stored := "stored-refresh-token"
		mock.ExpectQuery("SELECT refresh_token FROM users .+").
			WithArgs("user-123").
			WillReturnRows(pgxmock.NewRows([]string{"refresh_token"}).AddRow(&stored))

		repo := postgres.NewUserRepository(mock)
		token, err := repo.GetRefreshToken(ctx, "user-123")

		require.NoError(t, err)
		require.NotNil(t, token)
		assert.Equal(t, stored, *token)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Слот пуст", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT refresh_token FROM users .+").
			WithArgs("user-123").
			WillReturnRows(pgxmock.NewRows([]string{"refresh_token"}).AddRow((*string)(nil)))

		repo := postgres.NewUserRepository(mock)
		token, err := repo.GetRefreshToken(ctx, "user-123")

		require.NoError(t, err)
		assert.Nil(t, token)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Пользователь не найден", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT refresh_token FROM users .+").
			WithArgs("missing").
			WillReturnRows(pgxmock.NewRows([]string{"refresh_token"}))

		repo := postgres.NewUserRepository(mock)
		token, err := repo.GetRefreshToken(ctx, "missing")

		assert.Nil(t, token)
		assert.ErrorIs(t, err, entities.ErrUserNotFound)

		require.NoError(t, mock.ExpectationsWereMet())
	})
}
