package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"finledger/internal/backoffice/config"
	"finledger/internal/backoffice/domain/entities"
	"finledger/internal/backoffice/ports/repositories"
	svc "finledger/internal/backoffice/ports/services"
	"finledger/pkg/logger"
)

const (
	methodEnsureAdminUser = "EnsureAdminUser"

	msgAdminSeedDisabled = "admin seed disabled, skipping"
	msgAdminExists       = "admin user already present, skipping seed"
	msgAdminSeeded       = "initial admin user created"

	msgErrCheckingAdmin = "failed to check existing admin user"
	msgErrSeedingAdmin  = "failed to create initial admin user"

	errCtxCheckingAdmin = "checking existing admin user"
	errCtxHashingAdmin  = "hashing admin password"
	errCtxSeedingAdmin  = "creating initial admin user"
)

// EnsureAdminUser создает начальную учетную запись администратора, если ее
// еще нет. Регистрация защищена ролью ADMIN, поэтому на пустой базе первую
// учетную запись создает только этот шаг. Повторные запуски ничего не меняют.
func EnsureAdminUser(
	ctx context.Context,
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	cfg *config.AdminConfig,
) error {
	log := logger.Log(ctx).With(zap.String("method", methodEnsureAdminUser))

	if cfg.Disabled {
		log.Debug(ctx, msgAdminSeedDisabled)
		return nil
	}

	_, err := userRepo.FindByEmailOrUsername(ctx, cfg.Email)
	if err == nil {
		log.Debug(ctx, msgAdminExists, zap.String("email", cfg.Email))
		return nil
	}
	if !errors.Is(err, entities.ErrUserNotFound) {
		log.Error(ctx, msgErrCheckingAdmin, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingAdmin, err)
	}

	hash, err := passwordSvc.Hash(ctx, cfg.Password)
	if err != nil {
		log.Error(ctx, msgErrSeedingAdmin, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxHashingAdmin, err)
	}

	created, err := userRepo.Create(ctx, &entities.User{
		Email:        cfg.Email,
		Username:     cfg.Username,
		PasswordHash: hash,
		Role:         entities.RoleAdmin,
	})
	if err != nil {
		// Параллельный запуск мог создать запись между проверкой и вставкой.
		if errors.Is(err, entities.ErrEmailAlreadyExists) || errors.Is(err, entities.ErrUsernameAlreadyExists) {
			log.Debug(ctx, msgAdminExists, zap.String("email", cfg.Email))
			return nil
		}
		log.Error(ctx, msgErrSeedingAdmin, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxSeedingAdmin, err)
	}

	log.Info(ctx, msgAdminSeeded,
		zap.String("userID", created.ID),
		zap.String("username", created.Username))
	return nil
}
