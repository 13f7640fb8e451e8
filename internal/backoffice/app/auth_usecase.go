// Package app содержит сценарии использования сервиса.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"finledger/internal/backoffice/domain/entities"
	"finledger/internal/backoffice/domain/services"
	"finledger/internal/backoffice/ports/api"
	"finledger/internal/backoffice/ports/repositories"
	svc "finledger/internal/backoffice/ports/services"
	"finledger/pkg/logger"
)

const (
	methodLogin          = "Login"
	methodRefreshTokens  = "RefreshTokens"
	methodGenerateTokens = "generateTokenPair"

	msgLoginAttempt           = "login attempt"
	msgLoginUnknownIdentifier = "login attempt with unknown identifier"
	msgInvalidPasswordAuth    = "invalid password provided"
	msgUserLoggedIn           = "user logged in successfully"
	msgRefreshingTokens       = "refreshing tokens"
	msgRefreshTokenRejected   = "refresh token rejected by codec"
	msgStaleRefreshToken      = "presented refresh token does not match stored slot"
	msgTokensRefreshed        = "tokens refreshed successfully"
	msgTokenPairGenerated     = "token pair generated successfully"

	msgErrFindingUser          = "error finding user by identifier"
	msgErrVerifyingPassword    = "error verifying password"
	msgErrGenerateLoginTokens  = "failed to generate tokens on login"
	msgErrLoadingStoredToken   = "failed to load stored refresh token"
	msgErrFindingUserForToken  = "failed to find user for refresh token"
	msgErrGenerateNewTokens    = "failed to generate new tokens during refresh"
	msgErrGenerateAccessToken  = "failed to generate access token"
	msgErrGenerateRefreshToken = "failed to generate refresh token"
	msgErrStoreRefreshToken    = "failed to store refresh token"

	errCtxInvalidCredentials     = "invalid credentials"
	errCtxFindingUser            = "finding user"
	errCtxVerifyingPassword      = "verifying password"
	errCtxGeneratingTokens       = "generating tokens"
	errCtxValidatingRefreshToken = "validating refresh token"
	errCtxLoadingStoredToken     = "loading stored refresh token"
	errCtxGeneratingNewTokens    = "generating new tokens"
	errCtxGeneratingAccessToken  = "generating access token"
	errCtxGeneratingRefreshToken = "generating refresh token"
	errCtxStoringRefreshToken    = "storing refresh token"
)

// AuthUseCaseImpl реализует интерфейс AuthUseCase.
type AuthUseCaseImpl struct {
	userRepo    repositories.UserRepository
	passwordSvc svc.PasswordService
	tokenSvc    svc.TokenService
}

// NewAuthUseCase создает новый экземпляр сервиса аутентификации.
func NewAuthUseCase(
	userRepo repositories.UserRepository,
	passwordSvc svc.PasswordService,
	tokenSvc svc.TokenService,
) api.AuthUseCase {
	return &AuthUseCaseImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
	}
}

// Login аутентифицирует пользователя по email или имени пользователя.
// Неизвестный идентификатор и неверный пароль неразличимы для вызывающего.
func (a *AuthUseCaseImpl) Login(ctx context.Context, identifier, password string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodLogin))
	log.Debug(ctx, msgLoginAttempt)

	user, err := a.userRepo.FindByEmailOrUsername(ctx, identifier)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgLoginUnknownIdentifier)
			return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
		}
		log.Error(ctx, msgErrFindingUser, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	valid, err := a.passwordSvc.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		log.Error(ctx, msgErrVerifyingPassword, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxVerifyingPassword, err)
	}
	if !valid {
		log.Debug(ctx, msgInvalidPasswordAuth, zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxInvalidCredentials, services.ErrInvalidCredentials)
	}

	tokenPair, err := a.generateTokenPair(ctx, user, func(ctx context.Context, token string) error {
		return a.userRepo.SaveRefreshToken(ctx, user.ID, token)
	})
	if err != nil {
		log.Error(ctx, msgErrGenerateLoginTokens, zap.Error(err), zap.String("userID", user.ID))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingTokens, err)
	}

	log.Info(ctx, msgUserLoggedIn, zap.String("userID", user.ID))
	return tokenPair, nil
}

// RefreshTokens обменивает действующий refresh токен на новую пару.
// Предъявленный токен обязан совпасть байт в байт с сохраненным слотом,
// после чего слот перезаписывается условным обновлением. Повторное
// предъявление вытесненного токена отклоняется.
func (a *AuthUseCaseImpl) RefreshTokens(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(zap.String("method", methodRefreshTokens))
	log.Debug(ctx, msgRefreshingTokens)

	claims, err := a.tokenSvc.ValidateRefreshToken(ctx, refreshToken)
	if err != nil {
		log.Debug(ctx, msgRefreshTokenRejected, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingRefreshToken, services.ErrInvalidRefreshToken)
	}

	log = log.With(zap.String("userID", claims.UserID))

	stored, err := a.userRepo.GetRefreshToken(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgStaleRefreshToken)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingRefreshToken, services.ErrInvalidRefreshToken)
		}
		log.Error(ctx, msgErrLoadingStoredToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingStoredToken, err)
	}
	if stored == nil || *stored != refreshToken {
		log.Debug(ctx, msgStaleRefreshToken)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingRefreshToken, services.ErrInvalidRefreshToken)
	}

	user, err := a.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgStaleRefreshToken)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingRefreshToken, services.ErrInvalidRefreshToken)
		}
		log.Error(ctx, msgErrFindingUserForToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxFindingUser, err)
	}

	tokenPair, err := a.generateTokenPair(ctx, user, func(ctx context.Context, token string) error {
		return a.userRepo.RotateRefreshToken(ctx, user.ID, refreshToken, token)
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidRefreshToken) {
			log.Debug(ctx, msgStaleRefreshToken)
			return nil, fmt.Errorf("%s: %w", errCtxValidatingRefreshToken, services.ErrInvalidRefreshToken)
		}
		log.Error(ctx, msgErrGenerateNewTokens, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingNewTokens, err)
	}

	log.Info(ctx, msgTokensRefreshed)
	return tokenPair, nil
}

// Вспомогательная функция для генерации пары токенов. Если сохранить
// refresh токен не удалось, пара не возвращается.
func (a *AuthUseCaseImpl) generateTokenPair(
	ctx context.Context,
	user *entities.User,
	persist func(ctx context.Context, token string) error,
) (*services.TokenPair, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateTokens),
		zap.String("userID", user.ID),
	)

	accessToken, accessExpires, err := a.tokenSvc.GenerateAccessToken(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error(ctx, msgErrGenerateAccessToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingAccessToken, services.ErrTokenGenerationFailed)
	}

	refreshToken, _, err := a.tokenSvc.GenerateRefreshToken(ctx, user.ID, user.Email, user.Role)
	if err != nil {
		log.Error(ctx, msgErrGenerateRefreshToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxGeneratingRefreshToken, services.ErrTokenGenerationFailed)
	}

	if err := persist(ctx, refreshToken); err != nil {
		log.Error(ctx, msgErrStoreRefreshToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxStoringRefreshToken, err)
	}

	log.Debug(ctx, msgTokenPairGenerated)

	return &services.TokenPair{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExpires,
	}, nil
}
