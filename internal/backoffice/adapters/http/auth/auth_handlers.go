// Package auth содержит HTTP обработчики аутентификации.
package auth

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"finledger/internal/backoffice/adapters/http/httperr"
	"finledger/internal/backoffice/adapters/http/middleware"
	"finledger/internal/backoffice/app/dto"
	"finledger/internal/backoffice/domain/services"
	"finledger/internal/backoffice/ports/api"
	"finledger/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerLogin         = "auth handler: login"
	LogHandlerRegister      = "auth handler: register"
	LogHandlerRefreshTokens = "auth handler: refresh tokens" // #nosec G101 - not a credential
	LogHandlerGetProfile    = "auth handler: get profile"

	ErrorInvalidRequest       = "invalid request"
	ErrorFailedToServeRequest = "failed to serve request"
)

// Handler содержит HTTP обработчики аутентификации.
type Handler struct {
	authUseCase api.AuthUseCase
	userUseCase api.UserUseCase
}

// NewHandler создает новый экземпляр обработчика аутентификации.
func NewHandler(authUseCase api.AuthUseCase, userUseCase api.UserUseCase) *Handler {
	return &Handler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.EmailUsername == "" || req.Password == "" {
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, "email_username and password are required")
	}

	pair, err := h.authUseCase.Login(requestCtx, req.EmailUsername, req.Password)
	if err != nil {
		log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Send(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(newTokenResponse(pair)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Register обрабатывает запрос на создание учетной записи.
// Маршрут закрыт ролью ADMIN.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.Email == "" || req.Username == "" || req.Password == "" {
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, "email, username and password are required")
	}

	user, err := h.userUseCase.Register(requestCtx, req.Email, req.Username, req.Password, req.Role)
	if err != nil {
		log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Send(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.MessageResponse{
		Message: "user " + user.Username + " created",
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// RefreshTokens обрабатывает запрос на обновление токенов.
func (h *Handler) RefreshTokens(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRefreshTokens)

	var req dto.RefreshRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrorInvalidRequest)
	}

	if req.RefreshToken == "" {
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, "refresh token is required")
	}

	pair, err := h.authUseCase.RefreshTokens(requestCtx, req.RefreshToken)
	if err != nil {
		log.Debug(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Send(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(newTokenResponse(pair)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetProfile обрабатывает запрос на получение профиля пользователя.
func (h *Handler) GetProfile(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerGetProfile)

	claims, ok := middleware.ClaimsFromCtx(ctx)
	if !ok {
		return httperr.SendMessage(ctx, fiber.StatusUnauthorized, services.ErrMissingCredential.Error())
	}

	user, err := h.userUseCase.GetUserProfile(requestCtx, claims.UserID)
	if err != nil {
		log.Error(requestCtx, ErrorFailedToServeRequest, zap.Error(err))
		return httperr.Send(ctx, err)
	}

	if err := ctx.Status(fiber.StatusOK).JSON(dto.UserProfileResponse{
		UserID:    user.ID,
		Email:     user.Email,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func newTokenResponse(pair *services.TokenPair) *dto.TokenResponse {
	return &dto.TokenResponse{
		UserID:       pair.UserID,
		Email:        pair.Email,
		Role:         pair.Role,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.ExpiresAt,
	}
}
