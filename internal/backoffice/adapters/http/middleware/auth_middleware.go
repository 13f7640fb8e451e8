// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"finledger/internal/backoffice/adapters/http/httperr"
	"finledger/internal/backoffice/domain/services"
	svc "finledger/internal/backoffice/ports/services"
	"finledger/pkg/logger"
)

// Ключи для данных запроса.
const (
	ClaimsKey = "claims"
	UserIDKey = "userID"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"

	ErrorNoAuthHeader       = "no authorization header provided"
	ErrorInvalidTokenFormat = "invalid token format"
	ErrorInvalidAccessToken = "invalid or expired access token"
	ErrorInsufficientRole   = "insufficient role"
)

// NewAuthMiddleware создает промежуточное ПО проверки доступа.
// Токен проверяется только кодеком, без обращения к хранилищу.
// Пустой список ролей означает, что достаточно аутентификации.
func NewAuthMiddleware(tokenSvc svc.TokenService, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		authHeader := ctx.Get("Authorization")
		if authHeader == "" {
			log.Debug(requestCtx, ErrorNoAuthHeader)
			return httperr.SendMessage(ctx, fiber.StatusUnauthorized, services.ErrMissingCredential.Error())
		}

		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || token == "" {
			log.Debug(requestCtx, ErrorInvalidTokenFormat)
			return httperr.SendMessage(ctx, fiber.StatusUnauthorized, services.ErrMissingCredential.Error())
		}

		claims, err := tokenSvc.ValidateAccessToken(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, ErrorInvalidAccessToken, zap.Error(err))
			return httperr.SendMessage(ctx, fiber.StatusUnauthorized, ErrorInvalidAccessToken)
		}

		if len(allowed) > 0 {
			if _, ok := allowed[claims.Role]; !ok {
				log.Debug(requestCtx, ErrorInsufficientRole,
					zap.String("userID", claims.UserID),
					zap.String("role", claims.Role),
				)
				return httperr.SendMessage(ctx, fiber.StatusForbidden, services.ErrForbidden.Error())
			}
		}

		ctx.Locals(ClaimsKey, claims)
		ctx.Locals(UserIDKey, claims.UserID)

		return ctx.Next()
	}
}

// ClaimsFromCtx извлекает данные токена, положенные промежуточным ПО.
func ClaimsFromCtx(ctx fiber.Ctx) (*services.Claims, bool) {
	claims, ok := ctx.Locals(ClaimsKey).(*services.Claims)
	return claims, ok
}
