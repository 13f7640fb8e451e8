package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"finledger/internal/backoffice/adapters/http/httperr"
	"finledger/pkg/logger"
)

// Константы для сообщений восстановления после паники.
const (
	msgHandlerPanic     = "handler panic"
	msgErrPanicResponse = "failed to send error response after panic"
	msgInternalError    = "internal server error"
)

// NewRecoveryMiddleware перехватывает панику обработчика и отвечает
// клиенту обезличенной внутренней ошибкой в том же формате, что и
// остальные ошибки API. Детали паники остаются только в журнале.
func NewRecoveryMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()

		defer func() {
			if r := recover(); r != nil {
				logger.Log(requestCtx).Error(requestCtx, msgHandlerPanic,
					zap.String("method", ctx.Method()),
					zap.String("path", ctx.Path()),
					zap.String("panic", fmt.Sprintf("%v", r)),
					zap.String("stack", string(debug.Stack())),
				)

				if err := httperr.SendMessage(ctx, fiber.StatusInternalServerError, msgInternalError); err != nil {
					logger.Log(requestCtx).Error(requestCtx, msgErrPanicResponse, zap.Error(err))
				}
			}
		}()

		return ctx.Next()
	}
}
