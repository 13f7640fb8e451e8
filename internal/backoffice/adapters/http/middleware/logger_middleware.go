package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"finledger/pkg/logger"
)

// Константы для сообщений журнала запросов.
const (
	msgRequestStarted   = "request started"
	msgRequestCompleted = "request completed"
	msgRequestFailed    = "request failed"

	errCtxProcessingRequest = "processing request"
)

// NewLoggerMiddleware журналирует каждый HTTP запрос. Уровень итоговой
// записи зависит от статуса ответа: ошибки клиента пишутся как warn,
// ошибки сервера как error.
func NewLoggerMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		start := time.Now()

		log := logger.Log(requestCtx).With(
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.String("ip", ctx.IP()),
		)

		log.Debug(requestCtx, msgRequestStarted)

		err := ctx.Next()

		status := ctx.Response().StatusCode()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}

		if err != nil {
			log.Error(requestCtx, msgRequestFailed, append(fields, zap.Error(err))...)
			return fmt.Errorf("%s: %w", errCtxProcessingRequest, err)
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			log.Error(requestCtx, msgRequestCompleted, fields...)
		case status >= fiber.StatusBadRequest:
			log.Warn(requestCtx, msgRequestCompleted, fields...)
		default:
			log.Info(requestCtx, msgRequestCompleted, fields...)
		}

		return nil
	}
}
