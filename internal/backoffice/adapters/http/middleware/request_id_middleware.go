package middleware

import (
	"github.com/gofiber/fiber/v3"

	"finledger/pkg/logger"
)

// HeaderRequestID - заголовок сквозного идентификатора запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware берет идентификатор запроса из заголовка
// X-Request-ID или генерирует новый, кладет его в контекст запроса
// и возвращает клиенту в том же заголовке. Все записи журнала по этому
// запросу получают поле request_id.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		ctx.SetContext(requestCtx)

		if id, ok := logger.GetRequestID(requestCtx); ok {
			ctx.Set(HeaderRequestID, id)
		}

		return ctx.Next()
	}
}
