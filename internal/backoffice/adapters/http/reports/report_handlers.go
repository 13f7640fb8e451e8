// Package reports содержит HTTP обработчики отчетов.
package reports

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"finledger/internal/backoffice/adapters/http/httperr"
	"finledger/internal/backoffice/app/dto"
	"finledger/internal/backoffice/ports/api"
	"finledger/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCashflow = "handling cashflow report request"

	ErrMsgInvalidPeriod = "from and to are required in YYYY-MM-DD format"
)

// Handler обработчик HTTP-запросов отчетов.
type Handler struct {
	reportUseCase api.ReportUseCase
}

// NewHandler создает новый экземпляр обработчика отчетов.
func NewHandler(reportUseCase api.ReportUseCase) *Handler {
	return &Handler{reportUseCase: reportUseCase}
}

// Cashflow обрабатывает запрос отчета о движении средств за период.
func (h *Handler) Cashflow(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.Cashflow"))
	log.Debug(requestCtx, LogHandlerCashflow)

	from, err := time.Parse(dto.DueDateLayout, ctx.Query("from"))
	if err != nil {
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidPeriod)
	}
	to, err := time.Parse(dto.DueDateLayout, ctx.Query("to"))
	if err != nil {
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidPeriod)
	}
	if to.Before(from) {
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidPeriod)
	}

	report, err := h.reportUseCase.Cashflow(requestCtx, from, to)
	if err != nil {
		log.Error(requestCtx, "failed to build cashflow report", zap.Error(err))
		return httperr.Send(ctx, err)
	}

	if err := ctx.JSON(report); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
