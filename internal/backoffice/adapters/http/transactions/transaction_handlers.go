// Package transactions содержит HTTP обработчики для финансовых операций.
package transactions

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"finledger/internal/backoffice/adapters/http/httperr"
	"finledger/internal/backoffice/app/dto"
	"finledger/internal/backoffice/domain/entities"
	"finledger/internal/backoffice/ports/api"
	"finledger/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateTransaction = "handling create transaction request"
	LogHandlerGetTransaction    = "handling get transaction request"
	LogHandlerListTransactions  = "handling list transactions request"
	LogHandlerUpdateTransaction = "handling update transaction request"
	LogHandlerPayTransaction    = "handling pay transaction request"
	LogHandlerDeleteTransaction = "handling delete transaction request"

	ErrMsgInvalidTransactionID = "invalid transaction id"
	ErrMsgInvalidPagination    = "invalid pagination parameters"
	ErrMsgInvalidDateRange     = "invalid date range, expected YYYY-MM-DD"
	ErrMsgInvalidRequestBody   = "invalid request body"
)

// Handler обработчик HTTP-запросов для работы с финансовыми операциями.
type Handler struct {
	transactionUseCase api.TransactionUseCase
}

// NewHandler создает новый экземпляр обработчика финансовых операций.
func NewHandler(transactionUseCase api.TransactionUseCase) *Handler {
	return &Handler{transactionUseCase: transactionUseCase}
}

// CreateTransaction обрабатывает запрос на создание операции.
func (h *Handler) CreateTransaction(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateTransaction"))
	log.Debug(requestCtx, LogHandlerCreateTransaction)

	var req dto.TransactionRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	transaction, err := h.transactionUseCase.CreateTransaction(requestCtx, &req)
	if err != nil {
		log.Debug(requestCtx, "failed to create transaction", zap.Error(err))
		return httperr.Send(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.NewTransactionResponse(transaction)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetTransaction обрабатывает запрос на получение операции по ID.
func (h *Handler) GetTransaction(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetTransaction"))
	log.Debug(requestCtx, LogHandlerGetTransaction)

	transactionID := ctx.Params("transaction_id")
	if transactionID == "" {
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidTransactionID)
	}

	transaction, err := h.transactionUseCase.GetTransaction(requestCtx, transactionID)
	if err != nil {
		log.Debug(requestCtx, "failed to get transaction", zap.Error(err))
		return httperr.Send(ctx, err)
	}

	if err := ctx.JSON(dto.NewTransactionResponse(transaction)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListTransactions обрабатывает запрос на получение списка операций с фильтрами.
func (h *Handler) ListTransactions(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListTransactions"))
	log.Debug(requestCtx, LogHandlerListTransactions)

	page, limit, err := parsePagination(ctx)
	if err != nil {
		log.Debug(requestCtx, ErrMsgInvalidPagination, zap.Error(err))
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidPagination)
	}

	from, err := parseDate(ctx.Query("from"))
	if err != nil {
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidDateRange)
	}
	to, err := parseDate(ctx.Query("to"))
	if err != nil {
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidDateRange)
	}

	filter := &entities.TransactionFilter{
		Kind:     ctx.Query("kind"),
		Status:   ctx.Query("status"),
		ClientID: ctx.Query("client_id"),
		From:     from,
		To:       to,
		Page:     page,
		Limit:    limit,
	}

	transactions, total, err := h.transactionUseCase.ListTransactions(requestCtx, filter)
	if err != nil {
		log.Debug(requestCtx, "failed to list transactions", zap.Error(err))
		return httperr.Send(ctx, err)
	}

	if err := ctx.JSON(dto.NewTransactionListResponse(transactions, total, filter.Page, filter.Limit)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateTransaction обрабатывает запрос на обновление операции.
func (h *Handler) UpdateTransaction(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateTransaction"))
	log.Debug(requestCtx, LogHandlerUpdateTransaction)

	transactionID := ctx.Params("transaction_id")
	if transactionID == "" {
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidTransactionID)
	}

	var req dto.TransactionRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	transaction, err := h.transactionUseCase.UpdateTransaction(requestCtx, transactionID, &req)
	if err != nil {
		log.Debug(requestCtx, "failed to update transaction", zap.Error(err))
		return httperr.Send(ctx, err)
	}

	if err := ctx.JSON(dto.NewTransactionResponse(transaction)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// PayTransaction обрабатывает запрос на оплату операции.
func (h *Handler) PayTransaction(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.PayTransaction"))
	log.Debug(requestCtx, LogHandlerPayTransaction)

	transactionID := ctx.Params("transaction_id")
	if transactionID == "" {
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidTransactionID)
	}

	transaction, err := h.transactionUseCase.PayTransaction(requestCtx, transactionID)
	if err != nil {
		log.Debug(requestCtx, "failed to pay transaction", zap.Error(err))
		return httperr.Send(ctx, err)
	}

	if err := ctx.JSON(dto.NewTransactionResponse(transaction)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteTransaction обрабатывает запрос на удаление операции.
func (h *Handler) DeleteTransaction(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteTransaction"))
	log.Debug(requestCtx, LogHandlerDeleteTransaction)

	transactionID := ctx.Params("transaction_id")
	if transactionID == "" {
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidTransactionID)
	}

	if err := h.transactionUseCase.DeleteTransaction(requestCtx, transactionID); err != nil {
		log.Debug(requestCtx, "failed to delete transaction", zap.Error(err))
		return httperr.Send(ctx, err)
	}

	if err := ctx.SendStatus(fiber.StatusNoContent); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func parsePagination(ctx fiber.Ctx) (int, int, error) {
	page, err := strconv.Atoi(ctx.Query("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, fmt.Errorf("invalid page: %q", ctx.Query("page"))
	}

	limit, err := strconv.Atoi(ctx.Query("limit", "100"))
	if err != nil || limit < 1 {
		return 0, 0, fmt.Errorf("invalid limit: %q", ctx.Query("limit"))
	}

	return page, limit, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dto.DueDateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", value, err)
	}
	return &parsed, nil
}
