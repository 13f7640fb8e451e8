// Package clients содержит HTTP обработчики для управления клиентами.
package clients

import (
	"fmt"
	"strconv"

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
	LogHandlerCreateClient = "handling create client request"
	LogHandlerGetClient    = "handling get client request"
	LogHandlerListClients  = "handling list clients request"
	LogHandlerUpdateClient = "handling update client request"
	LogHandlerDeleteClient = "handling delete client request"

	ErrMsgInvalidClientID    = "invalid client id"
	ErrMsgInvalidPagination  = "invalid pagination parameters"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler обработчик HTTP-запросов для работы с клиентами.
type Handler struct {
	clientUseCase api.ClientUseCase
}

// NewHandler создает новый экземпляр обработчика клиентов.
func NewHandler(clientUseCase api.ClientUseCase) *Handler {
	return &Handler{clientUseCase: clientUseCase}
}

// CreateClient обрабатывает запрос на создание нового клиента.
func (h *Handler) CreateClient(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.CreateClient"))
	log.Debug(requestCtx, LogHandlerCreateClient)

	var req dto.ClientRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	client, err := h.clientUseCase.CreateClient(requestCtx, &req)
	if err != nil {
		log.Debug(requestCtx, "failed to create client", zap.Error(err))
		return httperr.Send(ctx, err)
	}

	if err := ctx.Status(fiber.StatusCreated).JSON(dto.NewClientResponse(client)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// GetClient обрабатывает запрос на получение клиента по ID.
func (h *Handler) GetClient(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.GetClient"))
	log.Debug(requestCtx, LogHandlerGetClient)

	clientID := ctx.Params("client_id")
	if clientID == "" {
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidClientID)
	}

	client, err := h.clientUseCase.GetClient(requestCtx, clientID)
	if err != nil {
		log.Debug(requestCtx, "failed to get client", zap.Error(err))
		return httperr.Send(ctx, err)
	}

	if err := ctx.JSON(dto.NewClientResponse(client)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// ListClients обрабатывает запрос на получение списка клиентов с фильтрами.
func (h *Handler) ListClients(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.ListClients"))
	log.Debug(requestCtx, LogHandlerListClients)

	page, limit, err := parsePagination(ctx)
	if err != nil {
		log.Debug(requestCtx, ErrMsgInvalidPagination, zap.Error(err))
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidPagination)
	}

	filter := &entities.ClientFilter{
		FirstName: ctx.Query("first_name"),
		LastName:  ctx.Query("last_name"),
		Email:     ctx.Query("email"),
		CpfCnpj:   ctx.Query("cpf_cnpj"),
		Page:      page,
		Limit:     limit,
	}

	clients, total, err := h.clientUseCase.ListClients(requestCtx, filter)
	if err != nil {
		log.Error(requestCtx, "failed to list clients", zap.Error(err))
		return httperr.Send(ctx, err)
	}

	if err := ctx.JSON(dto.NewClientListResponse(clients, total, filter.Page, filter.Limit)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// UpdateClient обрабатывает запрос на обновление клиента.
func (h *Handler) UpdateClient(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.UpdateClient"))
	log.Debug(requestCtx, LogHandlerUpdateClient)

	clientID := ctx.Params("client_id")
	if clientID == "" {
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidClientID)
	}

	var req dto.ClientRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Error(requestCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}

	client, err := h.clientUseCase.UpdateClient(requestCtx, clientID, &req)
	if err != nil {
		log.Debug(requestCtx, "failed to update client", zap.Error(err))
		return httperr.Send(ctx, err)
	}

	if err := ctx.JSON(dto.NewClientResponse(client)); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// DeleteClient обрабатывает запрос на удаление клиента.
func (h *Handler) DeleteClient(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx).With(zap.String("handler", "Handler.DeleteClient"))
	log.Debug(requestCtx, LogHandlerDeleteClient)

	clientID := ctx.Params("client_id")
	if clientID == "" {
		return httperr.SendMessage(ctx, fiber.StatusBadRequest, ErrMsgInvalidClientID)
	}

	if err := h.clientUseCase.DeleteClient(requestCtx, clientID); err != nil {
		log.Debug(requestCtx, "failed to delete client", zap.Error(err))
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
