package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"finledger/internal/backoffice/app/dto"
	"finledger/internal/backoffice/domain/cpfcnpj"
	"finledger/internal/backoffice/domain/entities"
	"finledger/internal/backoffice/ports/api"
	"finledger/internal/backoffice/ports/repositories"
	"finledger/pkg/logger"
)

// Границы пагинации списков.
const (
	DefaultPage  = 1
	DefaultLimit = 100
	MaxLimit     = 1000
)

const (
	methodCreateClient = "CreateClient"
	methodGetClient    = "GetClient"
	methodListClients  = "ListClients"
	methodUpdateClient = "UpdateClient"
	methodDeleteClient = "DeleteClient"

	msgCreatingClient  = "creating client"
	msgClientCreated   = "client created successfully"
	msgClientConflict  = "conflicting client already exists"
	msgInvalidCpfCnpj  = "invalid cpf/cnpj provided"
	msgClientUpdated   = "client updated successfully"
	msgClientDeleted   = "client deleted successfully"
	msgListingClients  = "listing clients"
	msgFetchingClient  = "fetching client"

	msgErrCheckingConflict = "failed to check conflicting client"
	msgErrCreatingClient   = "failed to create client"
	msgErrFindingClient    = "failed to find client"
	msgErrListingClients   = "failed to list clients"
	msgErrUpdatingClient   = "failed to update client"
	msgErrDeletingClient   = "failed to delete client"

	errCtxValidatingClient  = "validating client"
	errCtxCheckingConflict  = "checking conflicting client"
	errCtxCreatingClient    = "creating client"
	errCtxFindingClient     = "finding client"
	errCtxListingClients    = "listing clients"
	errCtxUpdatingClient    = "updating client"
	errCtxDeletingClient    = "deleting client"
)

// ClientUseCaseImpl реализует интерфейс ClientUseCase.
type ClientUseCaseImpl struct {
	clientRepo repositories.ClientRepository
}

// NewClientUseCase создает новый экземпляр сервиса клиентов.
func NewClientUseCase(clientRepo repositories.ClientRepository) api.ClientUseCase {
	return &ClientUseCaseImpl{clientRepo: clientRepo}
}

// CreateClient создает нового клиента. CPF/CNPJ сохраняется в каноническом
// формате, конфликты проверяются с учетом мягко удаленных записей.
func (c *ClientUseCaseImpl) CreateClient(ctx context.Context, req *dto.ClientRequest) (*entities.Client, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateClient))
	log.Debug(ctx, msgCreatingClient)

	client, err := c.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := c.checkConflict(ctx, client.Email, client.CpfCnpj, ""); err != nil {
		return nil, err
	}

	created, err := c.clientRepo.Create(ctx, client)
	if err != nil {
		log.Error(ctx, msgErrCreatingClient, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingClient, err)
	}

	log.Info(ctx, msgClientCreated, zap.String("clientID", created.ID))
	return created, nil
}

// GetClient находит клиента по ID.
func (c *ClientUseCaseImpl) GetClient(ctx context.Context, id string) (*entities.Client, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetClient), zap.String("clientID", id))
	log.Debug(ctx, msgFetchingClient)

	client, err := c.clientRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, entities.ErrClientNotFound) {
			log.Error(ctx, msgErrFindingClient, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingClient, err)
	}

	return client, nil
}

// ListClients возвращает страницу клиентов по фильтру.
func (c *ClientUseCaseImpl) ListClients(ctx context.Context, filter *entities.ClientFilter) ([]*entities.Client, int64, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListClients))
	log.Debug(ctx, msgListingClients)

	filter.Page, filter.Limit = NormalizePagination(filter.Page, filter.Limit)

	clients, total, err := c.clientRepo.FindAll(ctx, filter)
	if err != nil {
		log.Error(ctx, msgErrListingClients, zap.Error(err))
		return nil, 0, fmt.Errorf("%s: %w", errCtxListingClients, err)
	}

	return clients, total, nil
}

// UpdateClient обновляет информацию о клиенте.
func (c *ClientUseCaseImpl) UpdateClient(ctx context.Context, id string, req *dto.ClientRequest) (*entities.Client, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateClient), zap.String("clientID", id))

	if _, err := c.clientRepo.FindByID(ctx, id); err != nil {
		if !errors.Is(err, entities.ErrClientNotFound) {
			log.Error(ctx, msgErrFindingClient, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingClient, err)
	}

	client, err := c.validate(ctx, req)
	if err != nil {
		return nil, err
	}
	client.ID = id

	if err := c.checkConflict(ctx, client.Email, client.CpfCnpj, id); err != nil {
		return nil, err
	}

	updated, err := c.clientRepo.Update(ctx, client)
	if err != nil {
		log.Error(ctx, msgErrUpdatingClient, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingClient, err)
	}

	log.Info(ctx, msgClientUpdated)
	return updated, nil
}

// DeleteClient помечает клиента удаленным.
func (c *ClientUseCaseImpl) DeleteClient(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteClient), zap.String("clientID", id))

	if err := c.clientRepo.SoftDelete(ctx, id); err != nil {
		if !errors.Is(err, entities.ErrClientNotFound) {
			log.Error(ctx, msgErrDeletingClient, zap.Error(err))
		}
		return fmt.Errorf("%s: %w", errCtxDeletingClient, err)
	}

	log.Info(ctx, msgClientDeleted)
	return nil
}

// Валидация входных данных клиента с канонизацией CPF/CNPJ.
func (c *ClientUseCaseImpl) validate(ctx context.Context, req *dto.ClientRequest) (*entities.Client, error) {
	log := logger.Log(ctx)

	if req.FirstName == "" || req.LastName == "" {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingClient, entities.ErrEmptyClientName)
	}
	if err := validateEmail(req.Email); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingClient, err)
	}
	if !cpfcnpj.Valid(req.CpfCnpj) {
		log.Debug(ctx, msgInvalidCpfCnpj)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingClient, cpfcnpj.ErrInvalid)
	}

	return &entities.Client{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		CpfCnpj:   cpfcnpj.Format(req.CpfCnpj),
	}, nil
}

// Проверка конфликтов по email и CPF/CNPJ, включая мягко удаленные записи.
// selfID исключает обновляемую запись из проверки.
func (c *ClientUseCaseImpl) checkConflict(ctx context.Context, email, cpfCnpj, selfID string) error {
	log := logger.Log(ctx)

	existing, err := c.clientRepo.FindConflict(ctx, email, cpfCnpj)
	if err != nil {
		if errors.Is(err, entities.ErrClientNotFound) {
			return nil
		}
		log.Error(ctx, msgErrCheckingConflict, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxCheckingConflict, err)
	}

	if existing.ID == selfID {
		return nil
	}

	log.Debug(ctx, msgClientConflict, zap.String("conflictID", existing.ID))
	if existing.Email == email {
		return fmt.Errorf("%s: %w", errCtxCheckingConflict, entities.ErrClientEmailAlreadyExists)
	}
	return fmt.Errorf("%s: %w", errCtxCheckingConflict, entities.ErrCpfCnpjAlreadyExists)
}

// NormalizePagination приводит страницу и размер страницы к допустимым границам.
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}
