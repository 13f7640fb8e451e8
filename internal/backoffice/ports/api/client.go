package api

import (
	"context"

	"finledger/internal/backoffice/app/dto"
	"finledger/internal/backoffice/domain/entities"
)

// ClientUseCase определяет основной порт для операций с клиентами.
type ClientUseCase interface {
	CreateClient(ctx context.Context, req *dto.ClientRequest) (*entities.Client, error)

	GetClient(ctx context.Context, id string) (*entities.Client, error)

	ListClients(ctx context.Context, filter *entities.ClientFilter) ([]*entities.Client, int64, error)

	UpdateClient(ctx context.Context, id string, req *dto.ClientRequest) (*entities.Client, error)

	DeleteClient(ctx context.Context, id string) error
}
