package api

import (
	"context"

	"finledger/internal/backoffice/app/dto"
	"finledger/internal/backoffice/domain/entities"
)

// TransactionUseCase определяет основной порт для финансовых операций.
type TransactionUseCase interface {
	CreateTransaction(ctx context.Context, req *dto.TransactionRequest) (*entities.Transaction, error)

	GetTransaction(ctx context.Context, id string) (*entities.Transaction, error)

	ListTransactions(ctx context.Context, filter *entities.TransactionFilter) ([]*entities.Transaction, int64, error)

	UpdateTransaction(ctx context.Context, id string, req *dto.TransactionRequest) (*entities.Transaction, error)

	// PayTransaction переводит операцию из PENDING в PAID с датой платежа.
	PayTransaction(ctx context.Context, id string) (*entities.Transaction, error)

	DeleteTransaction(ctx context.Context, id string) error
}
