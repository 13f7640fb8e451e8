package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"finledger/internal/backoffice/app/dto"
	"finledger/internal/backoffice/domain/entities"
	"finledger/internal/backoffice/ports/api"
	"finledger/internal/backoffice/ports/repositories"
	"finledger/pkg/logger"
)

const (
	methodCreateTransaction = "CreateTransaction"
	methodGetTransaction    = "GetTransaction"
	methodListTransactions  = "ListTransactions"
	methodUpdateTransaction = "UpdateTransaction"
	methodPayTransaction    = "PayTransaction"
	methodDeleteTransaction = "DeleteTransaction"

	msgCreatingTransaction = "creating transaction"
	msgTransactionCreated  = "transaction created successfully"
	msgFetchingTransaction = "fetching transaction"
	msgListingTransactions = "listing transactions"
	msgTransactionUpdated  = "transaction updated successfully"
	msgPayingTransaction   = "paying transaction"
	msgTransactionPaid     = "transaction paid successfully"
	msgTransactionDeleted  = "transaction deleted successfully"
	msgUnknownClient       = "referenced client does not exist"
	msgNotPayable          = "transaction is not in a payable status"

	msgErrFindingTransaction  = "failed to find transaction"
	msgErrCreatingTransaction = "failed to create transaction"
	msgErrListingTransactions = "failed to list transactions"
	msgErrUpdatingTransaction = "failed to update transaction"
	msgErrDeletingTransaction = "failed to delete transaction"

	errCtxValidatingTransaction = "validating transaction"
	errCtxCheckingClient        = "checking referenced client"
	errCtxCreatingTransaction   = "creating transaction"
	errCtxFindingTransaction    = "finding transaction"
	errCtxListingTransactions   = "listing transactions"
	errCtxUpdatingTransaction   = "updating transaction"
	errCtxPayingTransaction     = "paying transaction"
	errCtxDeletingTransaction   = "deleting transaction"
)

// TransactionUseCaseImpl реализует интерфейс TransactionUseCase.
type TransactionUseCaseImpl struct {
	transactionRepo repositories.TransactionRepository
	clientRepo      repositories.ClientRepository
}

// NewTransactionUseCase создает новый экземпляр сервиса финансовых операций.
func NewTransactionUseCase(
	transactionRepo repositories.TransactionRepository,
	clientRepo repositories.ClientRepository,
) api.TransactionUseCase {
	return &TransactionUseCaseImpl{
		transactionRepo: transactionRepo,
		clientRepo:      clientRepo,
	}
}

// CreateTransaction создает финансовую операцию в статусе PENDING.
func (t *TransactionUseCaseImpl) CreateTransaction(ctx context.Context, req *dto.TransactionRequest) (*entities.Transaction, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateTransaction))
	log.Debug(ctx, msgCreatingTransaction)

	transaction, err := t.validate(ctx, req)
	if err != nil {
		return nil, err
	}

	created, err := t.transactionRepo.Create(ctx, transaction)
	if err != nil {
		log.Error(ctx, msgErrCreatingTransaction, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCreatingTransaction, err)
	}

	log.Info(ctx, msgTransactionCreated, zap.String("transactionID", created.ID))
	return created, nil
}

// GetTransaction находит операцию по ID.
func (t *TransactionUseCaseImpl) GetTransaction(ctx context.Context, id string) (*entities.Transaction, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetTransaction), zap.String("transactionID", id))
	log.Debug(ctx, msgFetchingTransaction)

	transaction, err := t.transactionRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, entities.ErrTransactionNotFound) {
			log.Error(ctx, msgErrFindingTransaction, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingTransaction, err)
	}

	return transaction, nil
}

// ListTransactions возвращает страницу операций по фильтру.
func (t *TransactionUseCaseImpl) ListTransactions(ctx context.Context, filter *entities.TransactionFilter) ([]*entities.Transaction, int64, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListTransactions))
	log.Debug(ctx, msgListingTransactions)

	if filter.Kind != "" && !entities.ValidKind(filter.Kind) {
		return nil, 0, fmt.Errorf("%s: %w", errCtxValidatingTransaction, entities.ErrInvalidKind)
	}
	if filter.Status != "" && !entities.ValidStatus(filter.Status) {
		return nil, 0, fmt.Errorf("%s: %w", errCtxValidatingTransaction, entities.ErrInvalidStatus)
	}

	filter.Page, filter.Limit = NormalizePagination(filter.Page, filter.Limit)

	transactions, total, err := t.transactionRepo.FindAll(ctx, filter)
	if err != nil {
		log.Error(ctx, msgErrListingTransactions, zap.Error(err))
		return nil, 0, fmt.Errorf("%s: %w", errCtxListingTransactions, err)
	}

	return transactions, total, nil
}

// UpdateTransaction обновляет операцию, сохраняя ее статус и дату платежа.
func (t *TransactionUseCaseImpl) UpdateTransaction(ctx context.Context, id string, req *dto.TransactionRequest) (*entities.Transaction, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateTransaction), zap.String("transactionID", id))

	existing, err := t.transactionRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, entities.ErrTransactionNotFound) {
			log.Error(ctx, msgErrFindingTransaction, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingTransaction, err)
	}

	transaction, err := t.validate(ctx, req)
	if err != nil {
		return nil, err
	}
	transaction.ID = id
	transaction.Status = existing.Status
	transaction.PaymentDate = existing.PaymentDate

	updated, err := t.transactionRepo.Update(ctx, transaction)
	if err != nil {
		log.Error(ctx, msgErrUpdatingTransaction, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingTransaction, err)
	}

	log.Info(ctx, msgTransactionUpdated)
	return updated, nil
}

// PayTransaction переводит операцию из PENDING в PAID с текущей датой платежа.
func (t *TransactionUseCaseImpl) PayTransaction(ctx context.Context, id string) (*entities.Transaction, error) {
	log := logger.Log(ctx).With(zap.String("method", methodPayTransaction), zap.String("transactionID", id))
	log.Debug(ctx, msgPayingTransaction)

	transaction, err := t.transactionRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, entities.ErrTransactionNotFound) {
			log.Error(ctx, msgErrFindingTransaction, zap.Error(err))
		}
		return nil, fmt.Errorf("%s: %w", errCtxFindingTransaction, err)
	}

	switch transaction.Status {
	case entities.StatusPaid:
		log.Debug(ctx, msgNotPayable)
		return nil, fmt.Errorf("%s: %w", errCtxPayingTransaction, entities.ErrTransactionPaid)
	case entities.StatusCancelled:
		log.Debug(ctx, msgNotPayable)
		return nil, fmt.Errorf("%s: %w", errCtxPayingTransaction, entities.ErrTransactionCancelled)
	}

	now := time.Now()
	transaction.Status = entities.StatusPaid
	transaction.PaymentDate = &now

	paid, err := t.transactionRepo.Update(ctx, transaction)
	if err != nil {
		log.Error(ctx, msgErrUpdatingTransaction, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxPayingTransaction, err)
	}

	log.Info(ctx, msgTransactionPaid)
	return paid, nil
}

// DeleteTransaction помечает операцию удаленной.
func (t *TransactionUseCaseImpl) DeleteTransaction(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteTransaction), zap.String("transactionID", id))

	if err := t.transactionRepo.SoftDelete(ctx, id); err != nil {
		if !errors.Is(err, entities.ErrTransactionNotFound) {
			log.Error(ctx, msgErrDeletingTransaction, zap.Error(err))
		}
		return fmt.Errorf("%s: %w", errCtxDeletingTransaction, err)
	}

	log.Info(ctx, msgTransactionDeleted)
	return nil
}

// Валидация входных данных операции с проверкой существования клиента.
func (t *TransactionUseCaseImpl) validate(ctx context.Context, req *dto.TransactionRequest) (*entities.Transaction, error) {
	log := logger.Log(ctx)

	if !entities.ValidKind(req.Kind) {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingTransaction, entities.ErrInvalidKind)
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingTransaction, entities.ErrInvalidAmount)
	}

	dueDate, err := time.Parse(dto.DueDateLayout, req.DueDate)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtxValidatingTransaction, entities.ErrInvalidDueDate)
	}

	if _, err := t.clientRepo.FindByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, entities.ErrClientNotFound) {
			log.Debug(ctx, msgUnknownClient, zap.String("clientID", req.ClientID))
			return nil, fmt.Errorf("%s: %w", errCtxCheckingClient, entities.ErrClientNotFound)
		}
		log.Error(ctx, msgErrFindingTransaction, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxCheckingClient, err)
	}

	return &entities.Transaction{
		Kind:        req.Kind,
		Status:      entities.StatusPending,
		Amount:      req.Amount,
		Description: req.Description,
		DueDate:     dueDate,
		ClientID:    req.ClientID,
	}, nil
}
