package transactionusecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"finledger/internal/backoffice/app"
	"finledger/internal/backoffice/app/dto"
	"finledger/internal/backoffice/domain/entities"
)

var ErrDatabaseConnection = errors.New("database connection error")

func TestCreateTransaction(t *testing.T) {
	knownClient := &entities.Client{ID: "client-123"}

	validRequest := &dto.TransactionRequest{
		Kind:        entities.KindReceivable,
		Amount:      150.50,
		Description: "consulting services",
		DueDate:     "2026-09-15",
		ClientID:    "client-123",
	}

	createdTransaction := &entities.Transaction{
		ID:       "transaction-123",
		Kind:     entities.KindReceivable,
		Status:   entities.StatusPending,
		Amount:   150.50,
		ClientID: "client-123",
	}

	tests := []struct {
		name         string
		request      *dto.TransactionRequest
		setupMocks   func(mockTransactionRepo *mockTransactionRepository, mockClientRepo *mockClientRepository)
		expectedErr  error
		errorContext string
	}{
		{
			name:    "success - transaction starts as PENDING",
			request: validRequest,
			setupMocks: func(mockTransactionRepo *mockTransactionRepository, mockClientRepo *mockClientRepository) {
				mockClientRepo.On("FindByID", mock.Anything, "client-123").Return(knownClient, nil).Once()
				mockTransactionRepo.On("Create", mock.Anything, mock.MatchedBy(func(tx *entities.Transaction) bool {
					return tx.Status == entities.StatusPending && tx.PaymentDate == nil
				})).Return(createdTransaction, nil).Once()
			},
		},
		{
			name: "error - unknown kind",
			request: &dto.TransactionRequest{
				Kind:     "TRANSFER",
				Amount:   100,
				DueDate:  "2026-09-15",
				ClientID: "client-123",
			},
			setupMocks:   func(_ *mockTransactionRepository, _ *mockClientRepository) {},
			expectedErr:  entities.ErrInvalidKind,
			errorContext: "validating transaction",
		},
		{
			name: "error - non-positive amount",
			request: &dto.TransactionRequest{
				Kind:     entities.KindPayable,
				Amount:   0,
				DueDate:  "2026-09-15",
				ClientID: "client-123",
			},
			setupMocks:   func(_ *mockTransactionRepository, _ *mockClientRepository) {},
			expectedErr:  entities.ErrInvalidAmount,
			errorContext: "validating transaction",
		},
		{
			name: "error - malformed due date",
			request: &dto.TransactionRequest{
				Kind:     entities.KindPayable,
				Amount:   100,
				DueDate:  "15/09/2026",
				ClientID: "client-123",
			},
			setupMocks:   func(_ *mockTransactionRepository, _ *mockClientRepository) {},
			expectedErr:  entities.ErrInvalidDueDate,
			errorContext: "validating transaction",
		},
		{
			name: "error - referenced client does not exist",
			request: &dto.TransactionRequest{
				Kind:     entities.KindPayable,
				Amount:   100,
				DueDate:  "2026-09-15",
				ClientID: "ghost-client",
			},
			setupMocks: func(_ *mockTransactionRepository, mockClientRepo *mockClientRepository) {
				mockClientRepo.On("FindByID", mock.Anything, "ghost-client").
					Return(nil, entities.ErrClientNotFound).Once()
			},
			expectedErr:  entities.ErrClientNotFound,
			errorContext: "checking referenced client",
		},
		{
			name:    "error - repository failure",
			request: validRequest,
			setupMocks: func(mockTransactionRepo *mockTransactionRepository, mockClientRepo *mockClientRepository) {
				mockClientRepo.On("FindByID", mock.Anything, "client-123").Return(knownClient, nil).Once()
				mockTransactionRepo.On("Create", mock.Anything, mock.Anything).
					Return(nil, ErrDatabaseConnection).Once()
			},
			expectedErr:  ErrDatabaseConnection,
			errorContext: "creating transaction",
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			mockTransactionRepo := new(mockTransactionRepository)
			mockClientRepo := new(mockClientRepository)
			ttt.setupMocks(mockTransactionRepo, mockClientRepo)

			transactionUseCase := app.NewTransactionUseCase(mockTransactionRepo, mockClientRepo)
			transaction, err := transactionUseCase.CreateTransaction(context.Background(), ttt.request)

			if ttt.expectedErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), ttt.errorContext)
				assert.ErrorIs(t, err, ttt.expectedErr)
				assert.Nil(t, transaction)
			} else {
				require.NoError(t, err)
				require.NotNil(t, transaction)
				assert.Equal(t, entities.StatusPending, transaction.Status)
			}

			mockTransactionRepo.AssertExpectations(t)
			mockClientRepo.AssertExpectations(t)
		})
	}
}

// Обновление не меняет статус и дату платежа существующей операции.
func TestUpdateTransactionPreservesStatus(t *testing.T) {
	paidAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	existing := &entities.Transaction{
		ID:          "transaction-123",
		Kind:        entities.KindReceivable,
		Status:      entities.StatusPaid,
		Amount:      100,
		PaymentDate: &paidAt,
		ClientID:    "client-123",
	}

	mockTransactionRepo := new(mockTransactionRepository)
	mockClientRepo := new(mockClientRepository)

	mockTransactionRepo.On("FindByID", mock.Anything, "transaction-123").Return(existing, nil).Once()
	mockClientRepo.On("FindByID", mock.Anything, "client-123").
		Return(&entities.Client{ID: "client-123"}, nil).Once()
	mockTransactionRepo.On("Update", mock.Anything, mock.MatchedBy(func(tx *entities.Transaction) bool {
		return tx.ID == "transaction-123" &&
			tx.Status == entities.StatusPaid &&
			tx.PaymentDate != nil && tx.PaymentDate.Equal(paidAt) &&
			tx.Amount == 250.0
	})).Return(existing, nil).Once()

	transactionUseCase := app.NewTransactionUseCase(mockTransactionRepo, mockClientRepo)
	_, err := transactionUseCase.UpdateTransaction(context.Background(), "transaction-123", &dto.TransactionRequest{
		Kind:     entities.KindReceivable,
		Amount:   250.0,
		DueDate:  "2026-09-15",
		ClientID: "client-123",
	})

	require.NoError(t, err)
	mockTransactionRepo.AssertExpectations(t)
	mockClientRepo.AssertExpectations(t)
}

func TestPayTransaction(t *testing.T) {
	tests := []struct {
		name         string
		stored       *entities.Transaction
		setupUpdate  bool
		expectedErr  error
		errorContext string
	}{
		{
			name: "success - pending transaction paid",
			stored: &entities.Transaction{
				ID:     "transaction-123",
				Kind:   entities.KindReceivable,
				Status: entities.StatusPending,
				Amount: 100,
			},
			setupUpdate: true,
		},
		{
			name: "error - already paid",
			stored: &entities.Transaction{
				ID:     "transaction-123",
				Status: entities.StatusPaid,
			},
			expectedErr:  entities.ErrTransactionPaid,
			errorContext: "paying transaction",
		},
		{
			name: "error - cancelled transaction",
			stored: &entities.Transaction{
				ID:     "transaction-123",
				Status: entities.StatusCancelled,
			},
			expectedErr:  entities.ErrTransactionCancelled,
			errorContext: "paying transaction",
		},
	}

	for _, ttt := range tests {
		t.Run(ttt.name, func(t *testing.T) {
			mockTransactionRepo := new(mockTransactionRepository)
			mockClientRepo := new(mockClientRepository)

			mockTransactionRepo.On("FindByID", mock.Anything, "transaction-123").
				Return(ttt.stored, nil).Once()
			if ttt.setupUpdate {
				mockTransactionRepo.On("Update", mock.Anything, mock.MatchedBy(func(tx *entities.Transaction) bool {
					return tx.Status == entities.StatusPaid && tx.PaymentDate != nil
				})).Return(ttt.stored, nil).Once()
			}

			transactionUseCase := app.NewTransactionUseCase(mockTransactionRepo, mockClientRepo)
			transaction, err := transactionUseCase.PayTransaction(context.Background(), "transaction-123")

			if ttt.expectedErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), ttt.errorContext)
				assert.ErrorIs(t, err, ttt.expectedErr)
				assert.Nil(t, transaction)
			} else {
				require.NoError(t, err)
				require.NotNil(t, transaction)
			}

			mockTransactionRepo.AssertExpectations(t)
		})
	}
}

func TestListTransactionsValidatesFilter(t *testing.T) {
	t.Run("error - unknown kind in filter", func(t *testing.T) {
		mockTransactionRepo := new(mockTransactionRepository)
		mockClientRepo := new(mockClientRepository)

		transactionUseCase := app.NewTransactionUseCase(mockTransactionRepo, mockClientRepo)
		transactions, total, err := transactionUseCase.ListTransactions(context.Background(), &entities.TransactionFilter{
			Kind: "TRANSFER",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidKind)
		assert.Nil(t, transactions)
		assert.Zero(t, total)
	})

	t.Run("error - unknown status in filter", func(t *testing.T) {
		mockTransactionRepo := new(mockTransactionRepository)
		mockClientRepo := new(mockClientRepository)

		transactionUseCase := app.NewTransactionUseCase(mockTransactionRepo, mockClientRepo)
		_, _, err := transactionUseCase.ListTransactions(context.Background(), &entities.TransactionFilter{
			Status: "OVERDUE",
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrInvalidStatus)
	})

	t.Run("success - empty filter fields are not validated", func(t *testing.T) {
		mockTransactionRepo := new(mockTransactionRepository)
		mockClientRepo := new(mockClientRepository)

		mockTransactionRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f *entities.TransactionFilter) bool {
			return f.Page == app.DefaultPage && f.Limit == app.DefaultLimit
		})).Return([]*entities.Transaction{}, int64(0), nil).Once()

		transactionUseCase := app.NewTransactionUseCase(mockTransactionRepo, mockClientRepo)
		_, _, err := transactionUseCase.ListTransactions(context.Background(), &entities.TransactionFilter{})

		require.NoError(t, err)
		mockTransactionRepo.AssertExpectations(t)
	})
}

func TestDeleteTransaction(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		mockTransactionRepo := new(mockTransactionRepository)
		mockClientRepo := new(mockClientRepository)
		mockTransactionRepo.On("SoftDelete", mock.Anything, "transaction-123").Return(nil).Once()

		transactionUseCase := app.NewTransactionUseCase(mockTransactionRepo, mockClientRepo)
		err := transactionUseCase.DeleteTransaction(context.Background(), "transaction-123")

		require.NoError(t, err)
		mockTransactionRepo.AssertExpectations(t)
	})

	t.Run("error - transaction not found", func(t *testing.T) {
		mockTransactionRepo := new(mockTransactionRepository)
		mockClientRepo := new(mockClientRepository)
		mockTransactionRepo.On("SoftDelete", mock.Anything, "missing").
			Return(entities.ErrTransactionNotFound).Once()

		transactionUseCase := app.NewTransactionUseCase(mockTransactionRepo, mockClientRepo)
		err := transactionUseCase.DeleteTransaction(context.Background(), "missing")

		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrTransactionNotFound)
		mockTransactionRepo.AssertExpectations(t)
	})
}
