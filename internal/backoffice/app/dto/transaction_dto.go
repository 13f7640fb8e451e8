package dto

import (
	"time"

	"finledger/internal/backoffice/domain/entities"
)

// DueDateLayout задает формат дат в запросах и отчетах.
const DueDateLayout = "2006-01-02"

// TransactionRequest содержит данные для создания или обновления операции.
type TransactionRequest struct {
	Kind        string  `json:"kind"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	DueDate     string  `json:"due_date"`
	ClientID    string  `json:"client_id"`
}

// TransactionResponse содержит данные финансовой операции.
type TransactionResponse struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"`
	Status      string     `json:"status"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description,omitempty"`
	DueDate     string     `json:"due_date"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	ClientID    string     `json:"client_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TransactionListResponse содержит страницу финансовых операций.
type TransactionListResponse struct {
	Items []*TransactionResponse `json:"items"`
	Total int64                  `json:"total"`
	Page  int                    `json:"page"`
	Limit int                    `json:"limit"`
}

// NewTransactionResponse преобразует сущность операции в ответ API.
func NewTransactionResponse(transaction *entities.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          transaction.ID,
		Kind:        transaction.Kind,
		Status:      transaction.Status,
		Amount:      transaction.Amount,
		Description: transaction.Description,
		DueDate:     transaction.DueDate.Format(DueDateLayout),
		PaymentDate: transaction.PaymentDate,
		ClientID:    transaction.ClientID,
		CreatedAt:   transaction.CreatedAt,
		UpdatedAt:   transaction.UpdatedAt,
	}
}

// NewTransactionListResponse преобразует страницу операций в ответ API.
func NewTransactionListResponse(transactions []*entities.Transaction, total int64, page, limit int) *TransactionListResponse {
	items := make([]*TransactionResponse, 0, len(transactions))
	for _, transaction := range transactions {
		items = append(items, NewTransactionResponse(transaction))
	}
	return &TransactionListResponse{Items: items, Total: total, Page: page, Limit: limit}
}
