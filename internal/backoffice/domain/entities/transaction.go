package entities

import (
	"errors"
	"time"
)

// Виды финансовых операций.
const (
	KindPayable    = "PAYABLE"
	KindReceivable = "RECEIVABLE"
)

// Статусы финансовых операций.
const (
	StatusPending   = "PENDING"
	StatusPaid      = "PAID"
	StatusCancelled = "CANCELLED"
)

// Ошибки домена финансовых операций.
var (
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrInvalidKind          = errors.New("kind must be PAYABLE or RECEIVABLE")
	ErrInvalidStatus        = errors.New("status must be PENDING, PAID or CANCELLED")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrTransactionPaid      = errors.New("transaction is already paid")
	ErrTransactionCancelled = errors.New("cancelled transaction cannot be paid")
	ErrInvalidDueDate       = errors.New("due date must be in YYYY-MM-DD format")
)

// Transaction представляет финансовую операцию (к оплате или к получению).
// PaymentDate заполняется при переходе операции в статус PAID.
type Transaction struct {
	ID          string
	Kind        string
	Status      string
	Amount      float64
	Description string
	DueDate     time.Time
	PaymentDate *time.Time
	ClientID    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// TransactionFilter описывает параметры поиска финансовых операций.
// From и To ограничивают дату платежа по полю due_date.
type TransactionFilter struct {
	Kind     string
	Status   string
	ClientID string
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

// ValidKind проверяет вид операции.
func ValidKind(kind string) bool {
	return kind == KindPayable || kind == KindReceivable
}

// ValidStatus проверяет статус операции.
func ValidStatus(status string) bool {
	return status == StatusPending || status == StatusPaid || status == StatusCancelled
}
