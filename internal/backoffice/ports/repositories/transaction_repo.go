package repositories

import (
	"context"
	"time"

	"finledger/internal/backoffice/domain/entities"
)

// TransactionRepository определяет интерфейс для операций сохранения
// финансовых операций.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *entities.Transaction) (*entities.Transaction, error)

	FindByID(ctx context.Context, id string) (*entities.Transaction, error)

	// FindAll возвращает страницу операций и общее количество совпадений.
	FindAll(ctx context.Context, filter *entities.TransactionFilter) ([]*entities.Transaction, int64, error)

	Update(ctx context.Context, transaction *entities.Transaction) (*entities.Transaction, error)

	SoftDelete(ctx context.Context, id string) error

	// FindPaidBetween возвращает оплаченные операции с датой платежа в
	// заданном периоде, отсортированные по дате платежа.
	FindPaidBetween(ctx context.Context, from, to time.Time) ([]*entities.Transaction, error)
}
