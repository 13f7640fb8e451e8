package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"finledger/internal/backoffice/domain/entities"
	"finledger/internal/backoffice/ports/repositories"
	"finledger/pkg/logger"
)

const transactionColumns = "id, kind, status, amount, COALESCE(description, ''), due_date, payment_date, client_id, created_at, updated_at, deleted_at"

// TransactionRepository реализует интерфейс repositories.TransactionRepository для работы с Postgres.
type TransactionRepository struct {
	pool PgxPoolInterface
}

// NewTransactionRepository создает новый экземпляр репозитория финансовых операций.
func NewTransactionRepository(pool PgxPoolInterface) repositories.TransactionRepository {
	return &TransactionRepository{pool: pool}
}

func scanTransaction(row pgx.Row) (*entities.Transaction, error) {
	var transaction entities.Transaction
	err := row.Scan(
		&transaction.ID,
		&transaction.Kind,
		&transaction.Status,
		&transaction.Amount,
		&transaction.Description,
		&transaction.DueDate,
		&transaction.PaymentDate,
		&transaction.ClientID,
		&transaction.CreatedAt,
		&transaction.UpdatedAt,
		&transaction.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &transaction, nil
}

// Create создает новую финансовую операцию.
func (r *TransactionRepository) Create(ctx context.Context, transaction *entities.Transaction) (*entities.Transaction, error) {
	log := logger.Log(ctx).With(zap.String("repository", "transaction"), zap.String("method", "Create"))

	query := `
        INSERT INTO transactions (kind, status, amount, description, due_date, client_id)
        VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
        RETURNING ` + transactionColumns

	created, err := scanTransaction(r.pool.QueryRow(ctx, query,
		transaction.Kind,
		transaction.Status,
		transaction.Amount,
		transaction.Description,
		transaction.DueDate,
		transaction.ClientID,
	))

	if err != nil {
		log.Error(ctx, "error creating transaction", zap.Error(err))
		return nil, fmt.Errorf("error creating transaction: %w", err)
	}

	return created, nil
}

// FindByID находит операцию по ID, исключая мягко удаленные.
func (r *TransactionRepository) FindByID(ctx context.Context, id string) (*entities.Transaction, error) {
	log := logger.Log(ctx).With(zap.String("repository", "transaction"), zap.String("method", "FindByID"))

	query := `
        SELECT ` + transactionColumns + `
        FROM transactions
        WHERE id = $1 AND deleted_at IS NULL
    `

	transaction, err := scanTransaction(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "transaction not found", zap.String("id", id))
			return nil, entities.ErrTransactionNotFound
		}
		log.Error(ctx, "error finding transaction by id", zap.Error(err))
		return nil, fmt.Errorf("error querying transaction by id: %w", err)
	}

	return transaction, nil
}

// FindAll возвращает страницу операций по фильтру и общее количество совпадений.
func (r *TransactionRepository) FindAll(ctx context.Context, filter *entities.TransactionFilter) ([]*entities.Transaction, int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "transaction"), zap.String("method", "FindAll"))

	conditions := []string{"deleted_at IS NULL"}
	args := make([]interface{}, 0, 5)

	addEqual := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	addEqual("kind", filter.Kind)
	addEqual("status", filter.Status)
	addEqual("client_id", filter.ClientID)

	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("due_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("due_date <= $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*) FROM transactions WHERE " + where

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error(ctx, "error counting transactions", zap.Error(err))
		return nil, 0, fmt.Errorf("error counting transactions: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM transactions WHERE %s ORDER BY due_date DESC LIMIT $%d OFFSET $%d",
		transactionColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "error listing transactions", zap.Error(err))
		return nil, 0, fmt.Errorf("error listing transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*entities.Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			log.Error(ctx, "error scanning transaction row", zap.Error(err))
			return nil, 0, fmt.Errorf("error scanning transaction row: %w", err)
		}
		transactions = append(transactions, transaction)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating transaction rows", zap.Error(err))
		return nil, 0, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return transactions, total, nil
}

// Update обновляет финансовую операцию.
func (r *TransactionRepository) Update(ctx context.Context, transaction *entities.Transaction) (*entities.Transaction, error) {
	log := logger.Log(ctx).With(zap.String("repository", "transaction"), zap.String("method", "Update"))

	query := `
        UPDATE transactions
        SET kind = $2, status = $3, amount = $4, description = NULLIF($5, ''),
            due_date = $6, payment_date = $7, client_id = $8, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
        RETURNING ` + transactionColumns

	updated, err := scanTransaction(r.pool.QueryRow(ctx, query,
		transaction.ID,
		transaction.Kind,
		transaction.Status,
		transaction.Amount,
		transaction.Description,
		transaction.DueDate,
		transaction.PaymentDate,
		transaction.ClientID,
	))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "transaction not found for update", zap.String("id", transaction.ID))
			return nil, entities.ErrTransactionNotFound
		}
		log.Error(ctx, "error updating transaction", zap.Error(err))
		return nil, fmt.Errorf("error updating transaction: %w", err)
	}

	return updated, nil
}

// SoftDelete помечает операцию удаленной.
func (r *TransactionRepository) SoftDelete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "transaction"), zap.String("method", "SoftDelete"))

	query := `
        UPDATE transactions
        SET deleted_at = NOW(), updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting transaction", zap.Error(err))
		return fmt.Errorf("error deleting transaction: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "transaction not found for deletion", zap.String("id", id))
		return entities.ErrTransactionNotFound
	}

	return nil
}

// FindPaidBetween возвращает оплаченные операции за период, по возрастанию даты платежа.
func (r *TransactionRepository) FindPaidBetween(ctx context.Context, from, to time.Time) ([]*entities.Transaction, error) {
	log := logger.Log(ctx).With(zap.String("repository", "transaction"), zap.String("method", "FindPaidBetween"))

	query := `
        SELECT ` + transactionColumns + `
        FROM transactions
        WHERE status = $1 AND payment_date BETWEEN $2 AND $3 AND deleted_at IS NULL
        ORDER BY payment_date ASC
    `

	rows, err := r.pool.Query(ctx, query, entities.StatusPaid, from, to)
	if err != nil {
		log.Error(ctx, "error querying paid transactions", zap.Error(err))
		return nil, fmt.Errorf("error querying paid transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*entities.Transaction, 0)
	for rows.Next() {
		transaction, err := scanTransaction(rows)
		if err != nil {
			log.Error(ctx, "error scanning transaction row", zap.Error(err))
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}
		transactions = append(transactions, transaction)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating transaction rows", zap.Error(err))
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}

	return transactions, nil
}
