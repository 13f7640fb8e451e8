package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"finledger/internal/backoffice/domain/entities"
	"finledger/internal/backoffice/ports/repositories"
	"finledger/pkg/logger"
)

const clientColumns = "id, first_name, last_name, email, cpf_cnpj, created_at, updated_at, deleted_at"

// ClientRepository реализует интерфейс repositories.ClientRepository для работы с Postgres.
type ClientRepository struct {
	pool PgxPoolInterface
}

// NewClientRepository создает новый экземпляр репозитория клиентов.
func NewClientRepository(pool PgxPoolInterface) repositories.ClientRepository {
	return &ClientRepository{pool: pool}
}

func scanClient(row pgx.Row) (*entities.Client, error) {
	var client entities.Client
	err := row.Scan(
		&client.ID,
		&client.FirstName,
		&client.LastName,
		&client.Email,
		&client.CpfCnpj,
		&client.CreatedAt,
		&client.UpdatedAt,
		&client.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// Create создает нового клиента.
func (r *ClientRepository) Create(ctx context.Context, client *entities.Client) (*entities.Client, error) {
	log := logger.Log(ctx).With(zap.String("repository", "client"), zap.String("method", "Create"))

	query := `
        INSERT INTO clients (first_name, last_name, email, cpf_cnpj)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + clientColumns

	created, err := scanClient(r.pool.QueryRow(ctx, query,
		client.FirstName,
		client.LastName,
		client.Email,
		client.CpfCnpj,
	))

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			if strings.Contains(pgErr.ConstraintName, "email") {
				log.Debug(ctx, "duplicate client email", zap.String("email", client.Email))
				return nil, entities.ErrClientEmailAlreadyExists
			}
			log.Debug(ctx, "duplicate cpf/cnpj")
			return nil, entities.ErrCpfCnpjAlreadyExists
		}
		log.Error(ctx, "error creating client", zap.Error(err))
		return nil, fmt.Errorf("error creating client: %w", err)
	}

	return created, nil
}

// FindByID находит клиента по ID, исключая мягко удаленных.
func (r *ClientRepository) FindByID(ctx context.Context, id string) (*entities.Client, error) {
	log := logger.Log(ctx).With(zap.String("repository", "client"), zap.String("method", "FindByID"))

	query := `
        SELECT ` + clientColumns + `
        FROM clients
        WHERE id = $1 AND deleted_at IS NULL
    `

	client, err := scanClient(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "client not found", zap.String("id", id))
			return nil, entities.ErrClientNotFound
		}
		log.Error(ctx, "error finding client by id", zap.Error(err))
		return nil, fmt.Errorf("error querying client by id: %w", err)
	}

	return client, nil
}

// FindAll возвращает страницу клиентов по фильтру и общее количество совпадений.
func (r *ClientRepository) FindAll(ctx context.Context, filter *entities.ClientFilter) ([]*entities.Client, int64, error) {
	log := logger.Log(ctx).With(zap.String("repository", "client"), zap.String("method", "FindAll"))

	conditions := []string{"deleted_at IS NULL"}
	args := make([]interface{}, 0, 4)

	addLike := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, "%"+value+"%")
		conditions = append(conditions, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
	}

	addLike("first_name", filter.FirstName)
	addLike("last_name", filter.LastName)
	addLike("email", filter.Email)
	addLike("cpf_cnpj", filter.CpfCnpj)

	where := strings.Join(conditions, " AND ")

	countQuery := "SELECT COUNT(*) FROM clients WHERE " + where

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		log.Error(ctx, "error counting clients", zap.Error(err))
		return nil, 0, fmt.Errorf("error counting clients: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM clients WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		clientColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error(ctx, "error listing clients", zap.Error(err))
		return nil, 0, fmt.Errorf("error listing clients: %w", err)
	}
	defer rows.Close()

	clients := make([]*entities.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			log.Error(ctx, "error scanning client row", zap.Error(err))
			return nil, 0, fmt.Errorf("error scanning client row: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating client rows", zap.Error(err))
		return nil, 0, fmt.Errorf("error iterating client rows: %w", err)
	}

	return clients, total, nil
}

// FindConflict ищет клиента с таким email или cpf/cnpj, включая мягко удаленных.
func (r *ClientRepository) FindConflict(ctx context.Context, email, cpfCnpj string) (*entities.Client, error) {
	log := logger.Log(ctx).With(zap.String("repository", "client"), zap.String("method", "FindConflict"))

	query := `
        SELECT ` + clientColumns + `
        FROM clients
        WHERE email = $1 OR cpf_cnpj = $2
    `

	client, err := scanClient(r.pool.QueryRow(ctx, query, email, cpfCnpj))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrClientNotFound
		}
		log.Error(ctx, "error finding conflicting client", zap.Error(err))
		return nil, fmt.Errorf("error querying conflicting client: %w", err)
	}

	return client, nil
}

// Update обновляет информацию о клиенте.
func (r *ClientRepository) Update(ctx context.Context, client *entities.Client) (*entities.Client, error) {
	log := logger.Log(ctx).With(zap.String("repository", "client"), zap.String("method", "Update"))

	query := `
        UPDATE clients
        SET first_name = $2, last_name = $3, email = $4, cpf_cnpj = $5, updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
        RETURNING ` + clientColumns

	updated, err := scanClient(r.pool.QueryRow(ctx, query,
		client.ID,
		client.FirstName,
		client.LastName,
		client.Email,
		client.CpfCnpj,
	))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "client not found for update", zap.String("id", client.ID))
			return nil, entities.ErrClientNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, entities.ErrClientEmailAlreadyExists
			}
			return nil, entities.ErrCpfCnpjAlreadyExists
		}
		log.Error(ctx, "error updating client", zap.Error(err))
		return nil, fmt.Errorf("error updating client: %w", err)
	}

	return updated, nil
}

// SoftDelete помечает клиента удаленным.
func (r *ClientRepository) SoftDelete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "client"), zap.String("method", "SoftDelete"))

	query := `
        UPDATE clients
        SET deleted_at = NOW(), updated_at = NOW()
        WHERE id = $1 AND deleted_at IS NULL
    `

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		log.Error(ctx, "error deleting client", zap.Error(err))
		return fmt.Errorf("error deleting client: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "client not found for deletion", zap.String("id", id))
		return entities.ErrClientNotFound
	}

	return nil
}
