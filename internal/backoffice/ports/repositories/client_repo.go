package repositories

import (
	"context"

	"finledger/internal/backoffice/domain/entities"
)

// ClientRepository определяет интерфейс для операций сохранения клиентов.
type ClientRepository interface {
	Create(ctx context.Context, client *entities.Client) (*entities.Client, error)

	FindByID(ctx context.Context, id string) (*entities.Client, error)

	// FindAll возвращает страницу клиентов и общее количество совпадений.
	FindAll(ctx context.Context, filter *entities.ClientFilter) ([]*entities.Client, int64, error)

	// FindConflict ищет клиента с таким email или cpf/cnpj, включая мягко
	// удаленные записи.
	FindConflict(ctx context.Context, email, cpfCnpj string) (*entities.Client, error)

	Update(ctx context.Context, client *entities.Client) (*entities.Client, error)

	SoftDelete(ctx context.Context, id string) error
}
