package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"finledger/internal/backoffice/ports/repositories"
)

// RepositoryFactory создает все необходимые репозитории для работы с PostgreSQL.
type RepositoryFactory struct {
	userRepo        repositories.UserRepository
	clientRepo      repositories.ClientRepository
	transactionRepo repositories.TransactionRepository
}

// NewRepositoryFactory создает новую фабрику репозиториев.
func NewRepositoryFactory(pool *pgxpool.Pool) *RepositoryFactory {
	return &RepositoryFactory{
		userRepo:        NewUserRepository(pool),
		clientRepo:      NewClientRepository(pool),
		transactionRepo: NewTransactionRepository(pool),
	}
}

// UserRepository возвращает репозиторий пользователей.
func (f *RepositoryFactory) UserRepository() repositories.UserRepository {
	return f.userRepo
}

// ClientRepository возвращает репозиторий клиентов.
func (f *RepositoryFactory) ClientRepository() repositories.ClientRepository {
	return f.clientRepo
}

// TransactionRepository возвращает репозиторий финансовых операций.
func (f *RepositoryFactory) TransactionRepository() repositories.TransactionRepository {
	return f.transactionRepo
}
