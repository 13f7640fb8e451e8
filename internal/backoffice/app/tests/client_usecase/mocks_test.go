package clientusecase_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"finledger/internal/backoffice/domain/entities"
)

type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) Create(ctx context.Context, client *entities.Client) (*entities.Client, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Client), args.Error(1)
}

func (m *mockClientRepository) FindByID(ctx context.Context, id string) (*entities.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Client), args.Error(1)
}

func (m *mockClientRepository) FindAll(ctx context.Context, filter *entities.ClientFilter) ([]*entities.Client, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entities.Client), args.Get(1).(int64), args.Error(2)
}

func (m *mockClientRepository) FindConflict(ctx context.Context, email, cpfCnpj string) (*entities.Client, error) {
	args := m.Called(ctx, email, cpfCnpj)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Client), args.Error(1)
}

func (m *mockClientRepository) Update(ctx context.Context, client *entities.Client) (*entities.Client, error) {
	args := m.Called(ctx, client)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Client), args.Error(1)
}

func (m *mockClientRepository) SoftDelete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
