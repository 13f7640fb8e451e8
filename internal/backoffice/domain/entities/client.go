package entities

import (
	"errors"
	"time"
)

// Ошибки домена клиента.
var (
	ErrClientNotFound           = errors.New("client not found")
	ErrClientEmailAlreadyExists = errors.New("client email already in use")
	ErrCpfCnpjAlreadyExists     = errors.New("cpf/cnpj already in use")
	ErrEmptyClientName          = errors.New("first and last name are required")
)

// Client представляет клиента, с которым связаны финансовые операции.
// DeletedAt отличен от nil для мягко удаленных записей.
type Client struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	CpfCnpj   string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// ClientFilter описывает параметры поиска клиентов.
// Строковые поля сопоставляются без учета регистра по подстроке.
type ClientFilter struct {
	FirstName string
	LastName  string
	Email     string
	CpfCnpj   string
	Page      int
	Limit     int
}
