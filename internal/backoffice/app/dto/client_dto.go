package dto

import (
	"time"

	"finledger/internal/backoffice/domain/entities"
)

// ClientRequest содержит данные для создания или обновления клиента.
type ClientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	CpfCnpj   string `json:"cpf_cnpj"`
}

// ClientResponse содержит данные клиента.
type ClientResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CpfCnpj   string    `json:"cpf_cnpj"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClientListResponse содержит страницу клиентов.
type ClientListResponse struct {
	Items []*ClientResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// NewClientResponse преобразует сущность клиента в ответ API.
func NewClientResponse(client *entities.Client) *ClientResponse {
	return &ClientResponse{
		ID:        client.ID,
		FirstName: client.FirstName,
		LastName:  client.LastName,
		Email:     client.Email,
		CpfCnpj:   client.CpfCnpj,
		CreatedAt: client.CreatedAt,
		UpdatedAt: client.UpdatedAt,
	}
}

// NewClientListResponse преобразует страницу клиентов в ответ API.
func NewClientListResponse(clients []*entities.Client, total int64, page, limit int) *ClientListResponse {
	items := make([]*ClientResponse, 0, len(clients))
	for _, client := range clients {
		items = append(items, NewClientResponse(client))
	}
	return &ClientListResponse{Items: items, Total: total, Page: page, Limit: limit}
}
