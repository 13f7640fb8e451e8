package api

import (
	"context"
	"time"

	"finledger/internal/backoffice/app/dto"
)

// ReportUseCase определяет основной порт для отчетов.
type ReportUseCase interface {
	// Cashflow строит отчет о движении средств за период по оплаченным операциям.
	Cashflow(ctx context.Context, from, to time.Time) (*dto.CashflowReport, error)
}
