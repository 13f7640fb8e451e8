package app

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"finledger/internal/backoffice/app/dto"
	"finledger/internal/backoffice/domain/entities"
	"finledger/internal/backoffice/ports/api"
	"finledger/internal/backoffice/ports/cache"
	"finledger/internal/backoffice/ports/repositories"
	"finledger/pkg/logger"
)

const (
	methodCashflow = "Cashflow"

	cashflowCacheKeyPrefix = "cashflow:"

	msgBuildingCashflow   = "building cashflow report"
	msgCashflowCacheHit   = "cashflow report served from cache"
	msgCashflowBuilt      = "cashflow report built"
	msgErrCacheRead       = "failed to read cashflow report from cache"
	msgErrCacheWrite      = "failed to cache cashflow report"
	msgErrDecodingCached  = "failed to decode cached cashflow report"
	msgErrLoadingPayments = "failed to load paid transactions"

	errCtxLoadingPayments = "loading paid transactions"
)

// ReportUseCaseImpl реализует интерфейс ReportUseCase.
type ReportUseCaseImpl struct {
	transactionRepo repositories.TransactionRepository
	cache           cache.Cache
}

// NewReportUseCase создает новый экземпляр сервиса отчетов.
func NewReportUseCase(transactionRepo repositories.TransactionRepository, reportCache cache.Cache) api.ReportUseCase {
	return &ReportUseCaseImpl{
		transactionRepo: transactionRepo,
		cache:           reportCache,
	}
}

// Cashflow строит отчет о движении средств по оплаченным операциям за период.
// Результат кэшируется по периоду; сбой кэша не мешает построению отчета.
func (r *ReportUseCaseImpl) Cashflow(ctx context.Context, from, to time.Time) (*dto.CashflowReport, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCashflow))
	log.Debug(ctx, msgBuildingCashflow)

	key := cashflowCacheKey(from, to)

	if cached, err := r.cache.Get(ctx, key); err != nil {
		log.Warn(ctx, msgErrCacheRead, zap.Error(err))
	} else if cached != "" {
		var report dto.CashflowReport
		if err := json.Unmarshal([]byte(cached), &report); err != nil {
			log.Warn(ctx, msgErrDecodingCached, zap.Error(err))
		} else {
			log.Debug(ctx, msgCashflowCacheHit)
			return &report, nil
		}
	}

	transactions, err := r.transactionRepo.FindPaidBetween(ctx, from, to)
	if err != nil {
		log.Error(ctx, msgErrLoadingPayments, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingPayments, err)
	}

	report := buildCashflowReport(from, to, transactions)

	if encoded, err := json.Marshal(report); err == nil {
		if err := r.cache.Set(ctx, key, string(encoded), 0); err != nil {
			log.Warn(ctx, msgErrCacheWrite, zap.Error(err))
		}
	}

	log.Info(ctx, msgCashflowBuilt, zap.Int("transactions", len(transactions)))
	return report, nil
}

func cashflowCacheKey(from, to time.Time) string {
	return cashflowCacheKeyPrefix + from.Format(dto.DueDateLayout) + ":" + to.Format(dto.DueDateLayout)
}

// Агрегация оплаченных операций в итоги и таймлайн по дням.
// Операции приходят отсортированными по дате платежа по возрастанию.
func buildCashflowReport(from, to time.Time, transactions []*entities.Transaction) *dto.CashflowReport {
	report := &dto.CashflowReport{
		From:     from.Format(dto.DueDateLayout),
		To:       to.Format(dto.DueDateLayout),
		Timeline: make([]*dto.CashflowDay, 0),
	}

	days := make(map[string]*dto.CashflowDay)

	for _, transaction := range transactions {
		if transaction.PaymentDate == nil {
			continue
		}

		date := transaction.PaymentDate.Format(dto.DueDateLayout)
		day, ok := days[date]
		if !ok {
			day = &dto.CashflowDay{Date: date}
			days[date] = day
			report.Timeline = append(report.Timeline, day)
		}

		switch transaction.Kind {
		case entities.KindReceivable:
			report.TotalReceived += transaction.Amount
			day.In += transaction.Amount
		case entities.KindPayable:
			report.TotalPaid += transaction.Amount
			day.Out += transaction.Amount
		}
	}

	for _, day := range report.Timeline {
		day.In = round2(day.In)
		day.Out = round2(day.Out)
	}

	report.TotalReceived = round2(report.TotalReceived)
	report.TotalPaid = round2(report.TotalPaid)
	report.Balance = round2(report.TotalReceived - report.TotalPaid)

	return report
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
