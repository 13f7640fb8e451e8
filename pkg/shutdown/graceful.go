// Package shutdown останавливает компоненты сервиса при получении
// сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"finledger/pkg/logger"
)

// Константы для сообщений об остановке.
const (
	LogSignalReceived = "shutdown signal received"
	LogStoppingHook   = "stopping component"
	LogHookStopped    = "component stopped"
	ErrHookFailed     = "component shutdown failed"
	ErrTimeoutExpired = "shutdown timeout expired, remaining components abandoned"
)

// Hook описывает именованный шаг остановки одного компонента.
type Hook struct {
	Name string
	Stop func(context.Context) error
}

// Wait блокирует выполнение до получения SIGINT или SIGTERM, затем
// выполняет хуки строго в порядке объявления: HTTP сервер перестает
// принимать запросы раньше, чем закрываются кэш и база данных, которыми
// пользуются его обработчики. Общий timeout ограничивает всю остановку,
// ошибка одного хука не прерывает остальные.
func Wait(timeout time.Duration, hooks ...Hook) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log := logger.Log(ctx)
	log.Info(ctx, LogSignalReceived, zap.String("signal", sig.String()))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, hook := range hooks {
			log.Info(ctx, LogStoppingHook, zap.String("component", hook.Name))
			if err := hook.Stop(ctx); err != nil {
				log.Error(ctx, ErrHookFailed,
					zap.String("component", hook.Name),
					zap.Error(err))
				continue
			}
			log.Info(ctx, LogHookStopped, zap.String("component", hook.Name))
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Error(ctx, ErrTimeoutExpired)
	}
}
