package worker

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/service/requests/models"
)

// RequestService интерфейс сервиса запросов
type RequestService interface {
	ExpireIdle(ctx context.Context) (*models.RequestListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Reaper периодически удаляет брошенные незавершённые запросы
// Каждый тик идемпотентен: уже удалённые запросы повторно не находятся
type Reaper struct {
	service  RequestService
	interval time.Duration
	logger   Logger
}

// NewReaper создает новый экземпляр чистильщика запросов
func NewReaper(service RequestService, interval time.Duration, logger Logger) *Reaper {
	return &Reaper{
		service:  service,
		interval: interval,
		logger:   logger,
	}
}

// Run крутит цикл чистки до отмены контекста
// Запускается как отдельная горутина из main
func (r *Reaper) Run(ctx context.Context) {
	r.logger.Info("Reaper: started with interval %s", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("Reaper: stopped")
			return
		case <-ticker.C:
			result, err := r.service.ExpireIdle(ctx)
			if err != nil {
				r.logger.Error("Reaper: failed to expire idle requests: %v", err)
				continue
			}
			if len(result.Requests) > 0 {
				r.logger.Info("Reaper: expired %d idle requests", len(result.Requests))
			}
		}
	}
}
