package generate_future

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	genModels "github.com/m04kA/SMC-ScheduleService/internal/service/generation/models"
)

// Materializer интерфейс сервиса материализации слотов
type Materializer interface {
	MaterializeRange(ctx context.Context, operation string, professionalID int64, from, until time.Time, policy domain.ConflictPolicy) (*genModels.Result, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
