package generation

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	ListByProfessional(ctx context.Context, professionalID int64, includeInactive bool) ([]*domain.AvailabilityRule, error)
}

// SlotRepository интерфейс репозитория материализованных слотов
type SlotRepository interface {
	Create(ctx context.Context, s *domain.ScheduleSlot) (*domain.ScheduleSlot, error)
	Upsert(ctx context.Context, s *domain.ScheduleSlot) (*domain.ScheduleSlot, error)
}

// MetricsObserver интерфейс для записи метрик генерации
type MetricsObserver interface {
	ObserveGeneration(operation string, created, skipped, failed int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
