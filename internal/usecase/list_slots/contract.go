package list_slots

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// SlotRepository интерфейс репозитория материализованных слотов
type SlotRepository interface {
	ListWithFilter(ctx context.Context, filter domain.SlotsFilter) ([]*domain.ScheduleSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
