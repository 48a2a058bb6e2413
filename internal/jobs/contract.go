package jobs

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	genModels "github.com/m04kA/SMC-ScheduleService/internal/service/generation/models"
)

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	ListProfessionalIDsWithActiveRecurring(ctx context.Context) ([]int64, error)
}

// Materializer интерфейс сервиса материализации слотов
type Materializer interface {
	MaterializeRange(ctx context.Context, operation string, professionalID int64, from, until time.Time, policy domain.ConflictPolicy) (*genModels.Result, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
