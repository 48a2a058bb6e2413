package rules

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	genModels "github.com/m04kA/SMC-ScheduleService/internal/service/generation/models"
)

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error)
	ListByProfessional(ctx context.Context, professionalID int64, includeInactive bool) ([]*domain.AvailabilityRule, error)
	Update(ctx context.Context, rule *domain.AvailabilityRule) error
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория материализованных слотов
type SlotRepository interface {
	DeleteByRuleFromDate(ctx context.Context, ruleID int64, from time.Time) (int64, error)
	MaxDateByRule(ctx context.Context, ruleID int64) (time.Time, error)
}

// Materializer интерфейс сервиса материализации слотов
type Materializer interface {
	MaterializeRule(ctx context.Context, rule *domain.AvailabilityRule, from, until time.Time, policy domain.ConflictPolicy) (*genModels.Result, error)
}

// ProfessionalServiceClient интерфейс клиента для ProfessionalService
type ProfessionalServiceClient interface {
	ValidateProfessional(ctx context.Context, professionalID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
