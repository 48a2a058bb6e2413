package generate_next_month

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/generation"
	"github.com/m04kA/SMC-ScheduleService/internal/slots"
)

const operation = "generate_next_month"

// UseCase use case генерации слотов на следующий календарный месяц
//
// "Следующий месяц" - ровно один календарный месяц, начинающийся первым
// числом месяца после текущей даты. Повторный вызов идемпотентен: уже
// материализованные слоты пропускаются, а не дублируются
type UseCase struct {
	materializer Materializer
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(materializer Materializer, logger Logger) *UseCase {
	return &UseCase{
		materializer: materializer,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет генерацию слотов на следующий месяц
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateNextMonth: user=%d, professional=%d", req.UserID, req.ProfessionalID)

	// 1. Валидация входных данных
	if req.ProfessionalID <= 0 {
		uc.logger.Warn("GenerateNextMonth: invalid professional id=%d", req.ProfessionalID)
		return nil, fmt.Errorf("%w: professional id must be positive", ErrInvalidInput)
	}

	// 2. Определяем границы следующего месяца
	start, end := slots.NextMonthRange(uc.timeProvider.Now())

	// 3. Материализуем слоты всех активных правил профессионала
	result, err := uc.materializer.MaterializeRange(ctx, operation, req.ProfessionalID, start, end, domain.ConflictSkip)
	if err != nil {
		if errors.Is(err, generation.ErrNoActiveRules) {
			uc.logger.Warn("GenerateNextMonth: professional=%d has no active rules", req.ProfessionalID)
			return nil, ErrNoActiveRules
		}
		uc.logger.Error("GenerateNextMonth: materialization failed for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: materialization failed: %v", ErrInternal, err)
	}

	uc.logger.Info("GenerateNextMonth: professional=%d, month=%d/%d: created=%d, skipped=%d, failed=%d",
		req.ProfessionalID, int(start.Month()), start.Year(), result.Created, result.Skipped, result.Failed)

	return &Response{
		Created: result.Created,
		Skipped: result.Skipped,
		Failed:  result.Failed,
		Month:   int(start.Month()),
		Year:    start.Year(),
	}, nil
}
