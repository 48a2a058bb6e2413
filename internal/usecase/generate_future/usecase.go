package generate_future

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/generation"
)

const operation = "generate_future"

// UseCase use case генерации слотов на выбранный горизонт (1, 3, 6 или 12 месяцев)
//
// Горизонт отсчитывается от сегодняшней даты. Политика onConflict управляет
// судьбой уже материализованных слотов: skip оставляет их как есть (по
// умолчанию), replace перезаписывает параметрами правила
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

// Execute выполняет генерацию слотов на горизонте req.Months месяцев
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GenerateFuture: user=%d, professional=%d, months=%d, onConflict=%q",
		req.UserID, req.ProfessionalID, req.Months, req.OnConflict)

	// 1. Валидация входных данных
	if req.ProfessionalID <= 0 {
		uc.logger.Warn("GenerateFuture: invalid professional id=%d", req.ProfessionalID)
		return nil, fmt.Errorf("%w: professional id must be positive", ErrInvalidInput)
	}
	if !domain.IsValidHorizon(req.Months) {
		uc.logger.Warn("GenerateFuture: invalid horizon months=%d", req.Months)
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHorizon, req.Months)
	}

	policy, err := resolvePolicy(req.OnConflict)
	if err != nil {
		uc.logger.Warn("GenerateFuture: invalid policy %q", req.OnConflict)
		return nil, err
	}

	// 2. Горизонт: [сегодня, сегодня + months календарных месяцев)
	now := uc.timeProvider.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, req.Months, 0)

	// 3. Материализуем слоты всех активных правил профессионала
	result, err := uc.materializer.MaterializeRange(ctx, operation, req.ProfessionalID, start, end, policy)
	if err != nil {
		if errors.Is(err, generation.ErrNoActiveRules) {
			uc.logger.Warn("GenerateFuture: professional=%d has no active rules", req.ProfessionalID)
			return nil, ErrNoActiveRules
		}
		uc.logger.Error("GenerateFuture: materialization failed for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: materialization failed: %v", ErrInternal, err)
	}

	uc.logger.Info("GenerateFuture: professional=%d, months=%d: created=%d, skipped=%d, failed=%d",
		req.ProfessionalID, req.Months, result.Created, result.Skipped, result.Failed)

	return &Response{
		TotalCreated: result.Created,
		TotalSkipped: result.Skipped,
		TotalFailed:  result.Failed,
		Months:       req.Months,
	}, nil
}

// resolvePolicy валидирует политику конфликтов, пустая строка - skip
func resolvePolicy(onConflict string) (domain.ConflictPolicy, error) {
	if onConflict == "" {
		return domain.ConflictSkip, nil
	}
	policy := domain.ConflictPolicy(onConflict)
	if !policy.IsValid() {
		return "", fmt.Errorf("%w: got %q", ErrInvalidPolicy, onConflict)
	}
	return policy, nil
}
