package list_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// UseCase use case выборки материализованных слотов профессионала
type UseCase struct {
	slotRepo SlotRepository
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, logger Logger) *UseCase {
	return &UseCase{
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// Execute возвращает слоты профессионала с опциональной фильтрацией по периоду
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListSlots: professional=%d, from=%v, to=%v, onlyActive=%v",
		req.ProfessionalID, req.From, req.To, req.OnlyActive)

	// 1. Валидация входных данных
	if req.ProfessionalID <= 0 {
		uc.logger.Warn("ListSlots: invalid professional id=%d", req.ProfessionalID)
		return nil, fmt.Errorf("%w: professional id must be positive", ErrInvalidInput)
	}
	if req.From != nil && req.To != nil && req.To.Before(*req.From) {
		uc.logger.Warn("ListSlots: invalid period for professional=%d", req.ProfessionalID)
		return nil, ErrInvalidPeriod
	}

	// 2. Выборка из хранилища
	filter := domain.SlotsFilter{
		ProfessionalID: req.ProfessionalID,
		StartDate:      req.From,
		EndDate:        req.To,
		OnlyActive:     req.OnlyActive,
	}
	slots, err := uc.slotRepo.ListWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("ListSlots: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 3. Конвертируем в response
	views := make([]SlotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, SlotView{
			ID:        s.ID,
			RuleID:    s.RuleID,
			ServiceID: s.ServiceID,
			Date:      s.Date.Format(domain.DateFormat),
			StartTime: s.StartTime.String(),
			EndTime:   s.EndTime.String(),
			IsActive:  s.IsActive,
		})
	}

	uc.logger.Info("ListSlots: professional=%d: fetched %d slots", req.ProfessionalID, len(views))
	return &Response{
		ProfessionalID: req.ProfessionalID,
		Slots:          views,
	}, nil
}
