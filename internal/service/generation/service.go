package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ScheduleService/internal/service/generation/models"
	"github.com/m04kA/SMC-ScheduleService/internal/slots"
)

// Service сервис материализации слотов из правил доступности
//
// Батч генерации - набор независимых операций: ошибка одного слота не
// прерывает остальные, каждая попытка попадает ровно в один из счётчиков
// Result (created / skipped / failed)
type Service struct {
	ruleRepo RuleRepository
	slotRepo SlotRepository
	metrics  MetricsObserver
	logger   Logger
}

// NewService создает новый экземпляр сервиса генерации
func NewService(
	ruleRepo RuleRepository,
	slotRepo SlotRepository,
	metrics MetricsObserver,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo: ruleRepo,
		slotRepo: slotRepo,
		metrics:  metrics,
		logger:   logger,
	}
}

// MaterializeRange материализует слоты всех активных правил профессионала
// на диапазоне дат [from, until)
//
// operation - метка операции для метрик (generate_next_month, generate_future, ...)
func (s *Service) MaterializeRange(
	ctx context.Context,
	operation string,
	professionalID int64,
	from, until time.Time,
	policy domain.ConflictPolicy,
) (*models.Result, error) {
	s.logger.Info("MaterializeRange: professional=%d, range=[%s, %s), policy=%s",
		professionalID, from.Format(domain.DateFormat), until.Format(domain.DateFormat), policy)

	rules, err := s.ruleRepo.ListByProfessional(ctx, professionalID, false)
	if err != nil {
		s.logger.Error("MaterializeRange: failed to list rules for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: MaterializeRange - failed to list rules: %v", ErrInternal, err)
	}

	if len(rules) == 0 {
		s.logger.Warn("MaterializeRange: professional=%d has no active rules", professionalID)
		return nil, ErrNoActiveRules
	}

	total := &models.Result{}
	for _, rule := range rules {
		result, err := s.MaterializeRule(ctx, rule, from, until, policy)
		if err != nil {
			s.logger.Error("MaterializeRange: rule id=%d materialization failed: %v", rule.ID, err)
			return nil, err
		}
		total.Add(*result)
	}

	if s.metrics != nil {
		s.metrics.ObserveGeneration(operation, total.Created, total.Skipped, total.Failed)
	}

	s.logger.Info("MaterializeRange: professional=%d done: created=%d, skipped=%d, failed=%d",
		professionalID, total.Created, total.Skipped, total.Failed)
	return total, nil
}

// MaterializeRule материализует слоты одного правила на диапазоне дат [from, until)
// Разовые правила дают слоты только если их дата попадает в диапазон
func (s *Service) MaterializeRule(
	ctx context.Context,
	rule *domain.AvailabilityRule,
	from, until time.Time,
	policy domain.ConflictPolicy,
) (*models.Result, error) {
	var (
		days []slots.DaySlots
		err  error
	)

	switch {
	case rule.IsRecurring():
		days, err = slots.ProjectRange(rule, []int{*rule.DayOfWeek}, from, until)
	case rule.IsOneOff():
		var day slots.DaySlots
		day, err = slots.ProjectOneOff(rule)
		if err == nil && !day.Date.Before(from) && day.Date.Before(until) {
			days = []slots.DaySlots{day}
		}
	default:
		err = slots.ValidateRule(rule)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: rule id=%d: %v", ErrInvalidRule, rule.ID, err)
	}

	result := &models.Result{}
	for _, day := range days {
		for _, slot := range day.Slots {
			s.materializeSlot(ctx, rule, day.Date, slot, policy, result)
		}
	}

	return result, nil
}

// materializeSlot выполняет одну независимую попытку записи слота,
// относя её результат к одному из счётчиков
func (s *Service) materializeSlot(
	ctx context.Context,
	rule *domain.AvailabilityRule,
	date time.Time,
	slot domain.Slot,
	policy domain.ConflictPolicy,
	result *models.Result,
) {
	scheduleSlot := &domain.ScheduleSlot{
		RuleID:         rule.ID,
		ProfessionalID: rule.ProfessionalID,
		ServiceID:      rule.ServiceID,
		Date:           date,
		StartTime:      slot.StartTime,
		EndTime:        slot.EndTime,
		IsActive:       slot.IsActive,
	}

	if policy == domain.ConflictReplace {
		if _, err := s.slotRepo.Upsert(ctx, scheduleSlot); err != nil {
			s.logger.Warn("materializeSlot: upsert failed for professional=%d, date=%s, start=%s: %v",
				rule.ProfessionalID, date.Format(domain.DateFormat), slot.StartTime, err)
			result.Failed++
			return
		}
		result.Created++
		return
	}

	_, err := s.slotRepo.Create(ctx, scheduleSlot)
	switch {
	case err == nil:
		result.Created++
	case errors.Is(err, slotRepo.ErrSlotAlreadyExists):
		// Идемпотентность: повторная генерация не дублирует слоты
		result.Skipped++
	default:
		s.logger.Warn("materializeSlot: create failed for professional=%d, date=%s, start=%s: %v",
			rule.ProfessionalID, date.Format(domain.DateFormat), slot.StartTime, err)
		result.Failed++
	}
}
