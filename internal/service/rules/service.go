package rules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	ruleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/rule"
	slotRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/slot"
	profClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/professionalservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/rules/models"
	"github.com/m04kA/SMC-ScheduleService/internal/slots"
)

// Service сервис для работы с правилами доступности
//
// Жизненный цикл слотов при редактировании правила - полная регенерация:
// будущие слоты правила удаляются и материализуются заново по новым
// параметрам, прошедшие даты не затрагиваются
type Service struct {
	ruleRepo     RuleRepository
	slotRepo     SlotRepository
	materializer Materializer
	profClient   ProfessionalServiceClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(
	ruleRepo RuleRepository,
	slotRepo SlotRepository,
	materializer Materializer,
	profClient ProfessionalServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		ruleRepo:     ruleRepo,
		slotRepo:     slotRepo,
		materializer: materializer,
		profClient:   profClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create создает правила доступности из запроса
// Для daysOfWeek-запроса создаётся по одному правилу на каждый день недели,
// все с общим groupId; создание группы атомарно
func (s *Service) Create(ctx context.Context, req *models.CreateRulesRequest) (*models.RuleListResponse, error) {
	s.logger.Info("Create: professional=%d, date=%v, daysOfWeek=%v",
		req.ProfessionalID, req.Date, req.DaysOfWeek)

	// 1. Проверяем профессионала во внешнем сервисе
	if err := s.profClient.ValidateProfessional(ctx, req.ProfessionalID); err != nil {
		if errors.Is(err, profClient.ErrProfessionalNotFound) {
			s.logger.Warn("Create: professional=%d not found", req.ProfessionalID)
			return nil, ErrProfessionalNotFound
		}
		s.logger.Error("Create: professional validation failed for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: Create - professional validation: %v", ErrInternal, err)
	}

	// 2. Конвертируем запрос в доменные правила
	domainRules, err := req.ToDomainRules()
	if err != nil {
		s.logger.Warn("Create: invalid request for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Валидируем временные параметры каждого правила
	for _, rule := range domainRules {
		if err := slots.ValidateRule(rule); err != nil {
			s.logger.Warn("Create: rule validation failed for professional=%d: %v", req.ProfessionalID, err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	// 4. Создаем группу правил атомарно
	created := make([]*domain.AvailabilityRule, 0, len(domainRules))
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		for _, rule := range domainRules {
			result, err := s.ruleRepo.Create(txCtx, rule)
			if err != nil {
				return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
			}
			created = append(created, result)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Create: failed to create rules for professional=%d: %v", req.ProfessionalID, err)
		return nil, err
	}

	s.logger.Info("Create: created %d rules for professional=%d, group=%s",
		len(created), req.ProfessionalID, created[0].GroupID)
	return models.FromDomainRuleList(created), nil
}

// List возвращает правила доступности профессионала
func (s *Service) List(ctx context.Context, professionalID int64, includeInactive bool) (*models.RuleListResponse, error) {
	s.logger.Info("List: fetching rules for professional=%d, includeInactive=%v", professionalID, includeInactive)

	rules, err := s.ruleRepo.ListByProfessional(ctx, professionalID, includeInactive)
	if err != nil {
		s.logger.Error("List: repository error for professional=%d: %v", professionalID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d rules for professional=%d", len(rules), professionalID)
	return models.FromDomainRuleList(rules), nil
}

// Update изменяет правило и перегенерирует его будущие слоты
//
// Регенерация выполняется в сериализуемой транзакции: правило обновляется,
// слоты с сегодняшней даты удаляются и материализуются заново до прежнего
// горизонта. Прошедшие даты не затрагиваются
func (s *Service) Update(ctx context.Context, ruleID int64, req *models.UpdateRuleRequest) (*models.RuleResponse, error) {
	s.logger.Info("Update: updating rule id=%d", ruleID)

	// 1. Получаем правило
	rule, err := s.ruleRepo.GetByID(ctx, ruleID)
	if err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Update: rule id=%d not found", ruleID)
			return nil, ErrRuleNotFound
		}
		s.logger.Error("Update: repository error for rule id=%d: %v", ruleID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 2. Накладываем изменения и валидируем
	if err := req.ApplyTo(rule); err != nil {
		s.logger.Warn("Update: invalid request for rule id=%d: %v", ruleID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := slots.ValidateRule(rule); err != nil {
		s.logger.Warn("Update: rule validation failed for rule id=%d: %v", ruleID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	today := dateOnly(s.timeProvider.Now())

	// 3. Обновляем правило и перегенерируем будущие слоты атомарно
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.ruleRepo.Update(txCtx, rule); err != nil {
			if errors.Is(err, ruleRepo.ErrRuleNotFound) {
				return ErrRuleNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		// 3.1. Определяем горизонт регенерации по уже материализованным слотам
		maxDate, err := s.slotRepo.MaxDateByRule(txCtx, ruleID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				// Слоты ещё не материализованы - регенерировать нечего
				return nil
			}
			return fmt.Errorf("%w: Update - failed to resolve horizon: %v", ErrInternal, err)
		}

		// 3.2. Удаляем будущие слоты правила
		deleted, err := s.slotRepo.DeleteByRuleFromDate(txCtx, ruleID, today)
		if err != nil {
			return fmt.Errorf("%w: Update - failed to delete future slots: %v", ErrInternal, err)
		}
		s.logger.Info("Update: deleted %d future slots for rule id=%d", deleted, ruleID)

		// 3.3. Деактивированное правило слотов больше не даёт
		if !rule.IsActive || maxDate.Before(today) {
			return nil
		}

		// 3.4. Материализуем заново до прежнего горизонта (конец диапазона исключается)
		result, err := s.materializer.MaterializeRule(txCtx, rule, today, maxDate.AddDate(0, 0, 1), domain.ConflictSkip)
		if err != nil {
			return fmt.Errorf("%w: Update - regeneration failed: %v", ErrInternal, err)
		}
		s.logger.Info("Update: regenerated slots for rule id=%d: created=%d, skipped=%d, failed=%d",
			ruleID, result.Created, result.Skipped, result.Failed)
		return nil
	})
	if err != nil {
		s.logger.Error("Update: transaction failed for rule id=%d: %v", ruleID, err)
		return nil, err
	}

	s.logger.Info("Update: successfully updated rule id=%d", ruleID)
	return models.FromDomainRule(rule), nil
}

// Delete удаляет правило вместе с его будущими материализованными слотами
func (s *Service) Delete(ctx context.Context, ruleID int64) error {
	s.logger.Info("Delete: deleting rule id=%d", ruleID)

	// Проверяем существование до транзакции, чтобы вернуть честный 404
	if _, err := s.ruleRepo.GetByID(ctx, ruleID); err != nil {
		if errors.Is(err, ruleRepo.ErrRuleNotFound) {
			s.logger.Warn("Delete: rule id=%d not found", ruleID)
			return ErrRuleNotFound
		}
		s.logger.Error("Delete: repository error for rule id=%d: %v", ruleID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	today := dateOnly(s.timeProvider.Now())

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		deleted, err := s.slotRepo.DeleteByRuleFromDate(txCtx, ruleID, today)
		if err != nil {
			return fmt.Errorf("%w: Delete - failed to delete future slots: %v", ErrInternal, err)
		}
		s.logger.Info("Delete: deleted %d future slots for rule id=%d", deleted, ruleID)

		if err := s.ruleRepo.Delete(txCtx, ruleID); err != nil {
			if errors.Is(err, ruleRepo.ErrRuleNotFound) {
				return ErrRuleNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Delete: transaction failed for rule id=%d: %v", ruleID, err)
		return err
	}

	s.logger.Info("Delete: successfully deleted rule id=%d", ruleID)
	return nil
}

// dateOnly обнуляет время, оставляя только календарную дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
