package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/generation"
	"github.com/m04kA/SMC-ScheduleService/internal/slots"
)

const operation = "horizon_extend"

// HorizonExtender фоновый планировщик продления горизонта расписания
//
// По расписанию cron материализует следующий календарный месяц для каждого
// профессионала с активными еженедельными правилами, чтобы горизонт слотов
// не иссякал без ручной генерации. Повторный запуск идемпотентен:
// существующие слоты пропускаются
type HorizonExtender struct {
	ruleRepo     RuleRepository
	materializer Materializer
	logger       Logger
	cron         *cron.Cron
}

// NewHorizonExtender создает новый экземпляр планировщика
func NewHorizonExtender(ruleRepo RuleRepository, materializer Materializer, logger Logger) *HorizonExtender {
	return &HorizonExtender{
		ruleRepo:     ruleRepo,
		materializer: materializer,
		logger:       logger,
		cron:         cron.New(),
	}
}

// Start регистрирует задачу по cron-расписанию и запускает планировщик
func (e *HorizonExtender) Start(cronSpec string) error {
	if _, err := e.cron.AddFunc(cronSpec, e.run); err != nil {
		return err
	}
	e.cron.Start()
	e.logger.Info("HorizonExtender: scheduled with spec %q", cronSpec)
	return nil
}

// Stop останавливает планировщик, дожидаясь завершения текущего запуска
func (e *HorizonExtender) Stop() {
	ctx := e.cron.Stop()
	<-ctx.Done()
	e.logger.Info("HorizonExtender: stopped")
}

// run один проход: следующий месяц для всех профессионалов с активными правилами
func (e *HorizonExtender) run() {
	ctx := context.Background()
	e.logger.Info("HorizonExtender: run started")

	professionalIDs, err := e.ruleRepo.ListProfessionalIDsWithActiveRecurring(ctx)
	if err != nil {
		e.logger.Error("HorizonExtender: failed to list professionals: %v", err)
		return
	}

	start, end := slots.NextMonthRange(time.Now())

	var created, skipped, failed int
	for _, professionalID := range professionalIDs {
		result, err := e.materializer.MaterializeRange(ctx, operation, professionalID, start, end, domain.ConflictSkip)
		if err != nil {
			// Правила могли деактивировать между выборкой и генерацией
			if errors.Is(err, generation.ErrNoActiveRules) {
				continue
			}
			e.logger.Error("HorizonExtender: materialization failed for professional=%d: %v", professionalID, err)
			continue
		}
		created += result.Created
		skipped += result.Skipped
		failed += result.Failed
	}

	e.logger.Info("HorizonExtender: run finished: professionals=%d, month=%d/%d, created=%d, skipped=%d, failed=%d",
		len(professionalIDs), int(start.Month()), start.Year(), created, skipped, failed)
}
