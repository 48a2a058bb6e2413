package slots

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Generate разбивает рабочее окно [startTime, endTime) на слоты фиксированной длительности
//
// Курсор двигается от startTime с шагом slotDurationMinutes; слот [cursor, cursor+duration)
// попадает в результат только если помещается целиком (cursor+duration <= endTime) -
// неполный хвост окна молча отбрасывается, без усечения и добивки.
//
// Слот, пересекающийся с перерывом brk, помечается IsActive=false, но из результата
// не исключается. Интервалы полуоткрытые: слот, граничащий с перерывом
// (slotEnd == breakStart или slotStart == breakEnd), пересечением не считается.
//
// Перерыв целиком вне окна валиден и эффекта не имеет; startTime >= endTime,
// duration <= 0 и breakStart >= breakEnd отклоняются с ErrInvalidRange до генерации -
// молчаливый пустой результат неотличим от "рабочие часы не настроены"
func Generate(startTime, endTime types.TimeString, slotDurationMinutes int, brk *domain.BreakWindow) ([]domain.Slot, error) {
	if err := validateRange(startTime, endTime, slotDurationMinutes, brk); err != nil {
		return nil, err
	}

	result := make([]domain.Slot, 0)
	cursor := startTime

	for {
		slotEnd, err := cursor.AddMinutes(slotDurationMinutes)
		if err != nil {
			// Слот вышел за границу суток - дальше ничего не поместится
			break
		}
		if slotEnd.IsAfter(endTime) {
			break
		}

		result = append(result, domain.Slot{
			StartTime: cursor,
			EndTime:   slotEnd,
			IsActive:  !intersectsBreak(cursor, slotEnd, brk),
		})

		cursor = slotEnd
	}

	return result, nil
}

// intersectsBreak проверяет реальное пересечение слота с перерывом
// Полуоткрытая семантика: касание границ пересечением не считается
func intersectsBreak(slotStart, slotEnd types.TimeString, brk *domain.BreakWindow) bool {
	if brk == nil {
		return false
	}
	return slotStart.IsBefore(brk.End) && slotEnd.IsAfter(brk.Start)
}

// validateRange валидирует параметры генерации
func validateRange(startTime, endTime types.TimeString, slotDurationMinutes int, brk *domain.BreakWindow) error {
	if !startTime.IsBefore(endTime) {
		return fmt.Errorf("%w: startTime %s is not before endTime %s", ErrInvalidRange, startTime, endTime)
	}

	if slotDurationMinutes < domain.MinSlotDurationMinutes || slotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be within %d..%d, got %d",
			ErrInvalidRange, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes, slotDurationMinutes)
	}

	if brk != nil && !brk.Start.IsBefore(brk.End) {
		return fmt.Errorf("%w: breakStart %s is not before breakEnd %s", ErrInvalidRange, brk.Start, brk.End)
	}

	return nil
}
