package slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// DaySlots слоты одного правила, спроецированные на конкретную календарную дату
type DaySlots struct {
	Date  time.Time
	Slots []domain.Slot
}

// Project разворачивает еженедельное правило в последовательность (дата, слоты)
// на горизонте [referenceDate, referenceDate + horizonMonths календарных месяцев)
//
// Для каждой даты горизонта, чей день недели входит в weekdays, запускается
// генератор с параметрами правила. Время внутри дат обнуляется - проекция
// оперирует только календарными днями.
//
// Разовые (date-based) правила проекцию не проходят - для них есть ProjectOneOff
func Project(rule *domain.AvailabilityRule, weekdays []int, horizonMonths int, referenceDate time.Time) ([]DaySlots, error) {
	if horizonMonths < domain.MinHorizonMonths || horizonMonths > domain.MaxHorizonMonths {
		return nil, fmt.Errorf("%w: got %d, allowed %d..%d",
			ErrInvalidHorizon, horizonMonths, domain.MinHorizonMonths, domain.MaxHorizonMonths)
	}

	start := dateOnly(referenceDate)
	return ProjectRange(rule, weekdays, start, start.AddDate(0, horizonMonths, 0))
}

// ProjectRange разворачивает еженедельное правило на произвольном диапазоне дат
// [from, until) - конец исключается. Используется регенерацией слотов после
// редактирования правила, где горизонт задан не месяцами, а конкретной датой
func ProjectRange(rule *domain.AvailabilityRule, weekdays []int, from, until time.Time) ([]DaySlots, error) {
	if !rule.IsRecurring() {
		return nil, fmt.Errorf("%w: recurring projection requires a dayOfWeek rule", ErrAmbiguousRule)
	}

	weekdaySet, err := toWeekdaySet(weekdays)
	if err != nil {
		return nil, err
	}

	// Шаблон слотов одинаков для каждой подходящей даты - генерируем один раз
	template, err := Generate(rule.StartTime, rule.EndTime, rule.SlotDurationMinutes, rule.Break)
	if err != nil {
		return nil, err
	}

	start := dateOnly(from)
	end := dateOnly(until)

	result := make([]DaySlots, 0)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if !weekdaySet[int(d.Weekday())] {
			continue
		}
		// Каждый день получает собственную копию шаблона - слоты разных дат
		// не должны делить backing array
		daySlots := make([]domain.Slot, len(template))
		copy(daySlots, template)
		result = append(result, DaySlots{Date: d, Slots: daySlots})
	}

	return result, nil
}

// ProjectOneOff возвращает единственную пару (дата, слоты) разового правила
func ProjectOneOff(rule *domain.AvailabilityRule) (DaySlots, error) {
	if !rule.IsOneOff() {
		return DaySlots{}, fmt.Errorf("%w: one-off projection requires a date rule", ErrAmbiguousRule)
	}

	generated, err := Generate(rule.StartTime, rule.EndTime, rule.SlotDurationMinutes, rule.Break)
	if err != nil {
		return DaySlots{}, err
	}

	return DaySlots{Date: dateOnly(*rule.Date), Slots: generated}, nil
}

// NextMonthRange возвращает начало и конец "следующего месяца" относительно reference:
// ровно один календарный месяц, начинающийся первым числом месяца после reference
func NextMonthRange(reference time.Time) (start, end time.Time) {
	firstOfThisMonth := time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())
	start = firstOfThisMonth.AddDate(0, 1, 0)
	end = start.AddDate(0, 1, 0)
	return start, end
}

// ValidateRule проверяет XOR-инвариант правила и его временные параметры
// Используется сервисом правил до записи в хранилище
func ValidateRule(rule *domain.AvailabilityRule) error {
	if rule.DayOfWeek != nil && rule.Date != nil {
		return fmt.Errorf("%w: both date and dayOfWeek are set", ErrAmbiguousRule)
	}
	if rule.DayOfWeek == nil && rule.Date == nil {
		return fmt.Errorf("%w: neither date nor dayOfWeek is set", ErrAmbiguousRule)
	}
	if rule.DayOfWeek != nil && (*rule.DayOfWeek < 0 || *rule.DayOfWeek > 6) {
		return fmt.Errorf("%w: dayOfWeek %d out of range 0..6", ErrInvalidWeekdays, *rule.DayOfWeek)
	}
	return validateRange(rule.StartTime, rule.EndTime, rule.SlotDurationMinutes, rule.Break)
}

// toWeekdaySet конвертирует список дней недели в set с валидацией
func toWeekdaySet(weekdays []int) (map[int]bool, error) {
	if len(weekdays) == 0 {
		return nil, ErrInvalidWeekdays
	}

	set := make(map[int]bool, len(weekdays))
	for _, wd := range weekdays {
		if wd < 0 || wd > 6 {
			return nil, fmt.Errorf("%w: weekday %d out of range", ErrInvalidWeekdays, wd)
		}
		set[wd] = true
	}
	return set, nil
}

// dateOnly обнуляет время, оставляя только календарную дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
