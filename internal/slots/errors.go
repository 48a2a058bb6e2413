package slots

import "errors"

var (
	// ErrInvalidRange возвращается при некорректном временном диапазоне:
	// startTime >= endTime, slotDurationMinutes <= 0 или breakStart >= breakEnd
	// Невалидный диапазон - это ошибка конфигурации, а не "нет рабочих часов",
	// поэтому он не может молча давать пустой результат
	ErrInvalidRange = errors.New("slots: invalid time range")

	// ErrAmbiguousRule возвращается, когда у правила заданы и date, и dayOfWeek,
	// либо не задано ни одно из двух
	ErrAmbiguousRule = errors.New("slots: rule must have exactly one of date or dayOfWeek")

	// ErrInvalidHorizon возвращается при горизонте проекции меньше одного месяца
	ErrInvalidHorizon = errors.New("slots: projection horizon must be at least one month")

	// ErrInvalidWeekdays возвращается при пустом или некорректном наборе дней недели
	ErrInvalidWeekdays = errors.New("slots: weekdays must be a non-empty set of 0..6")
)
