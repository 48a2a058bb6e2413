package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Slot represents one fixed-duration interval derived from an availability rule.
// Immutable once generated: EndTime - StartTime always equals the rule's slot duration.
// IsActive is false iff the slot interval intersects the rule's break window.
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
}

// Overlaps проверяет реальное пересечение со вторым слотом
// Граничащие интервалы (конец одного == начало другого) пересечением НЕ считаются
func (s Slot) Overlaps(other Slot) bool {
	return s.StartTime.IsBefore(other.EndTime) && s.EndTime.IsAfter(other.StartTime)
}

// ScheduleSlot represents a materialized slot: a Slot instantiated onto a concrete
// calendar date for a professional, persisted and bookable.
type ScheduleSlot struct {
	ID             int64
	RuleID         int64
	ProfessionalID int64
	ServiceID      *int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SlotsFilter фильтр для выборки материализованных слотов
type SlotsFilter struct {
	ProfessionalID int64      // Обязательный параметр
	StartDate      *time.Time // Начало периода (опционально)
	EndDate        *time.Time // Конец периода (опционально)
	OnlyActive     bool       // Только активные слоты (вне перерывов)
}
