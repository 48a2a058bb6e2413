package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// BreakWindow represents a sub-interval of working hours with no bookable slots (e.g. lunch)
type BreakWindow struct {
	Start types.TimeString
	End   types.TimeString
}

// AvailabilityRule represents a professional's declared working hours,
// either recurring (DayOfWeek set) or one-off (Date set) - exactly one of the two.
//
// Rules created in one administrator operation for several weekdays share a GroupID,
// so the weekday-group can be listed and edited together.
type AvailabilityRule struct {
	ID             int64
	GroupID        uuid.UUID
	ProfessionalID int64
	ServiceID      *int64 // NULL = rule applies to any service

	DayOfWeek *int       // 0 = Sunday ... 6 = Saturday; nil for one-off rules
	Date      *time.Time // concrete date; nil for recurring rules

	StartTime           types.TimeString
	EndTime             types.TimeString
	SlotDurationMinutes int
	Break               *BreakWindow

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRecurring returns true if the rule repeats weekly
func (r *AvailabilityRule) IsRecurring() bool {
	return r.DayOfWeek != nil && r.Date == nil
}

// IsOneOff returns true if the rule is bound to a single concrete date
func (r *AvailabilityRule) IsOneOff() bool {
	return r.Date != nil && r.DayOfWeek == nil
}

// HasBreak returns true if the rule carries a break window
func (r *AvailabilityRule) HasBreak() bool {
	return r.Break != nil
}

// WindowMinutes returns the length of the working window in minutes
func (r *AvailabilityRule) WindowMinutes() int {
	return r.EndTime.Minutes() - r.StartTime.Minutes()
}
