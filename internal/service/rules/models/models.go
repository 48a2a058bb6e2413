package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var (
	// ErrAmbiguousSchedule возвращается, когда в запросе заданы и date, и daysOfWeek,
	// либо не задано ни одно из двух
	ErrAmbiguousSchedule = errors.New("exactly one of date or daysOfWeek must be set")

	// ErrInvalidTime возвращается при некорректном формате времени
	ErrInvalidTime = errors.New("invalid time format, expected HH:MM")

	// ErrInvalidDate возвращается при некорректном формате даты
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrHalfConfiguredBreak возвращается, когда задана только одна граница перерыва
	ErrHalfConfiguredBreak = errors.New("breakStart and breakEnd must be set together")
)

// Request модели

// CreateRulesRequest запрос на создание правил доступности
// Либо разовое правило на конкретную дату (date), либо еженедельная группа
// (daysOfWeek) - по одному правилу на каждый день недели с общим groupId
type CreateRulesRequest struct {
	ProfessionalID      int64   `json:"professionalId"`
	ServiceID           *int64  `json:"serviceId,omitempty"`
	Date                *string `json:"date,omitempty"`       // "2025-10-15", разовое правило
	DaysOfWeek          []int   `json:"daysOfWeek,omitempty"` // 0=воскресенье .. 6=суббота
	StartTime           string  `json:"startTime"`            // "09:00"
	EndTime             string  `json:"endTime"`              // "18:00"
	SlotDurationMinutes int     `json:"slotDurationMinutes"`  // 0 = значение по умолчанию
	BreakStart          *string `json:"breakStart,omitempty"`
	BreakEnd            *string `json:"breakEnd,omitempty"`
}

// ToDomainRules конвертирует запрос в набор доменных правил
// Все правила одной weekday-группы получают общий GroupID
func (r *CreateRulesRequest) ToDomainRules() ([]*domain.AvailabilityRule, error) {
	hasDate := r.Date != nil
	hasWeekdays := len(r.DaysOfWeek) > 0
	if hasDate == hasWeekdays {
		return nil, ErrAmbiguousSchedule
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, ErrInvalidTime
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, ErrInvalidTime
	}

	brk, err := toBreakWindow(r.BreakStart, r.BreakEnd)
	if err != nil {
		return nil, err
	}

	duration := r.SlotDurationMinutes
	if duration == 0 {
		duration = domain.DefaultSlotDurationMinutes
	}

	groupID := uuid.New()

	template := domain.AvailabilityRule{
		GroupID:             groupID,
		ProfessionalID:      r.ProfessionalID,
		ServiceID:           r.ServiceID,
		StartTime:           startTime,
		EndTime:             endTime,
		SlotDurationMinutes: duration,
		Break:               brk,
		IsActive:            true,
	}

	if hasDate {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		rule := template
		rule.Date = &date
		return []*domain.AvailabilityRule{&rule}, nil
	}

	result := make([]*domain.AvailabilityRule, 0, len(r.DaysOfWeek))
	for _, weekday := range r.DaysOfWeek {
		wd := weekday
		rule := template
		rule.DayOfWeek = &wd
		result = append(result, &rule)
	}
	return result, nil
}

// UpdateRuleRequest запрос на изменение правила доступности
// Меняет временные параметры; слоты правила на будущие даты перегенерируются
type UpdateRuleRequest struct {
	StartTime           string  `json:"startTime"`
	EndTime             string  `json:"endTime"`
	SlotDurationMinutes int     `json:"slotDurationMinutes"`
	BreakStart          *string `json:"breakStart,omitempty"`
	BreakEnd            *string `json:"breakEnd,omitempty"`
	IsActive            *bool   `json:"isActive,omitempty"`
}

// ApplyTo накладывает изменения запроса на существующее доменное правило
func (r *UpdateRuleRequest) ApplyTo(rule *domain.AvailabilityRule) error {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return ErrInvalidTime
	}
	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return ErrInvalidTime
	}

	brk, err := toBreakWindow(r.BreakStart, r.BreakEnd)
	if err != nil {
		return err
	}

	rule.StartTime = startTime
	rule.EndTime = endTime
	rule.Break = brk
	if r.SlotDurationMinutes != 0 {
		rule.SlotDurationMinutes = r.SlotDurationMinutes
	}
	if r.IsActive != nil {
		rule.IsActive = *r.IsActive
	}
	return nil
}

// Response модели

// RuleResponse ответ с данными правила доступности
type RuleResponse struct {
	ID                  int64   `json:"id"`
	GroupID             string  `json:"groupId"`
	ProfessionalID      int64   `json:"professionalId"`
	ServiceID           *int64  `json:"serviceId,omitempty"`
	DayOfWeek           *int    `json:"dayOfWeek,omitempty"`
	Date                *string `json:"date,omitempty"`
	StartTime           string  `json:"startTime"`
	EndTime             string  `json:"endTime"`
	SlotDurationMinutes int     `json:"slotDurationMinutes"`
	BreakStart          *string `json:"breakStart,omitempty"`
	BreakEnd            *string `json:"breakEnd,omitempty"`
	IsActive            bool    `json:"isActive"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// RuleListResponse ответ со списком правил доступности
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// FromDomainRule конвертирует доменное правило в response
func FromDomainRule(rule *domain.AvailabilityRule) *RuleResponse {
	resp := &RuleResponse{
		ID:                  rule.ID,
		GroupID:             rule.GroupID.String(),
		ProfessionalID:      rule.ProfessionalID,
		ServiceID:           rule.ServiceID,
		DayOfWeek:           rule.DayOfWeek,
		StartTime:           rule.StartTime.String(),
		EndTime:             rule.EndTime.String(),
		SlotDurationMinutes: rule.SlotDurationMinutes,
		IsActive:            rule.IsActive,
		CreatedAt:           rule.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           rule.UpdatedAt.Format(time.RFC3339),
	}

	if rule.Date != nil {
		date := rule.Date.Format(domain.DateFormat)
		resp.Date = &date
	}
	if rule.Break != nil {
		breakStart := rule.Break.Start.String()
		breakEnd := rule.Break.End.String()
		resp.BreakStart = &breakStart
		resp.BreakEnd = &breakEnd
	}
	return resp
}

// FromDomainRuleList конвертирует список доменных правил в response
func FromDomainRuleList(rules []*domain.AvailabilityRule) *RuleListResponse {
	result := make([]RuleResponse, 0, len(rules))
	for _, rule := range rules {
		result = append(result, *FromDomainRule(rule))
	}
	return &RuleListResponse{Rules: result}
}

// toBreakWindow конвертирует пару опциональных строк в окно перерыва
func toBreakWindow(breakStart, breakEnd *string) (*domain.BreakWindow, error) {
	if (breakStart == nil) != (breakEnd == nil) {
		return nil, ErrHalfConfiguredBreak
	}
	if breakStart == nil {
		return nil, nil
	}

	start, err := types.NewTimeStringFromString(*breakStart)
	if err != nil {
		return nil, ErrInvalidTime
	}
	end, err := types.NewTimeStringFromString(*breakEnd)
	if err != nil {
		return nil, ErrInvalidTime
	}
	return &domain.BreakWindow{Start: start, End: end}, nil
}
