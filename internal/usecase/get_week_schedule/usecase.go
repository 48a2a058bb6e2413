package get_week_schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/layout"
)

const daysPerWeek = 7

// UseCase use case недельного расписания профессионала
//
// Записи недели группируются по дням, внутри каждого дня раскладка по
// колонкам считается на полном наборе записей, после чего ячейка
// усекается до maxVisible самых ранних записей с счётчиком "+K ещё"
type UseCase struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// Execute строит недельное расписание
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetWeekSchedule: user=%d, professional=%d, weekStart=%s, maxVisible=%d",
		req.UserID, req.ProfessionalID, req.WeekStart.Format(domain.DateFormat), req.MaxVisible)

	// 1. Валидация входных данных
	if req.ProfessionalID <= 0 {
		uc.logger.Warn("GetWeekSchedule: invalid professional id=%d", req.ProfessionalID)
		return nil, fmt.Errorf("%w: professional id must be positive", ErrInvalidInput)
	}
	if req.WeekStart.IsZero() {
		uc.logger.Warn("GetWeekSchedule: weekStart is required")
		return nil, fmt.Errorf("%w: weekStart is required", ErrInvalidInput)
	}
	if req.MaxVisible < 0 {
		uc.logger.Warn("GetWeekSchedule: invalid maxVisible=%d", req.MaxVisible)
		return nil, fmt.Errorf("%w: maxVisible must not be negative", ErrInvalidInput)
	}

	maxVisible := req.MaxVisible
	if maxVisible == 0 {
		maxVisible = domain.DefaultWeekCellMaxVisible
	}

	weekStart := dateOnly(req.WeekStart)
	weekEnd := weekStart.AddDate(0, 0, daysPerWeek-1)

	// 2. Получаем активные записи недели одним запросом
	filter := domain.AppointmentsFilter{
		ProfessionalID: req.ProfessionalID,
		StartDate:      &weekStart,
		EndDate:        &weekEnd,
	}
	appointments, err := uc.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetWeekSchedule: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 3. Группируем по дням
	byDay := make(map[string][]*domain.Appointment, daysPerWeek)
	for _, a := range appointments {
		key := a.ScheduledDate.Format(domain.DateFormat)
		byDay[key] = append(byDay[key], a)
	}

	// 4. Строим ячейки: раскладка на полном дне, затем усечение
	days := make([]DayCell, 0, daysPerWeek)
	for i := 0; i < daysPerWeek; i++ {
		date := weekStart.AddDate(0, 0, i)
		cell, err := uc.buildDayCell(date, byDay[date.Format(domain.DateFormat)], maxVisible)
		if err != nil {
			return nil, err
		}
		days = append(days, cell)
	}

	uc.logger.Info("GetWeekSchedule: professional=%d, weekStart=%s: %d appointments",
		req.ProfessionalID, weekStart.Format(domain.DateFormat), len(appointments))

	return &Response{
		WeekStart:      weekStart.Format(domain.DateFormat),
		ProfessionalID: req.ProfessionalID,
		Days:           days,
	}, nil
}

// buildDayCell строит ячейку одного дня
// Репозиторий отдаёт записи упорядоченными по времени начала, поэтому
// усечение префиксом даёт maxVisible самых ранних записей
func (uc *UseCase) buildDayCell(date time.Time, appointments []*domain.Appointment, maxVisible int) (DayCell, error) {
	events := make([]layout.Event, 0, len(appointments))
	for _, a := range appointments {
		start := a.StartTime.OnDate(a.ScheduledDate)
		events = append(events, layout.Event{
			ID:    a.ID,
			Start: start,
			End:   start.Add(time.Duration(a.DurationMinutes) * time.Minute),
		})
	}

	assignments, totalColumns := layout.Assign(events)

	visible := appointments
	moreCount := 0
	if len(appointments) > maxVisible {
		visible = appointments[:maxVisible]
		moreCount = len(appointments) - maxVisible
	}

	views := make([]AppointmentView, 0, len(visible))
	for _, a := range visible {
		endTime, err := a.EndTime()
		if err != nil {
			return DayCell{}, fmt.Errorf("%w: appointment id=%d has invalid duration: %v", ErrInternal, a.ID, err)
		}

		assignment := assignments[a.ID]
		views = append(views, AppointmentView{
			ID:              a.ID,
			CustomerID:      a.CustomerID,
			CustomerName:    a.CustomerName,
			ServiceName:     a.ServiceName,
			StartTime:       a.StartTime.String(),
			EndTime:         endTime.String(),
			DurationMinutes: a.DurationMinutes,
			Status:          string(a.Status),
			Column:          assignment.Column,
			TotalColumns:    assignment.TotalColumns,
		})
	}

	return DayCell{
		Date:              date.Format(domain.DateFormat),
		TotalAppointments: len(appointments),
		TotalColumns:      totalColumns,
		Appointments:      views,
		MoreCount:         moreCount,
	}, nil
}

// dateOnly обнуляет время, оставляя только календарную дату
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
