package get_day_schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/layout"
)

// UseCase use case дневного расписания профессионала
//
// Пересекающиеся по времени записи раскладываются по колонкам: каждая
// запись получает пару (column, totalColumns), по которой календарная
// сетка рисует параллельные записи рядом, а не друг на друге
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

// Execute строит дневное расписание с координатами раскладки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySchedule: user=%d, professional=%d, date=%s",
		req.UserID, req.ProfessionalID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.ProfessionalID <= 0 {
		uc.logger.Warn("GetDaySchedule: invalid professional id=%d", req.ProfessionalID)
		return nil, fmt.Errorf("%w: professional id must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		uc.logger.Warn("GetDaySchedule: date is required")
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем активные записи дня (отменённые слот не занимают)
	filter := domain.AppointmentsFilter{
		ProfessionalID: req.ProfessionalID,
		StartDate:      &req.Date,
		EndDate:        &req.Date,
	}
	appointments, err := uc.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetDaySchedule: repository error for professional=%d: %v", req.ProfessionalID, err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 3. Раскладываем записи по колонкам
	views, totalColumns, err := layoutAppointments(appointments)
	if err != nil {
		uc.logger.Error("GetDaySchedule: layout failed for professional=%d: %v", req.ProfessionalID, err)
		return nil, err
	}

	uc.logger.Info("GetDaySchedule: professional=%d, date=%s: %d appointments in %d columns",
		req.ProfessionalID, req.Date.Format(domain.DateFormat), len(views), totalColumns)

	return &Response{
		Date:           req.Date.Format(domain.DateFormat),
		ProfessionalID: req.ProfessionalID,
		TotalColumns:   totalColumns,
		Appointments:   views,
	}, nil
}

// layoutAppointments прогоняет записи через движок раскладки и собирает view-модели
// Порядок результата повторяет порядок репозитория (по времени начала)
func layoutAppointments(appointments []*domain.Appointment) ([]AppointmentView, int, error) {
	events := make([]layout.Event, 0, len(appointments))
	byID := make(map[int64]*domain.Appointment, len(appointments))

	for _, a := range appointments {
		start := a.StartTime.OnDate(a.ScheduledDate)
		events = append(events, layout.Event{
			ID:    a.ID,
			Start: start,
			End:   start.Add(time.Duration(a.DurationMinutes) * time.Minute),
		})
		byID[a.ID] = a
	}

	assignments, totalColumns := layout.Assign(events)

	views := make([]AppointmentView, 0, len(appointments))
	for _, a := range appointments {
		endTime, err := a.EndTime()
		if err != nil {
			return nil, 0, fmt.Errorf("%w: appointment id=%d has invalid duration: %v", ErrInternal, a.ID, err)
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

	return views, totalColumns, nil
}
