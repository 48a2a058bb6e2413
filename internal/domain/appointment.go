package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment represents a customer booking of one schedule slot.
// Appointments are created and cancelled by the external booking flow;
// this service only reads them to lay out calendar views.
type Appointment struct {
	ID             int64
	SlotID         int64
	ProfessionalID int64
	ServiceID      *int64
	CustomerID     int64

	ScheduledDate   time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for display
	CustomerName string
	ServiceName  *string
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its slot
// A cancelled appointment releases the slot for re-booking
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// EndTime возвращает время окончания записи
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// AppointmentsFilter фильтр для выборки записей профессионала
type AppointmentsFilter struct {
	ProfessionalID  int64      // Обязательный параметр
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	IncludeInactive bool       // Включать ли отменённые записи
}

// ToDomainAppointmentStatus валидирует и конвертирует строку в статус
func ToDomainAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return AppointmentStatus(s), true
	default:
		return "", false
	}
}
