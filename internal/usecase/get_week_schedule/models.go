package get_week_schedule

import "time"

// Request модель запроса недельного расписания
type Request struct {
	UserID         int64     // ID администратора (для логирования)
	ProfessionalID int64     // ID профессионала
	WeekStart      time.Time // Первый день недели
	MaxVisible     int       // Сколько записей показывает ячейка дня; 0 = по умолчанию
}

// Response недельное расписание: семь ячеек-дней начиная с weekStart
type Response struct {
	WeekStart      string    `json:"weekStart"`
	ProfessionalID int64     `json:"professionalId"`
	Days           []DayCell `json:"days"`
}

// DayCell ячейка одного дня недельной сетки
//
// Ячейка показывает не больше maxVisible самых ранних записей;
// остальные сворачиваются в MoreCount ("+K ещё"). Координаты раскладки
// считаются по полному набору записей дня, до усечения
type DayCell struct {
	Date              string            `json:"date"`
	TotalAppointments int               `json:"totalAppointments"`
	TotalColumns      int               `json:"totalColumns"`
	Appointments      []AppointmentView `json:"appointments"`
	MoreCount         int               `json:"moreCount"`
}

// AppointmentView запись с координатами параллельной раскладки
type AppointmentView struct {
	ID              int64   `json:"id"`
	CustomerID      int64   `json:"customerId"`
	CustomerName    string  `json:"customerName"`
	ServiceName     *string `json:"serviceName,omitempty"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Column          int     `json:"column"`
	TotalColumns    int     `json:"totalColumns"`
}
