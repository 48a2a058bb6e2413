package get_day_schedule

import "time"

// Request модель запроса дневного расписания
type Request struct {
	UserID         int64     // ID администратора (для логирования)
	ProfessionalID int64     // ID профессионала
	Date           time.Time // День, на который строится расписание
}

// Response дневное расписание: записи дня с координатами раскладки
type Response struct {
	Date           string            `json:"date"`
	ProfessionalID int64             `json:"professionalId"`
	TotalColumns   int               `json:"totalColumns"`
	Appointments   []AppointmentView `json:"appointments"`
}

// AppointmentView запись с координатами параллельной раскладки
// Column и TotalColumns - render-координаты, в хранилище не попадают
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
