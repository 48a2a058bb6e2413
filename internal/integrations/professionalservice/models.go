package professionalservice

// Professional модель профессионала из админ-панели
type Professional struct {
	ID         int64  `json:"id"`
	CompanyID  int64  `json:"company_id"`
	Name       string `json:"name"`
	Speciality string `json:"speciality"`
	IsActive   bool   `json:"is_active"`
}

// Service модель услуги профессионала
type Service struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
	ProfessionalIDs []int64  `json:"professional_ids"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ErrorResponse модель ошибки от сервиса профессионалов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
