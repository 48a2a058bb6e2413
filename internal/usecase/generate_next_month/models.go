package generate_next_month

// Request модель запроса на генерацию слотов на следующий месяц
type Request struct {
	UserID         int64 // ID администратора (для логирования)
	ProfessionalID int64 // ID профессионала
}

// Response итог генерации: счётчики независимых операций плюс месяц,
// на который материализованы слоты
type Response struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
	Month   int `json:"month"`
	Year    int `json:"year"`
}
