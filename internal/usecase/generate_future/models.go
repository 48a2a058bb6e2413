package generate_future

// Request модель запроса на генерацию слотов на несколько месяцев вперёд
type Request struct {
	UserID         int64  // ID администратора (для логирования)
	ProfessionalID int64  // ID профессионала
	Months         int    // Горизонт: 1, 3, 6 или 12 месяцев
	OnConflict     string // "skip" (по умолчанию) или "replace"
}

// Response итог генерации по всему горизонту
type Response struct {
	TotalCreated int `json:"totalCreated"`
	TotalSkipped int `json:"totalSkipped"`
	TotalFailed  int `json:"totalFailed"`
	Months       int `json:"months"`
}
