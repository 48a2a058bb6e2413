package generate_future

// GenerateFutureRequest тело запроса генерации слотов на горизонт
type GenerateFutureRequest struct {
	Months     int    `json:"months"`
	OnConflict string `json:"onConflict,omitempty"`
}
