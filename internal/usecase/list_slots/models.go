package list_slots

import "time"

// Request модель запроса материализованных слотов
type Request struct {
	ProfessionalID int64      // ID профессионала
	From           *time.Time // Начало периода (опционально)
	To             *time.Time // Конец периода (опционально)
	OnlyActive     bool       // Только активные слоты (вне перерывов)
}

// Response список материализованных слотов профессионала
type Response struct {
	ProfessionalID int64      `json:"professionalId"`
	Slots          []SlotView `json:"slots"`
}

// SlotView материализованный слот
type SlotView struct {
	ID        int64  `json:"id"`
	RuleID    int64  `json:"ruleId"`
	ServiceID *int64 `json:"serviceId,omitempty"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	IsActive  bool   `json:"isActive"`
}
