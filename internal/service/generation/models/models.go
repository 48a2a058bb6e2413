package models

// Result итог материализации: батч - набор независимых операций,
// каждая попытка заканчивается ровно в одном из трёх счётчиков
type Result struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Add суммирует результаты нескольких прогонов материализации
func (r *Result) Add(other Result) {
	r.Created += other.Created
	r.Skipped += other.Skipped
	r.Failed += other.Failed
}

// Total возвращает общее число попыток материализации
func (r *Result) Total() int {
	return r.Created + r.Skipped + r.Failed
}
