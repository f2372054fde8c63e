package update_appointment

import "time"

// Request модель запроса на изменение записи
type Request struct {
	AppointmentID  string
	Status         *string // Новый статус (опционально)
	TechnicianName *string // Новый мастер (опционально), "Unassigned" снимает мастера
	AutoAssign     bool    // Назначить наименее загруженного мастера
}

// Response модель ответа с изменённой записью
type Response struct {
	ID             string
	ScheduledAt    string
	Status         string
	TechnicianName string
	ServiceName    string
	CustomerName   string
	Notes          *string
	CounterChanges []CounterChange // Изменения счётчиков мастеров
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CounterChange изменение счётчика активных задач мастера
type CounterChange struct {
	TechnicianName string
	Delta          int
	Applied        bool // false - изменение отклонено (счётчик ушёл бы в минус или мастера нет)
}
