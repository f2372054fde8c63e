package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
)

// Options настройки usecase из секции scheduling
type Options struct {
	Location        *time.Location          // Часовой пояс автомойки
	Definitions     []domain.SlotDefinition // Сетка слотов
	CutoffLookAhead time.Duration           // Окно отсечения для сегодняшних слотов
	StrictSlotClaim bool                    // Запрет второй записи в занятый слот
	LockTTL         time.Duration           // Время жизни блокировки слота
}

// Request модель запроса на создание записи
type Request struct {
	ScheduledAt    string  // Начало слота, RFC3339 или "2006-01-02T15:04" в поясе автомойки
	ServiceName    string  // Название услуги
	CustomerName   string  // Имя клиента
	TechnicianName *string // Мастер; nil или пусто - наименее загруженный, "Unassigned" - без мастера
	Notes          *string // Заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID             string
	ScheduledAt    time.Time
	Status         string
	TechnicianName string
	ServiceName    string
	CustomerName   string
	Notes          *string
	Overbooked     bool // В слоте уже была запись
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
