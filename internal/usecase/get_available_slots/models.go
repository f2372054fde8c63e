package get_available_slots

import "time"

// Request модель запроса на получение сетки слотов
type Request struct {
	Date string // Дата в формате YYYY-MM-DD
}

// Response модель ответа с сеткой слотов на день
type Response struct {
	Date     time.Time // Начало запрошенного дня в часовом поясе автомойки
	Timezone string    // Часовой пояс
	Slots    []Slot    // Все слоты дня в порядке конфигурации
}

// Slot модель слота
type Slot struct {
	Label        string    // "8:20 AM - 9:20 AM"
	StartTime    string    // "8:20 AM"
	StartsAt     time.Time // Абсолютный момент начала
	Available    bool      // Можно бронировать
	PastCutoff   bool      // Слишком поздно для записи сегодня
	BookingCount int       // Количество неотменённых записей
}
