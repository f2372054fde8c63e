package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInvalidTimeSlot возвращается, когда время не совпадает с началом ни одного слота
	ErrInvalidTimeSlot = errors.New("create_appointment: time does not match any slot start")

	// ErrTooLateToBook возвращается, когда слот сегодня уже закрыт окном отсечения
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrSlotNotAvailable возвращается в строгом режиме, когда слот уже занят
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrSlotBusy возвращается, когда этот же слот прямо сейчас бронирует другой запрос
	ErrSlotBusy = errors.New("create_appointment: slot is being booked by another request")

	// ErrTechnicianNotFound возвращается, когда указанный мастер не существует
	ErrTechnicianNotFound = errors.New("create_appointment: technician not found")

	// ErrTechnicianInactive возвращается, когда указанный мастер не принимает работу
	ErrTechnicianInactive = errors.New("create_appointment: technician is inactive")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
