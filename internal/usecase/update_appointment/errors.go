package update_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrInvalidTransition возвращается, когда переход статуса запрещён
	ErrInvalidTransition = errors.New("update_appointment: status transition is not allowed")

	// ErrAppointmentClosed возвращается при попытке сменить мастера у завершённой записи
	ErrAppointmentClosed = errors.New("update_appointment: appointment is already closed")

	// ErrTechnicianNotFound возвращается, когда указанный мастер не существует
	ErrTechnicianNotFound = errors.New("update_appointment: technician not found")

	// ErrTechnicianInactive возвращается, когда указанный мастер не принимает работу
	ErrTechnicianInactive = errors.New("update_appointment: technician is inactive")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment: internal error")
)
