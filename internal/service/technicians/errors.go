package technicians

import "errors"

var (
	// ErrTechnicianNotFound возвращается, когда мастер не найден
	ErrTechnicianNotFound = errors.New("technicians: technician not found")

	// ErrDuplicateName возвращается, когда имя мастера уже занято
	ErrDuplicateName = errors.New("technicians: technician name already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("technicians: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("technicians: internal error")
)
