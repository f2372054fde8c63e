package list_technicians

import (
	"context"

	"github.com/m04kA/SMC-WashScheduler/internal/service/technicians/models"
)

type TechnicianService interface {
	List(ctx context.Context) (*models.TechnicianListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
