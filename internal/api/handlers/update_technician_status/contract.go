package update_technician_status

import (
	"context"

	"github.com/m04kA/SMC-WashScheduler/internal/service/technicians/models"
)

type TechnicianService interface {
	SetStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.TechnicianResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
