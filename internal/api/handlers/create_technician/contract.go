package create_technician

import (
	"context"

	"github.com/m04kA/SMC-WashScheduler/internal/service/technicians/models"
)

type TechnicianService interface {
	Create(ctx context.Context, req *models.CreateTechnicianRequest) (*models.TechnicianResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
