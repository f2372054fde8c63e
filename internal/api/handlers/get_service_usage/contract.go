package get_service_usage

import (
	"context"

	"github.com/m04kA/SMC-WashScheduler/internal/service/appointments/models"
)

type AppointmentService interface {
	ServiceUsage(ctx context.Context) (*models.ServiceUsageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
