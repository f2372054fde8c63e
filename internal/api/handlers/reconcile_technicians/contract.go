package reconcile_technicians

import (
	"context"

	"github.com/m04kA/SMC-WashScheduler/internal/service/technicians/models"
)

type TechnicianService interface {
	Reconcile(ctx context.Context) (*models.ReconcileResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
