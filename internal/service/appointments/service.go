package appointments

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-WashScheduler/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-WashScheduler/internal/service/appointments/models"
)

// Service сервис чтения записей
type Service struct {
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id string) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainAppointment(appointment)
	return &resp, nil
}

// List получает записи, опционально по статусу и мастеру
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	filter := domain.AppointmentsFilter{}

	if req != nil && req.Status != nil {
		status, err := domain.ParseAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Status = &status
	}
	if req != nil && req.TechnicianName != nil {
		name := strings.TrimSpace(*req.TechnicianName)
		filter.TechnicianName = &name
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments", len(list))
	return models.FromDomainAppointmentList(list), nil
}

// ServiceUsage считает, сколько раз заказывали каждую услугу. Отменённые записи не учитываются,
// сортировка по убыванию количества, при равенстве по названию
func (s *Service) ServiceUsage(ctx context.Context) (*models.ServiceUsageResponse, error) {
	list, err := s.appointmentRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ServiceUsage: repository error: %v", err)
		return nil, fmt.Errorf("%w: ServiceUsage - repository error: %v", ErrInternal, err)
	}

	counts := make(map[string]int)
	total := 0
	for _, a := range list {
		if a == nil || a.IsCancelled() {
			continue
		}
		name := strings.TrimSpace(a.ServiceName)
		if name == "" {
			continue
		}
		counts[name]++
		total++
	}

	usage := make([]models.ServiceUsage, 0, len(counts))
	for name, count := range counts {
		usage = append(usage, models.ServiceUsage{ServiceName: name, Count: count})
	}
	sort.Slice(usage, func(i, j int) bool {
		if usage[i].Count != usage[j].Count {
			return usage[i].Count > usage[j].Count
		}
		return usage[i].ServiceName < usage[j].ServiceName
	})

	s.logger.Info("ServiceUsage: %d services over %d appointments", len(usage), total)
	return &models.ServiceUsageResponse{Services: usage, Total: total}, nil
}
