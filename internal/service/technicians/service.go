package technicians

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
	technicianRepo "github.com/m04kA/SMC-WashScheduler/internal/infra/storage/technician"
	"github.com/m04kA/SMC-WashScheduler/internal/service/technicians/models"
	"github.com/m04kA/SMC-WashScheduler/internal/workload"
)

// Service сервис для работы с мастерами
type Service struct {
	technicianRepo  TechnicianRepository
	appointmentRepo AppointmentRepository
	reconciler      Reconciler
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса мастеров
func NewService(
	technicianRepo TechnicianRepository,
	appointmentRepo AppointmentRepository,
	reconciler Reconciler,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		technicianRepo:  technicianRepo,
		appointmentRepo: appointmentRepo,
		reconciler:      reconciler,
		txManager:       txManager,
		logger:          logger,
	}
}

// List возвращает ростер в порядке добавления, в этом же порядке разрешаются ничьи при выборе мастера
func (s *Service) List(ctx context.Context) (*models.TechnicianListResponse, error) {
	list, err := s.technicianRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d technicians", len(list))
	return models.FromDomainTechnicianList(list), nil
}

// Create добавляет мастера с нулевым счётчиком задач
func (s *Service) Create(ctx context.Context, req *models.CreateTechnicianRequest) (*models.TechnicianResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	case name == domain.UnassignedTechnician:
		return nil, fmt.Errorf("%w: %q is reserved", ErrInvalidInput, domain.UnassignedTechnician)
	case utf8.RuneCountInString(name) > domain.MaxTechnicianNameLen:
		return nil, fmt.Errorf("%w: name is longer than %d", ErrInvalidInput, domain.MaxTechnicianNameLen)
	}

	status := domain.TechnicianActive
	if req.Status != nil {
		parsed, err := domain.ParseTechnicianStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		status = parsed
	}

	s.logger.Info("Create: adding technician %q, status=%s", name, status)

	created, err := s.technicianRepo.Create(ctx, &domain.Technician{
		ID:     uuid.NewString(),
		Name:   name,
		Status: status,
	})
	if err != nil {
		if errors.Is(err, technicianRepo.ErrDuplicateName) {
			s.logger.Warn("Create: technician %q already exists", name)
			return nil, ErrDuplicateName
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainTechnician(created)
	return &resp, nil
}

// SetStatus включает или выключает мастера. Счётчик задач не трогается:
// уже назначенные записи остаются за мастером
func (s *Service) SetStatus(ctx context.Context, id string, req *models.UpdateStatusRequest) (*models.TechnicianResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidInput)
	}

	status, err := domain.ParseTechnicianStatus(strings.TrimSpace(req.Status))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.logger.Info("SetStatus: technician id=%s -> %s", id, status)

	if err := s.technicianRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, technicianRepo.ErrTechnicianNotFound) {
			s.logger.Warn("SetStatus: technician id=%s not found", id)
			return nil, ErrTechnicianNotFound
		}
		s.logger.Error("SetStatus: repository error for id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: SetStatus - repository error: %v", ErrInternal, err)
	}

	updated, err := s.technicianRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("SetStatus: failed to re-read technician id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: SetStatus - repository error: %v", ErrInternal, err)
	}

	resp := models.FromDomainTechnician(updated)
	return &resp, nil
}

// Reconcile пересчитывает счётчики всех мастеров по записям и сохраняет расхождения в одной транзакции
func (s *Service) Reconcile(ctx context.Context) (*models.ReconcileResponse, error) {
	var (
		checked     int
		corrections []workload.Correction
	)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		roster, err := s.technicianRepo.ListAll(txCtx)
		if err != nil {
			return fmt.Errorf("%w: Reconcile - list technicians: %v", ErrInternal, err)
		}

		appointments, err := s.appointmentRepo.ListAll(txCtx)
		if err != nil {
			return fmt.Errorf("%w: Reconcile - list appointments: %v", ErrInternal, err)
		}

		_, corrections = s.reconciler.Reconcile(roster, appointments)
		checked = len(roster)

		for _, c := range corrections {
			if err := s.technicianRepo.SetActiveTasks(txCtx, c.TechnicianID, c.To); err != nil {
				return fmt.Errorf("%w: Reconcile - set tasks of %s: %v", ErrInternal, c.Name, err)
			}
			s.logger.Warn("Reconcile: technician %s counter %d -> %d", c.Name, c.From, c.To)
		}
		return nil
	})

	if err != nil {
		s.logger.Error("Reconcile: %v", err)
		return nil, err
	}

	s.logger.Info("Reconcile: checked %d technicians, %d corrections", checked, len(corrections))
	return models.FromCorrections(checked, corrections), nil
}
