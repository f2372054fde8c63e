package create_appointment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
	"github.com/m04kA/SMC-WashScheduler/internal/workload"
)

const (
	outcomeAssigned   = "assigned"
	outcomeUnassigned = "unassigned"
	outcomeExplicit   = "explicit"

	resultApplied = "applied"
	resultSkipped = "skipped"
)

// UseCase use case для создания записи на мойку
type UseCase struct {
	appointmentRepo AppointmentRepository
	technicianRepo  TechnicianRepository
	balancer        Balancer
	locker          SlotLocker
	txManager       TransactionManager
	metrics         Metrics
	opts            Options
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	technicianRepo TechnicianRepository,
	balancer Balancer,
	locker SlotLocker,
	txManager TransactionManager,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.CutoffLookAhead <= 0 {
		opts.CutoffLookAhead = domain.DefaultCutoffLookAhead
	}
	if len(opts.Definitions) == 0 {
		opts.Definitions = domain.DefaultSlotDefinitions()
	}
	if opts.LockTTL <= 0 {
		opts.LockTTL = 10 * time.Second
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		technicianRepo:  technicianRepo,
		balancer:        balancer,
		locker:          locker,
		txManager:       txManager,
		metrics:         metrics,
		opts:            opts,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Слот блокируется на время транзакции, выбор мастера и изменение счётчика идут в одной сериализуемой транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	at, err := validateRequest(req, uc.opts.Location)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateAppointment: scheduledAt=%s, service=%q", at.Format(time.RFC3339), req.ServiceName)

	if err := validateSlotStart(at, uc.opts.Definitions); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now().In(uc.opts.Location)

	// 3. Проверяем окно отсечения. Запись в прошедший день не блокируется, только логируется
	if err := validateCutoff(at, now, uc.opts.CutoffLookAhead); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		return nil, err
	}
	if at.Before(now) {
		uc.logger.Warn("CreateAppointment: booking into the past, scheduledAt=%s, now=%s",
			at.Format(time.RFC3339), now.Format(time.RFC3339))
	}

	// 4. Блокируем слот, чтобы параллельные запросы не читали одно и то же состояние
	lockKey := "slot:" + at.UTC().Format(time.RFC3339)
	token, locked, err := uc.locker.Lock(ctx, lockKey, uc.opts.LockTTL)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to lock %s: %v", lockKey, err)
		return nil, fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
	}
	if !locked {
		uc.logger.Warn("CreateAppointment: %s is locked by another request", lockKey)
		return nil, ErrSlotBusy
	}
	defer func() {
		if err := uc.locker.Unlock(context.WithoutCancel(ctx), lockKey, token); err != nil {
			uc.logger.Warn("CreateAppointment: failed to unlock %s: %v", lockKey, err)
		}
	}()

	var (
		result     *domain.Appointment
		overbooked bool
	)

	// 5. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Проверяем занятость слота
		appointments, err := uc.appointmentRepo.ListAll(txCtx)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		taken := countSlotBookings(appointments, at)
		if taken > 0 {
			if uc.opts.StrictSlotClaim {
				uc.logger.Warn("CreateAppointment: slot %s already has %d bookings", at.Format(time.RFC3339), taken)
				return ErrSlotNotAvailable
			}
			overbooked = true
			uc.logger.Warn("CreateAppointment: overbooking slot %s, %d bookings already", at.Format(time.RFC3339), taken)
		}

		// 5.2. Определяем мастера
		roster, err := uc.technicianRepo.ListAll(txCtx)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list technicians: %v", err)
			return fmt.Errorf("%w: failed to list technicians: %v", ErrInternal, err)
		}

		technicianName, err := uc.resolveTechnician(req.TechnicianName, roster)
		if err != nil {
			return err
		}

		// 5.3. Сохраняем запись
		appointment := &domain.Appointment{
			ID:             uuid.NewString(),
			ScheduledAt:    at.Format(time.RFC3339),
			Status:         domain.StatusPending,
			TechnicianName: technicianName,
			ServiceName:    strings.TrimSpace(req.ServiceName),
			CustomerName:   strings.TrimSpace(req.CustomerName),
			Notes:          req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 5.4. Новая pending-запись сразу занимает задачу мастера
		deltas := uc.balancer.TransitionDeltas(workload.Assignment{}, workload.Assignment{
			Status:         created.Status,
			TechnicianName: created.TechnicianName,
		})
		if err := uc.applyDeltas(txCtx, roster, deltas); err != nil {
			return err
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%s, technician=%s", result.ID, result.TechnicianName)

	return &Response{
		ID:             result.ID,
		ScheduledAt:    at,
		Status:         string(result.Status),
		TechnicianName: result.TechnicianName,
		ServiceName:    result.ServiceName,
		CustomerName:   result.CustomerName,
		Notes:          result.Notes,
		Overbooked:     overbooked,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}

// resolveTechnician явно указанный мастер должен существовать и быть активным,
// пустое имя - выбор наименее загруженного, "Unassigned" - запись без мастера
func (uc *UseCase) resolveTechnician(requested *string, roster []domain.Technician) (string, error) {
	name := ""
	if requested != nil {
		name = strings.TrimSpace(*requested)
	}

	switch {
	case name == "":
		selection, _ := uc.balancer.SelectLeastBusy(roster)
		if selection.Reserved {
			uc.metrics.ObserveSelection(outcomeAssigned)
		} else {
			uc.metrics.ObserveSelection(outcomeUnassigned)
		}
		return selection.Name, nil

	case name == domain.UnassignedTechnician:
		uc.metrics.ObserveSelection(outcomeUnassigned)
		return domain.UnassignedTechnician, nil
	}

	technician, ok := findTechnician(roster, name)
	if !ok {
		uc.logger.Warn("CreateAppointment: technician %q not found", name)
		return "", fmt.Errorf("%w: %s", ErrTechnicianNotFound, name)
	}
	if !technician.IsActive() {
		uc.logger.Warn("CreateAppointment: technician %q is inactive", name)
		return "", fmt.Errorf("%w: %s", ErrTechnicianInactive, name)
	}

	uc.metrics.ObserveSelection(outcomeExplicit)
	return technician.Name, nil
}

// applyDeltas прогоняет изменения через правила балансировщика на снимке ростера и только
// одобренные пишет атомарными обновлениями. Отклонённое изменение не ошибка: логируем и идём дальше
func (uc *UseCase) applyDeltas(ctx context.Context, roster []domain.Technician, deltas []workload.Delta) error {
	for _, d := range deltas {
		direction := "inc"
		if d.Delta < 0 {
			direction = "dec"
		}

		next, ok := uc.balancer.AdjustTaskCount(roster, d.TechnicianName, d.Delta)
		if !ok {
			uc.metrics.ObserveAdjustment(direction, resultSkipped)
			continue
		}
		roster = next

		applied, err := uc.technicianRepo.AdjustActiveTasks(ctx, d.TechnicianName, d.Delta)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to adjust tasks of %s by %d: %v", d.TechnicianName, d.Delta, err)
			return fmt.Errorf("%w: failed to adjust technician tasks: %v", ErrInternal, err)
		}

		if !applied {
			uc.metrics.ObserveAdjustment(direction, resultSkipped)
			uc.logger.Warn("CreateAppointment: task counter of %s not adjusted by %d", d.TechnicianName, d.Delta)
			continue
		}
		uc.metrics.ObserveAdjustment(direction, resultApplied)
	}
	return nil
}
