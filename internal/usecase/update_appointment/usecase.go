package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-WashScheduler/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-WashScheduler/internal/workload"
)

// UseCase use case для смены статуса и мастера записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	technicianRepo  TechnicianRepository
	balancer        Balancer
	txManager       TransactionManager
	metrics         Metrics
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	technicianRepo TechnicianRepository,
	balancer Balancer,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		technicianRepo:  technicianRepo,
		balancer:        balancer,
		txManager:       txManager,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет переход записи. Изменения счётчиков выводятся из пары (статус, мастер)
// до и после перехода и применяются в той же транзакции, что и обновление записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	nextStatus, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: id=%s, status=%v, technician=%v, autoAssign=%t",
		req.AppointmentID, derefOr(req.Status, "-"), derefOr(req.TechnicianName, "-"), req.AutoAssign)

	var (
		result  *domain.Appointment
		changes []CounterChange
	)

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем запись с блокировкой строки
		current, err := uc.appointmentRepo.GetByIDForUpdate(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("UpdateAppointment: appointment id=%s not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get appointment id=%s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 2.2. Снимок мастеров: по нему выбираем мастера и проверяем изменения счётчиков
		roster, err := uc.technicianRepo.ListAll(txCtx)
		if err != nil {
			uc.logger.Error("UpdateAppointment: failed to list technicians: %v", err)
			return fmt.Errorf("%w: failed to list technicians: %v", ErrInternal, err)
		}

		before := workload.Assignment{Status: current.Status, TechnicianName: current.TechnicianName}
		after := before

		// 2.3. Проверяем переход статуса
		if nextStatus != nil {
			if !current.Status.CanTransitionTo(*nextStatus) {
				uc.logger.Warn("UpdateAppointment: transition %s -> %s is not allowed for id=%s",
					current.Status, *nextStatus, current.ID)
				return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, *nextStatus)
			}
			after.Status = *nextStatus
		}

		// 2.4. Определяем мастера, сменить его можно только у незакрытой записи
		if req.TechnicianName != nil || req.AutoAssign {
			if current.Status.IsTerminal() {
				uc.logger.Warn("UpdateAppointment: appointment id=%s is %s, technician can not be changed",
					current.ID, current.Status)
				return fmt.Errorf("%w: status %s", ErrAppointmentClosed, current.Status)
			}

			name, err := uc.resolveTechnician(req, before, roster)
			if err != nil {
				return err
			}
			after.TechnicianName = name
		}

		if after == before {
			uc.logger.Info("UpdateAppointment: id=%s unchanged", current.ID)
			result = current
			return nil
		}

		// 2.5. Применяем изменения счётчиков: сначала снимаем задачу со старого мастера
		deltas := uc.balancer.TransitionDeltas(before, after)
		changes, err = uc.applyDeltas(txCtx, roster, deltas)
		if err != nil {
			return err
		}

		// 2.6. Сохраняем запись
		if err := uc.appointmentRepo.UpdateAssignment(txCtx, current.ID, after.Status, after.TechnicianName); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to update appointment id=%s: %v", current.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}

		current.Status = after.Status
		current.TechnicianName = after.TechnicianName
		current.UpdatedAt = uc.timeProvider.Now()
		result = current
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: id=%s is now %s, technician=%s, %d counter changes",
		result.ID, result.Status, result.TechnicianName, len(changes))

	return &Response{
		ID:             result.ID,
		ScheduledAt:    result.ScheduledAt,
		Status:         string(result.Status),
		TechnicianName: result.TechnicianName,
		ServiceName:    result.ServiceName,
		CustomerName:   result.CustomerName,
		Notes:          result.Notes,
		CounterChanges: changes,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}

// resolveTechnician возвращает имя нового мастера
func (uc *UseCase) resolveTechnician(req *Request, before workload.Assignment, roster []domain.Technician) (string, error) {
	if req.AutoAssign {
		// Собственная задача записи не должна утяжелять текущего мастера при выборе
		candidates := roster
		if before.Status.IsCounted() {
			candidates, _ = uc.balancer.AdjustTaskCount(roster, before.TechnicianName, -1)
		}
		selection, _ := uc.balancer.SelectLeastBusy(candidates)
		if selection.Reserved {
			uc.metrics.ObserveSelection("assigned")
		} else {
			uc.metrics.ObserveSelection("unassigned")
		}
		return selection.Name, nil
	}

	name := strings.TrimSpace(*req.TechnicianName)
	if name == domain.UnassignedTechnician {
		return name, nil
	}

	technician, ok := findTechnician(roster, name)
	if !ok {
		uc.logger.Warn("UpdateAppointment: technician %q not found", name)
		return "", fmt.Errorf("%w: %s", ErrTechnicianNotFound, name)
	}
	if !technician.IsActive() {
		uc.logger.Warn("UpdateAppointment: technician %q is inactive", name)
		return "", fmt.Errorf("%w: %s", ErrTechnicianInactive, name)
	}

	uc.metrics.ObserveSelection("explicit")
	return technician.Name, nil
}

// applyDeltas прогоняет изменения через правила балансировщика на снимке ростера,
// одобренные пишет атомарными обновлениями. Отклонённое изменение не ошибка, запись всё равно переходит в новый статус
func (uc *UseCase) applyDeltas(ctx context.Context, roster []domain.Technician, deltas []workload.Delta) ([]CounterChange, error) {
	changes := make([]CounterChange, 0, len(deltas))

	for _, d := range deltas {
		direction := "inc"
		if d.Delta < 0 {
			direction = "dec"
		}

		next, ok := uc.balancer.AdjustTaskCount(roster, d.TechnicianName, d.Delta)
		applied := false
		if ok {
			roster = next

			var err error
			applied, err = uc.technicianRepo.AdjustActiveTasks(ctx, d.TechnicianName, d.Delta)
			if err != nil {
				uc.logger.Error("UpdateAppointment: failed to adjust tasks of %s by %d: %v", d.TechnicianName, d.Delta, err)
				return nil, fmt.Errorf("%w: failed to adjust technician tasks: %v", ErrInternal, err)
			}
		}

		if applied {
			uc.metrics.ObserveAdjustment(direction, "applied")
		} else {
			uc.metrics.ObserveAdjustment(direction, "skipped")
			uc.logger.Warn("UpdateAppointment: task counter of %s not adjusted by %d", d.TechnicianName, d.Delta)
		}

		changes = append(changes, CounterChange{TechnicianName: d.TechnicianName, Delta: d.Delta, Applied: applied})
	}

	return changes, nil
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
