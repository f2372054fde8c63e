// Package workload picks technicians for new bookings and keeps their active task counters
// consistent with appointment lifecycle transitions.
package workload

import (
	"sort"
	"strings"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Selection результат выбора наименее загруженного мастера
type Selection struct {
	Name         string // имя мастера или domain.UnassignedTechnician
	TechnicianID string // пусто, если никто не выбран
	Reserved     bool   // счётчик выбранного мастера увеличен
}

// Assignment состояние назначения записи: статус и мастер
type Assignment struct {
	Status         domain.AppointmentStatus
	TechnicianName string
}

// Delta изменение счётчика активных задач мастера
type Delta struct {
	TechnicianName string
	Delta          int
}

// Correction расхождение счётчика, найденное при сверке
type Correction struct {
	TechnicianID string
	Name         string
	From         int
	To           int
}

// Balancer операции над снимками ростера. Никогда не возвращает ошибок и не мутирует входные срезы
type Balancer struct {
	logger Logger
}

func NewBalancer(logger Logger) *Balancer {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Balancer{logger: logger}
}

// SelectLeastBusy выбирает активного мастера с минимальным числом задач и сразу резервирует за ним задачу.
// При равенстве побеждает первый по порядку ростера. Пустой ростер даёт domain.UnassignedTechnician
func (b *Balancer) SelectLeastBusy(roster []domain.Technician) (Selection, []domain.Technician) {
	updated := clone(roster)

	best := -1
	for i := range updated {
		t := &updated[i]
		if !t.IsActive() || !domain.IsRealTechnician(t.Name) {
			continue
		}
		if best == -1 || t.ActiveTaskCount < updated[best].ActiveTaskCount {
			best = i
		}
	}

	if best == -1 {
		b.logger.Warn("workload: no active technicians, booking stays %s", domain.UnassignedTechnician)
		return Selection{Name: domain.UnassignedTechnician}, updated
	}

	updated[best].ActiveTaskCount++
	chosen := updated[best]
	b.logger.Info("workload: selected technician %s (tasks now %d)", chosen.Name, chosen.ActiveTaskCount)

	return Selection{Name: chosen.Name, TechnicianID: chosen.ID, Reserved: true}, updated
}

// AdjustTaskCount применяет delta (+1 или -1) к счётчику мастера name.
// Уход ниже нуля, неизвестный мастер, пустое имя и domain.UnassignedTechnician - no-op.
// Второе значение - было ли изменение применено
func (b *Balancer) AdjustTaskCount(roster []domain.Technician, name string, delta int) ([]domain.Technician, bool) {
	updated := clone(roster)

	if !domain.IsRealTechnician(name) {
		return updated, false
	}
	if delta != 1 && delta != -1 {
		b.logger.Warn("workload: ignoring delta %d for technician %s, only +1/-1 are allowed", delta, name)
		return updated, false
	}

	idx := indexOf(updated, name)
	if idx == -1 {
		b.logger.Warn("workload: technician %s not found, counter not adjusted", name)
		return updated, false
	}

	next := updated[idx].ActiveTaskCount + delta
	if next < 0 {
		b.logger.Warn("workload: technician %s already has %d active tasks, refusing to decrement",
			name, updated[idx].ActiveTaskCount)
		return updated, false
	}

	updated[idx].ActiveTaskCount = next
	return updated, true
}

// TransitionDeltas изменения счётчиков при переходе записи из before в after.
//
// Запись занимает одну задачу мастера, пока её статус pending или in_progress и мастер реальный.
// Поэтому при создании (before - нулевое значение) pending-запись сразу даёт +1,
// а переход pending -> in_progress у того же мастера ничего не меняет
func (b *Balancer) TransitionDeltas(before, after Assignment) []Delta {
	contrib := make(map[string]int, 2)
	order := make([]string, 0, 2)

	add := func(a Assignment, sign int) {
		if !a.Status.IsCounted() || !domain.IsRealTechnician(a.TechnicianName) {
			return
		}
		name := strings.TrimSpace(a.TechnicianName)
		if _, seen := contrib[name]; !seen {
			order = append(order, name)
		}
		contrib[name] += sign
	}

	// порядок важен: сначала снимаем задачу со старого мастера, потом добавляем новому
	add(before, -1)
	add(after, +1)

	deltas := make([]Delta, 0, len(order))
	for _, name := range order {
		if d := contrib[name]; d != 0 {
			deltas = append(deltas, Delta{TechnicianName: name, Delta: d})
		}
	}
	return deltas
}

// Reconcile пересчитывает счётчики всех мастеров по авторитетному набору записей
func (b *Balancer) Reconcile(roster []domain.Technician, appointments []*domain.Appointment) ([]domain.Technician, []Correction) {
	updated := clone(roster)

	expected := make(map[string]int, len(updated))
	for _, a := range appointments {
		if a == nil || !a.Status.IsCounted() || !a.IsAssigned() {
			continue
		}
		expected[strings.TrimSpace(a.TechnicianName)]++
	}

	known := make(map[string]bool, len(updated))
	var corrections []Correction
	for i := range updated {
		t := &updated[i]
		known[t.Name] = true
		if want := expected[t.Name]; t.ActiveTaskCount != want {
			corrections = append(corrections, Correction{
				TechnicianID: t.ID,
				Name:         t.Name,
				From:         t.ActiveTaskCount,
				To:           want,
			})
			t.ActiveTaskCount = want
		}
	}

	orphans := make([]string, 0)
	for name := range expected {
		if !known[name] {
			orphans = append(orphans, name)
		}
	}
	if len(orphans) > 0 {
		sort.Strings(orphans)
		b.logger.Warn("workload: active appointments reference unknown technicians: %s", strings.Join(orphans, ", "))
	}

	return updated, corrections
}

func clone(roster []domain.Technician) []domain.Technician {
	out := make([]domain.Technician, len(roster))
	copy(out, roster)
	return out
}

func indexOf(roster []domain.Technician, name string) int {
	name = strings.TrimSpace(name)
	for i := range roster {
		if roster[i].Name == name {
			return i
		}
	}
	return -1
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
