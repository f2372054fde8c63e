package technicians

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
	technicianRepo "github.com/m04kA/SMC-WashScheduler/internal/infra/storage/technician"
	"github.com/m04kA/SMC-WashScheduler/internal/service/technicians/models"
	"github.com/m04kA/SMC-WashScheduler/internal/workload"
	"github.com/m04kA/SMC-WashScheduler/pkg/ptr"
)

type fakeTechnicianRepo struct {
	techs []domain.Technician
}

func (f *fakeTechnicianRepo) Create(_ context.Context, t *domain.Technician) (*domain.Technician, error) {
	for _, existing := range f.techs {
		if existing.Name == t.Name {
			return nil, technicianRepo.ErrDuplicateName
		}
	}
	f.techs = append(f.techs, *t)
	return t, nil
}

func (f *fakeTechnicianRepo) GetByID(_ context.Context, id string) (*domain.Technician, error) {
	for i := range f.techs {
		if f.techs[i].ID == id {
			t := f.techs[i]
			return &t, nil
		}
	}
	return nil, technicianRepo.ErrTechnicianNotFound
}

func (f *fakeTechnicianRepo) ListAll(context.Context) ([]domain.Technician, error) {
	out := make([]domain.Technician, len(f.techs))
	copy(out, f.techs)
	return out, nil
}

func (f *fakeTechnicianRepo) UpdateStatus(_ context.Context, id string, status domain.TechnicianStatus) error {
	for i := range f.techs {
		if f.techs[i].ID == id {
			f.techs[i].Status = status
			return nil
		}
	}
	return technicianRepo.ErrTechnicianNotFound
}

func (f *fakeTechnicianRepo) SetActiveTasks(_ context.Context, id string, count int) error {
	for i := range f.techs {
		if f.techs[i].ID == id {
			f.techs[i].ActiveTaskCount = count
			return nil
		}
	}
	return technicianRepo.ErrTechnicianNotFound
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
}

func (f *fakeAppointmentRepo) ListAll(context.Context) ([]*domain.Appointment, error) {
	return f.appointments, nil
}

type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(techs []domain.Technician, appointments []*domain.Appointment) (*Service, *fakeTechnicianRepo) {
	repo := &fakeTechnicianRepo{techs: techs}
	svc := NewService(repo, &fakeAppointmentRepo{appointments: appointments}, workload.NewBalancer(nil), inlineTx{}, nopLogger{})
	return svc, repo
}

func TestCreate(t *testing.T) {
	svc, repo := newService(nil, nil)

	resp, err := svc.Create(context.Background(), &models.CreateTechnicianRequest{Name: "  Maria "})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Maria", resp.Name)
	assert.Equal(t, "active", resp.Status)
	assert.Zero(t, resp.ActiveTaskCount)

	_, err = svc.Create(context.Background(), &models.CreateTechnicianRequest{Name: "Maria"})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = svc.Create(context.Background(), &models.CreateTechnicianRequest{Name: domain.UnassignedTechnician})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateTechnicianRequest{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(context.Background(), &models.CreateTechnicianRequest{Name: "Jose", Status: ptr.Ptr("sleeping")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Len(t, repo.techs, 1)
}

func TestSetStatus(t *testing.T) {
	svc, _ := newService([]domain.Technician{{ID: "t1", Name: "A", Status: domain.TechnicianActive, ActiveTaskCount: 2}}, nil)

	resp, err := svc.SetStatus(context.Background(), "t1", &models.UpdateStatusRequest{Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, "inactive", resp.Status)
	assert.Equal(t, 2, resp.ActiveTaskCount)

	_, err = svc.SetStatus(context.Background(), "missing", &models.UpdateStatusRequest{Status: "active"})
	assert.ErrorIs(t, err, ErrTechnicianNotFound)

	_, err = svc.SetStatus(context.Background(), "t1", &models.UpdateStatusRequest{Status: "busy"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReconcile(t *testing.T) {
	techs := []domain.Technician{
		{ID: "t1", Name: "A", Status: domain.TechnicianActive, ActiveTaskCount: 5},
		{ID: "t2", Name: "B", Status: domain.TechnicianActive, ActiveTaskCount: 1},
		{ID: "t3", Name: "C", Status: domain.TechnicianInactive, ActiveTaskCount: 0},
	}
	appointments := []*domain.Appointment{
		{ID: "1", TechnicianName: "A", Status: domain.StatusPending},
		{ID: "2", TechnicianName: "A", Status: domain.StatusInProgress},
		{ID: "3", TechnicianName: "A", Status: domain.StatusCompleted},
		{ID: "4", TechnicianName: "B", Status: domain.StatusInProgress},
		{ID: "5", TechnicianName: "C", Status: domain.StatusPending},
		{ID: "6", TechnicianName: domain.UnassignedTechnician, Status: domain.StatusPending},
	}
	svc, repo := newService(techs, appointments)

	resp, err := svc.Reconcile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Checked)
	assert.Equal(t, []models.Correction{
		{TechnicianID: "t1", Name: "A", From: 5, To: 2},
		{TechnicianID: "t3", Name: "C", From: 0, To: 1},
	}, resp.Corrections)

	counts := map[string]int{}
	for _, tech := range repo.techs {
		counts[tech.Name] = tech.ActiveTaskCount
	}
	assert.Equal(t, map[string]int{"A": 2, "B": 1, "C": 1}, counts)

	// повторная сверка ничего не находит
	resp, err = svc.Reconcile(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.Corrections)
}
