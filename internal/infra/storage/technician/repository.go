package technician

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-WashScheduler/internal/domain"
	"github.com/m04kA/SMC-WashScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-WashScheduler/pkg/psqlbuilder"
)

const table = "technicians"

const pgUniqueViolation = "23505"

var columns = []string{
	"id",
	"name",
	"status",
	"active_task_count",
	"created_at",
	"updated_at",
}

// Repository репозиторий мастеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает мастера с нулевым счётчиком задач
func (r *Repository) Create(ctx context.Context, t *domain.Technician) (*domain.Technician, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "name", "status", "active_task_count").
		Values(t.ID, t.Name, t.Status, t.ActiveTaskCount).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return t, nil
}

// GetByID получает мастера по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Technician, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByName получает мастера по имени
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.Technician, error) {
	return r.getOne(ctx, "GetByName", squirrel.Eq{"name": name})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Technician, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	t, err := scanTechnician(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTechnicianNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan technician: %v", ErrScanRow, op, err)
	}

	return t, nil
}

// ListAll возвращает ростер в стабильном порядке (по дате создания).
// Порядок важен: при равной загрузке выбирается первый мастер
func (r *Repository) ListAll(ctx context.Context) ([]domain.Technician, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("created_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	techs := make([]domain.Technician, 0)
	for rows.Next() {
		t, err := scanTechnician(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAll - scan row: %v", ErrScanRow, err)
		}
		techs = append(techs, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAll - rows error: %v", ErrScanRow, err)
	}

	return techs, nil
}

// AdjustActiveTasks атомарно меняет счётчик задач мастера на delta.
// Увеличение выполняется на стороне БД (без read-modify-write), уход ниже нуля не применяется.
// Возвращает false, если мастер не найден или счётчик уже нулевой
func (r *Repository) AdjustActiveTasks(ctx context.Context, name string, delta int) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("active_task_count", squirrel.Expr("active_task_count + ?", delta)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Expr("active_task_count + ? >= 0", delta)).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: AdjustActiveTasks - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: AdjustActiveTasks - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: AdjustActiveTasks - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// SetActiveTasks выставляет счётчик задач (используется при сверке)
func (r *Repository) SetActiveTasks(ctx context.Context, id string, count int) error {
	return r.updateField(ctx, "SetActiveTasks", id, "active_task_count", count)
}

// UpdateStatus меняет статус мастера
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.TechnicianStatus) error {
	return r.updateField(ctx, "UpdateStatus", id, "status", status)
}

func (r *Repository) updateField(ctx context.Context, op, id, column string, value interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set(column, value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrTechnicianNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTechnician(row rowScanner) (*domain.Technician, error) {
	var t domain.Technician
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Status,
		&t.ActiveTaskCount,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
