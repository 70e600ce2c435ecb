package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

// Коды ошибок PostgreSQL, означающие занятый интервал:
// 23505 - unique_violation, 23P01 - exclusion_violation
const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

var appointmentColumns = []string{
	"id",
	"owner_id",
	"employee_id",
	"customer_id",
	"service_id",
	"request_id",
	"start_at",
	"end_at",
	"status",
	"ignore_availability",
	"notes",
	"deleted_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Констрейнт пересечения интервалов в БД служит backstop'ом: при гонке
// двух бронирований на один интервал проигравший получает ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"owner_id",
			"employee_id",
			"customer_id",
			"service_id",
			"request_id",
			"start_at",
			"end_at",
			"status",
			"ignore_availability",
			"notes",
		).
		Values(
			appt.OwnerID,
			appt.EmployeeID,
			appt.CustomerID,
			appt.ServiceID,
			appt.RequestID,
			appt.StartAt,
			appt.EndAt,
			appt.Status,
			appt.IgnoreAvailability,
			appt.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isConstraintViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return appt, nil
}

// GetByID получает бронирование по ID (включая soft-deleted)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	appt, err := scanAppointment(row)
	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	return appt, nil
}

// ListWithFilter получает бронирования с гибкой фильтрацией
// Поддерживает фильтрацию по сотруднику, клиенту, запросу, статусу,
// пересечению с интервалом [From, To) и уровню видимости soft-delete:
// active (по умолчанию), all, deleted_only.
//
// Внутри транзакции с фильтром по сотруднику добавляется FOR UPDATE,
// чтобы проверка пересечений и вставка были атомарны.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments")

	if filter.EmployeeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"employee_id": *filter.EmployeeID})
	}
	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.RequestID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"request_id": *filter.RequestID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	// Пересечение с интервалом: start_at < To AND end_at > From
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_at": *filter.To})
	}
	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_at": *filter.From})
	}

	// Уровни видимости soft-delete
	switch filter.Visibility {
	case domain.VisibilityAll:
		// Без дополнительных условий
	case domain.VisibilityDeletedOnly:
		selectBuilder = selectBuilder.Where("deleted_at IS NOT NULL")
	default:
		selectBuilder = selectBuilder.Where("deleted_at IS NULL")
	}

	selectBuilder = selectBuilder.OrderBy("start_at ASC")

	// Блокировка строк внутри транзакции для атомарной проверки пересечений
	if dbmetrics.IsInTransaction(ctx) && filter.EmployeeID != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Overlapping получает активные бронирования сотрудника, пересекающиеся
// с интервалом [start, end). excludeID исключает собственную запись
// при переносе бронирования.
func (r *Repository) Overlapping(ctx context.Context, employeeID int64, start, end time.Time, excludeID *int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"employee_id": employeeID}).
		Where(squirrel.NotEq{"status": domain.StatusRejected}).
		Where("deleted_at IS NULL").
		Where(squirrel.Lt{"start_at": end}).
		Where(squirrel.Gt{"end_at": start}).
		OrderBy("start_at ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Overlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Overlapping - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateInterval переносит бронирование на новый интервал
func (r *Repository) UpdateInterval(ctx context.Context, id int64, start, end time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("start_at", start).
		Set("end_at", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateInterval - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isConstraintViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: UpdateInterval - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateInterval")
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateStatus")
}

// UpdateStatusByRequest переводит все pending бронирования запроса в status
// Используется каскадом принятия/отклонения запроса
func (r *Repository) UpdateStatusByRequest(ctx context.Context, requestID int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"request_id": requestID}).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		Where("deleted_at IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusByRequest - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateStatusByRequest - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// SoftDelete помечает бронирование удалённым, сохраняя историю
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("deleted_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - execute update: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "SoftDelete")
}

// HardDelete физически удаляет бронирование из всех представлений
// Использовать только для явной очистки (purge)
func (r *Repository) HardDelete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: HardDelete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: HardDelete - execute delete: %v", ErrExecQuery, err)
	}

	return checkAffected(result, "HardDelete")
}

// DeletePendingByRequestIDs удаляет pending бронирования указанных запросов
// Используется каскадом чистки брошенных запросов
func (r *Repository) DeletePendingByRequestIDs(ctx context.Context, requestIDs []int64) error {
	if len(requestIDs) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"request_id": requestIDs}).
		Where(squirrel.Eq{"status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeletePendingByRequestIDs - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeletePendingByRequestIDs - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	var deletedAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&appt.ID,
		&appt.OwnerID,
		&appt.EmployeeID,
		&appt.CustomerID,
		&appt.ServiceID,
		&appt.RequestID,
		&appt.StartAt,
		&appt.EndAt,
		&appt.Status,
		&appt.IgnoreAvailability,
		&appt.Notes,
		&deletedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if deletedAt.Valid {
		appt.DeletedAt = &deletedAt.Time
	}
	appt.CreatedAt = createdAt.Time
	appt.UpdatedAt = updatedAt.Time

	return &appt, nil
}

// scanAppointments сканирует результаты запроса в слайс бронирований
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// isConstraintViolation проверяет, что ошибка - нарушение констрейнта занятости
func isConstraintViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		return code == pgUniqueViolation || code == pgExclusionViolation
	}
	return false
}
