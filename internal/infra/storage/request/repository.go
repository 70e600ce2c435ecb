package request

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var requestColumns = []string{
	"id",
	"owner_id",
	"user_id",
	"scheduled_date",
	"complete",
	"status",
	"payment_ref",
	"payment_status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с запросами (корзинами бронирований)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория запросов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOrCreateCurrent возвращает незавершённый запрос пары (owner, user),
// создавая его при отсутствии. Частичный уникальный индекс на
// (owner_id, user_id) WHERE NOT complete гарантирует, что при гонке
// двух вызовов второй INSERT не создаст дубликат: ON CONFLICT DO NOTHING
// не вернет строку, и запрос будет дочитан обычным SELECT.
func (r *Repository) GetOrCreateCurrent(ctx context.Context, ownerID, userID int64, scheduledDate time.Time) (*domain.Request, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("requests").
		Columns("owner_id", "user_id", "scheduled_date", "complete", "status").
		Values(ownerID, userID, scheduledDate, false, domain.RequestPending).
		Suffix("ON CONFLICT (owner_id, user_id) WHERE NOT complete DO NOTHING").
		Suffix("RETURNING " + joinColumns()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOrCreateCurrent - build insert query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	req, err := scanRequest(row)
	if err == nil {
		return req, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("%w: GetOrCreateCurrent - execute insert: %v", ErrExecQuery, err)
	}

	// Конфликт: текущий запрос уже существует, читаем его
	return r.GetCurrent(ctx, ownerID, userID)
}

// GetCurrent возвращает незавершённый запрос пары (owner, user)
func (r *Repository) GetCurrent(ctx context.Context, ownerID, userID int64) (*domain.Request, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("requests").
		Where(squirrel.Eq{"owner_id": ownerID}).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"complete": false}).
		OrderBy("created_at ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrent - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCurrent - scan request: %v", ErrScanRow, err)
	}

	return req, nil
}

// GetByID получает запрос по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Request, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	req, err := scanRequest(row)
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return req, nil
}

// SetComplete помечает запрос завершённым
func (r *Repository) SetComplete(ctx context.Context, id int64) error {
	return r.update(ctx, id, map[string]interface{}{"complete": true}, "SetComplete")
}

// SetStatus обновляет агрегированный статус запроса
func (r *Repository) SetStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	return r.update(ctx, id, map[string]interface{}{"status": status}, "SetStatus")
}

// Touch обновляет updated_at запроса, отодвигая его idle-таймаут
func (r *Repository) Touch(ctx context.Context, id int64) error {
	return r.update(ctx, id, map[string]interface{}{}, "Touch")
}

// GetIdle возвращает незавершённые запросы, не обновлявшиеся дольше таймаута
func (r *Repository) GetIdle(ctx context.Context, olderThan time.Time) ([]*domain.Request, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("requests").
		Where(squirrel.Eq{"complete": false}).
		Where(squirrel.Lt{"updated_at": olderThan}).
		OrderBy("updated_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetIdle - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetIdle - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	requests := make([]*domain.Request, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetIdle - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetIdle - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}

// DeleteByIDs удаляет запросы по списку идентификаторов
// Каскад на pending бронирования выполняется репозиторием бронирований
func (r *Repository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("requests").
		Where(squirrel.Eq{"id": ids}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByIDs - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByIDs - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) update(ctx context.Context, id int64, sets map[string]interface{}, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("requests").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	for column, value := range sets {
		updateBuilder = updateBuilder.Set(column, value)
	}

	query, args, err := updateBuilder.ToSql()
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
		return ErrRequestNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (*domain.Request, error) {
	var req domain.Request
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.OwnerID,
		&req.UserID,
		&req.ScheduledDate,
		&req.Complete,
		&req.Status,
		&req.PaymentRef,
		&req.PaymentStatus,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

func joinColumns() string {
	result := requestColumns[0]
	for _, c := range requestColumns[1:] {
		result += ", " + c
	}
	return result
}
