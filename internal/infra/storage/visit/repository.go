package visit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-VisitScheduler/pkg/psqlbuilder"
	"github.com/m04kA/SMC-VisitScheduler/pkg/types"
)

const (
	tableName = "visits"

	// uniqueSlotConstraint уникальный индекс (property_id, visit_date, slot)
	uniqueSlotConstraint = "visits_property_date_slot_key"
	sqlStateUnique       = "23505"
)

var columns = []string{
	"id",
	"property_id",
	"interested_id",
	"visit_date",
	"slot",
	"status",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с визитами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория визитов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый визит
// Если в контексте передана активная транзакция, использует её.
// Повторное бронирование того же слота отсекается уникальным индексом (ErrSlotTaken).
func (r *Repository) Create(ctx context.Context, visit *domain.Visit) (*domain.Visit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"property_id",
			"interested_id",
			"visit_date",
			"slot",
			"status",
			"notes",
		).
		Values(
			visit.PropertyID,
			visit.InterestedID,
			dateArg(visit.Date),
			visit.Slot,
			visit.Status,
			visit.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&visit.ID,
		&createdAt,
		&updatedAt,
	)
	if isUniqueViolation(err) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	visit.CreatedAt = createdAt.Time
	visit.UpdatedAt = updatedAt.Time

	return visit, nil
}

// Update перезаписывает объект, клиента, дату, слот и заметки визита
func (r *Repository) Update(ctx context.Context, visit *domain.Visit) (*domain.Visit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("property_id", visit.PropertyID).
		Set("interested_id", visit.InterestedID).
		Set("visit_date", dateArg(visit.Date)).
		Set("slot", visit.Slot).
		Set("notes", visit.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": visit.ID}).
		Suffix("RETURNING status, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&visit.Status,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrVisitNotFound
	}
	if isUniqueViolation(err) {
		return nil, ErrSlotTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	visit.CreatedAt = createdAt.Time
	visit.UpdatedAt = updatedAt.Time

	return visit, nil
}

// GetByID получает визит по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Visit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	visit, err := scanVisit(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrVisitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan visit: %v", ErrScanRow, err)
	}

	return visit, nil
}

// GetByFilter получает визиты по фильтру
// Сортировка: по дате и слоту по возрастанию
func (r *Repository) GetByFilter(ctx context.Context, filter domain.VisitsFilter) ([]*domain.Visit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("visit_date ASC", "slot ASC")

	if filter.PropertyID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"property_id": *filter.PropertyID})
	}
	if filter.InterestedID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"interested_id": *filter.InterestedID})
	}
	if filter.FromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"visit_date": dateArg(*filter.FromDate)})
	}
	if filter.ToDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"visit_date": dateArg(*filter.ToDate)})
	}
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}
	if filter.ExcludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *filter.ExcludeID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanVisits(rows)
}

// GetByPropertyAndRange все визиты объекта в диапазоне дат, в любом статусе
// (занятость слотов считается консервативно, отменённые визиты тоже занимают слот)
func (r *Repository) GetByPropertyAndRange(ctx context.Context, propertyID int64, from, to time.Time) ([]*domain.Visit, error) {
	return r.GetByFilter(ctx, domain.VisitsFilter{
		PropertyID: &propertyID,
		FromDate:   &from,
		ToDate:     &to,
	})
}

// GetOccupiedSlots занятые слоты объекта на дату (визиты в любом статусе)
func (r *Repository) GetOccupiedSlots(ctx context.Context, propertyID int64, date time.Time) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot").
		From(tableName).
		Where(squirrel.Eq{
			"property_id": propertyID,
			"visit_date":  dateArg(date),
		}).
		OrderBy("slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupiedSlots - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupiedSlots - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]types.TimeString, 0)
	for rows.Next() {
		var slot types.TimeString
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("%w: GetOccupiedSlots - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetOccupiedSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// ExistsInSlot есть ли визит (в любом статусе) на объект в эту дату и слот
func (r *Repository) ExistsInSlot(ctx context.Context, propertyID int64, date time.Time, slot types.TimeString, excludeID *int64) (bool, error) {
	cond := squirrel.And{
		squirrel.Eq{"property_id": propertyID},
		squirrel.Eq{"visit_date": dateArg(date)},
		squirrel.Eq{"slot": slot},
	}
	if excludeID != nil {
		cond = append(cond, squirrel.NotEq{"id": *excludeID})
	}

	n, err := r.count(ctx, "ExistsInSlot", cond)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountActiveByInterested активные визиты клиента с датой >= fromDate
func (r *Repository) CountActiveByInterested(ctx context.Context, interestedID int64, fromDate time.Time, excludeID *int64) (int, error) {
	cond := squirrel.And{
		squirrel.Eq{"interested_id": interestedID},
		squirrel.Eq{"status": statusStrings(domain.ActiveVisitStatuses)},
		squirrel.GtOrEq{"visit_date": dateArg(fromDate)},
	}
	if excludeID != nil {
		cond = append(cond, squirrel.NotEq{"id": *excludeID})
	}

	return r.count(ctx, "CountActiveByInterested", cond)
}

// CountActiveByInterestedOnDate активные визиты клиента в указанную дату
func (r *Repository) CountActiveByInterestedOnDate(ctx context.Context, interestedID int64, date time.Time, excludeID *int64) (int, error) {
	cond := squirrel.And{
		squirrel.Eq{"interested_id": interestedID},
		squirrel.Eq{"status": statusStrings(domain.ActiveVisitStatuses)},
		squirrel.Eq{"visit_date": dateArg(date)},
	}
	if excludeID != nil {
		cond = append(cond, squirrel.NotEq{"id": *excludeID})
	}

	return r.count(ctx, "CountActiveByInterestedOnDate", cond)
}

// UpdateStatus переводит визит из статуса from в статус to.
// Если визит уже в другом статусе, ничего не меняет и возвращает ErrStatusChanged.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.VisitStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrVisitNotFound
		}
		return ErrStatusChanged
	}

	return nil
}

func (r *Repository) exists(ctx context.Context, id int64) (bool, error) {
	n, err := r.count(ctx, "UpdateStatus", squirrel.Eq{"id": id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repository) count(ctx context.Context, op string, cond squirrel.Sqlizer) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableName).
		Where(cond).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: %s - build count query: %v", ErrBuildQuery, op, err)
	}

	var n int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %s - scan count: %v", ErrScanRow, op, err)
	}

	return n, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVisit(row rowScanner) (*domain.Visit, error) {
	var visit domain.Visit
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&visit.ID,
		&visit.PropertyID,
		&visit.InterestedID,
		&visit.Date,
		&visit.Slot,
		&visit.Status,
		&visit.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	visit.CreatedAt = createdAt.Time
	visit.UpdatedAt = updatedAt.Time

	return &visit, nil
}

// scanVisits сканирует результаты запроса в слайс визитов
func scanVisits(rows *sql.Rows) ([]*domain.Visit, error) {
	visits := make([]*domain.Visit, 0)

	for rows.Next() {
		visit, err := scanVisit(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanVisits - scan row: %v", ErrScanRow, err)
		}
		visits = append(visits, visit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanVisits - rows error: %v", ErrScanRow, err)
	}

	return visits, nil
}

// dateArg передаёт дату в запрос строкой, чтобы часовой пояс значения не сдвигал день
func dateArg(date time.Time) string {
	return date.Format(domain.DateFormat)
}

func statusStrings(statuses []domain.VisitStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != sqlStateUnique {
		return false
	}
	return pqErr.Constraint == "" || pqErr.Constraint == uniqueSlotConstraint
}
