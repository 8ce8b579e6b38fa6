package interested

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-VisitScheduler/internal/domain"
	"github.com/m04kA/SMC-VisitScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-VisitScheduler/pkg/psqlbuilder"
)

var (
	// ErrInterestedNotFound возвращается, когда клиент не найден
	ErrInterestedNotFound = errors.New("interested.repository: interested party not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("interested.repository: failed to build query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("interested.repository: failed to scan row")
)

// Repository чтение заинтересованных лиц (клиентов)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает клиента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.InterestedParty, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "full_name", "user_id").
		From("interested_parties").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		party  domain.InterestedParty
		userID sql.NullInt64
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(&party.ID, &party.FullName, &userID)
	if err == sql.ErrNoRows {
		return nil, ErrInterestedNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan interested party: %v", ErrScanRow, err)
	}

	if userID.Valid {
		party.UserID = &userID.Int64
	}

	return &party, nil
}
