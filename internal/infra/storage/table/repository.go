package table

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	"github.com/matchtag/MT-ReservationService/pkg/dbmetrics"
	"github.com/matchtag/MT-ReservationService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

// Repository репозиторий для работы со столами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория столов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый стол
// Номер стола уникален в рамках бара (constraint в БД)
func (r *Repository) Create(ctx context.Context, t *domain.Table) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("tables").
		Columns(
			"bar_id",
			"number",
			"capacity",
			"active",
		).
		Values(
			t.BarID,
			t.Number,
			t.Capacity,
			t.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateNumber
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// GetByID получает стол по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"bar_id",
		"number",
		"capacity",
		"active",
		"created_at",
		"updated_at",
	).
		From("tables").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.Table
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&t.ID,
		&t.BarID,
		&t.Number,
		&t.Capacity,
		&t.Active,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan table: %v", ErrScanRow, err)
	}

	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return &t, nil
}

// ListByBar получает снимок столов бара, отсортированный по номеру
// Движку доступности нужны и неактивные столы - он фильтрует их сам,
// поэтому ActiveOnly задаётся явно через фильтр
func (r *Repository) ListByBar(ctx context.Context, filter domain.TablesFilter) ([]*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"bar_id",
		"number",
		"capacity",
		"active",
		"created_at",
		"updated_at",
	).
		From("tables").
		Where(squirrel.Eq{"bar_id": filter.BarID}).
		OrderBy("number ASC")

	if filter.ActiveOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBar - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBar - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tables := make([]*domain.Table, 0)
	for rows.Next() {
		var t domain.Table
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&t.ID,
			&t.BarID,
			&t.Number,
			&t.Capacity,
			&t.Active,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByBar - scan row: %v", ErrScanRow, err)
		}

		t.CreatedAt = createdAt.Time
		t.UpdatedAt = updatedAt.Time
		tables = append(tables, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBar - rows error: %v", ErrScanRow, err)
	}

	return tables, nil
}

// Update обновляет номер, вместимость и активность стола
func (r *Repository) Update(ctx context.Context, id int64, t *domain.Table) (*domain.Table, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("tables").
		Set("number", t.Number).
		Set("capacity", t.Capacity).
		Set("active", t.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING bar_id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.BarID, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrTableNotFound
	}
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateNumber
		}
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	t.ID = id
	t.CreatedAt = createdAt.Time
	t.UpdatedAt = updatedAt.Time

	return t, nil
}

// Deactivate помечает стол неактивным
// Физическое удаление не используется: история бронирований ссылается на стол
func (r *Repository) Deactivate(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("tables").
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrTableNotFound
	}

	return nil
}
