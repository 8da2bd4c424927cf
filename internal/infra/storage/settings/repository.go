package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	"github.com/matchtag/MT-ReservationService/pkg/dbmetrics"
	"github.com/matchtag/MT-ReservationService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с настройками бронирования
// Расписание работы хранится в JSONB колонке opening_hours
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByBar получает настройки бронирования бара
func (r *Repository) GetByBar(ctx context.Context, barID int64) (*domain.ReservationSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"bar_id",
		"opening_hours",
		"slot_duration_minutes",
		"min_advance_booking_minutes",
		"max_advance_booking_days",
		"max_party_size",
		"created_at",
		"updated_at",
	).
		From("reservation_settings").
		Where(squirrel.Eq{"bar_id": barID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBar - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.ReservationSettings
	var hoursRaw []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.BarID,
		&hoursRaw,
		&s.SlotDurationMinutes,
		&s.MinAdvanceBookingMinutes,
		&s.MaxAdvanceBookingDays,
		&s.MaxPartySize,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBar - scan settings: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(hoursRaw, &s.OpeningHours); err != nil {
		return nil, fmt.Errorf("%w: GetByBar - bar=%d: %v", ErrDecodeHours, barID, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert создает или обновляет настройки бара
// Настройки одного бара - одна строка (unique по bar_id)
func (r *Repository) Upsert(ctx context.Context, s *domain.ReservationSettings) (*domain.ReservationSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	hoursRaw, err := json.Marshal(s.OpeningHours)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - bar=%d: %v", ErrEncodeHours, s.BarID, err)
	}

	query, args, err := psqlbuilder.Insert("reservation_settings").
		Columns(
			"bar_id",
			"opening_hours",
			"slot_duration_minutes",
			"min_advance_booking_minutes",
			"max_advance_booking_days",
			"max_party_size",
		).
		Values(
			s.BarID,
			hoursRaw,
			s.SlotDurationMinutes,
			s.MinAdvanceBookingMinutes,
			s.MaxAdvanceBookingDays,
			s.MaxPartySize,
		).
		Suffix(`ON CONFLICT (bar_id) DO UPDATE SET
			opening_hours = EXCLUDED.opening_hours,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			min_advance_booking_minutes = EXCLUDED.min_advance_booking_minutes,
			max_advance_booking_days = EXCLUDED.max_advance_booking_days,
			max_party_size = EXCLUDED.max_party_size,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// Delete удаляет настройки бара (бар возвращается к значениям по умолчанию)
func (r *Repository) Delete(ctx context.Context, barID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservation_settings").
		Where(squirrel.Eq{"bar_id": barID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSettingsNotFound
	}

	return nil
}
