package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	settingsRepo "github.com/matchtag/MT-ReservationService/internal/infra/storage/settings"
	"github.com/matchtag/MT-ReservationService/pkg/types"
)

// --- Стабы зависимостей ---

type stubTableRepo struct {
	tables []*domain.Table
	err    error
}

func (s *stubTableRepo) ListByBar(_ context.Context, _ domain.TablesFilter) ([]*domain.Table, error) {
	return s.tables, s.err
}

type stubReservationRepo struct {
	reservations []*domain.Reservation
	err          error
}

func (s *stubReservationRepo) GetByBarWithFilter(_ context.Context, _ domain.BarReservationsFilter) ([]*domain.Reservation, error) {
	return s.reservations, s.err
}

type stubSettingsRepo struct {
	settings *domain.ReservationSettings
	err      error
}

func (s *stubSettingsRepo) GetByBar(_ context.Context, _ int64) (*domain.ReservationSettings, error) {
	return s.settings, s.err
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Фикстуры ---

// Суббота; бар работает 12:00-23:00, слоты по 30 минут
var (
	testDate = time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
)

func saturdaySettings() *domain.ReservationSettings {
	return &domain.ReservationSettings{
		BarID: 1,
		OpeningHours: domain.OpeningHours{
			Saturday: &domain.DayHours{Open: "12:00", Close: "23:00"},
		},
		SlotDurationMinutes:      30,
		MinAdvanceBookingMinutes: 60,
		MaxAdvanceBookingDays:    30,
		MaxPartySize:             12,
	}
}

func threeTables() []*domain.Table {
	return []*domain.Table{
		{ID: 1, BarID: 1, Number: 1, Capacity: 2, Active: true},
		{ID: 2, BarID: 1, Number: 2, Capacity: 4, Active: true},
		{ID: 3, BarID: 1, Number: 3, Capacity: 4, Active: true},
	}
}

func confirmedReservation(tableID int64, start types.TimeString, durationMinutes int) *domain.Reservation {
	return &domain.Reservation{
		ID:              100,
		BarID:           1,
		TableID:         &tableID,
		GuestID:         7,
		PartySize:       4,
		ReservationDate: testDate,
		StartTime:       start,
		DurationMinutes: durationMinutes,
		Status:          domain.StatusConfirmed,
	}
}

func newTestUseCase(tables []*domain.Table, reservations []*domain.Reservation, settings *domain.ReservationSettings, settingsErr error) *UseCase {
	return NewUseCase(
		&stubTableRepo{tables: tables},
		&stubReservationRepo{reservations: reservations},
		&stubSettingsRepo{settings: settings, err: settingsErr},
		nil,
		nopLogger{},
	).WithTimeProvider(&fixedTime{now: testNow})
}

func slotByTime(t *testing.T, slots []domain.TimeSlot, at string) domain.TimeSlot {
	t.Helper()
	for _, s := range slots {
		if s.Time == at {
			return s
		}
	}
	t.Fatalf("slot %s not found", at)
	return domain.TimeSlot{}
}

// --- Тесты ---

func TestExecute_ComputesSlotGrid(t *testing.T) {
	uc := newTestUseCase(threeTables(), nil, saturdaySettings(), nil)

	resp, err := uc.Execute(context.Background(), &Request{
		BarID:           1,
		Date:            testDate,
		PartySize:       4,
		DurationMinutes: 120,
	})
	require.NoError(t, err)

	// Посадка 120 минут при закрытии в 23:00: последний слот 21:00.
	// 12:00..21:00 с шагом 30 минут = 19 слотов
	require.Len(t, resp.Slots, 19)
	assert.Equal(t, "12:00", resp.Slots[0].Time)
	assert.Equal(t, "21:00", resp.Slots[len(resp.Slots)-1].Time)

	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
		assert.Equal(t, 2, slot.AvailableTablesCount, "slot %s", slot.Time)
	}
}

func TestExecute_ConflictingReservationShrinksSlot(t *testing.T) {
	// Стол 2 занят 19:00-21:00
	reservations := []*domain.Reservation{confirmedReservation(2, "19:00", 120)}
	uc := newTestUseCase(threeTables(), reservations, saturdaySettings(), nil)

	resp, err := uc.Execute(context.Background(), &Request{
		BarID: 1, Date: testDate, PartySize: 4, DurationMinutes: 120,
	})
	require.NoError(t, err)

	// Слот с полным пересечением
	s := slotByTime(t, resp.Slots, "19:00")
	assert.True(t, s.Available)
	assert.Equal(t, 1, s.AvailableTablesCount)
	require.NotNil(t, s.SuggestedTable)
	assert.Equal(t, int64(3), s.SuggestedTable.ID)

	// Частичное пересечение тоже конфликт
	s = slotByTime(t, resp.Slots, "17:30")
	assert.Equal(t, 1, s.AvailableTablesCount)

	// Слот, заканчивающийся ровно в начале брони, - не конфликт
	s = slotByTime(t, resp.Slots, "17:00")
	assert.Equal(t, 2, s.AvailableTablesCount)
	require.NotNil(t, s.SuggestedTable)
	assert.Equal(t, int64(2), s.SuggestedTable.ID)

	// Слот, начинающийся ровно в конце брони, - не конфликт
	s = slotByTime(t, resp.Slots, "21:00")
	assert.Equal(t, 2, s.AvailableTablesCount)
}

func TestExecute_SuggestsTightestTable(t *testing.T) {
	uc := newTestUseCase(threeTables(), nil, saturdaySettings(), nil)

	resp, err := uc.Execute(context.Background(), &Request{
		BarID: 1, Date: testDate, PartySize: 2, DurationMinutes: 120,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)

	// Для компании из 2 подходят все три стола, рекомендуется самый тесный
	s := resp.Slots[0]
	assert.Equal(t, 3, s.AvailableTablesCount)
	require.NotNil(t, s.SuggestedTable)
	assert.Equal(t, int64(1), s.SuggestedTable.ID)
	assert.Equal(t, 2, s.SuggestedTable.Capacity)
}

func TestExecute_InactiveTablesExcluded(t *testing.T) {
	tables := threeTables()
	tables[1].Active = false
	tables[2].Active = false
	uc := newTestUseCase(tables, nil, saturdaySettings(), nil)

	resp, err := uc.Execute(context.Background(), &Request{
		BarID: 1, Date: testDate, PartySize: 4, DurationMinutes: 120,
	})
	require.NoError(t, err)

	// Остался только стол на 2 места - компанию из 4 посадить некуда
	assert.Empty(t, resp.Slots)
}

func TestExecute_CancelledReservationDoesNotBlock(t *testing.T) {
	res := confirmedReservation(2, "19:00", 120)
	res.Status = domain.StatusCancelled
	uc := newTestUseCase(threeTables(), []*domain.Reservation{res}, saturdaySettings(), nil)

	resp, err := uc.Execute(context.Background(), &Request{
		BarID: 1, Date: testDate, PartySize: 4, DurationMinutes: 120,
	})
	require.NoError(t, err)

	s := slotByTime(t, resp.Slots, "19:00")
	assert.Equal(t, 2, s.AvailableTablesCount)
}

func TestExecute_UnassignedReservationDoesNotBlock(t *testing.T) {
	res := confirmedReservation(2, "19:00", 120)
	res.TableID = nil
	uc := newTestUseCase(threeTables(), []*domain.Reservation{res}, saturdaySettings(), nil)

	resp, err := uc.Execute(context.Background(), &Request{
		BarID: 1, Date: testDate, PartySize: 4, DurationMinutes: 120,
	})
	require.NoError(t, err)

	s := slotByTime(t, resp.Slots, "19:00")
	assert.Equal(t, 2, s.AvailableTablesCount)
}

func TestExecute_EmptyWhenClosedDay(t *testing.T) {
	settings := saturdaySettings()
	settings.OpeningHours.Saturday = nil
	settings.OpeningHours.Monday = &domain.DayHours{Open: "12:00", Close: "23:00"}
	uc := newTestUseCase(threeTables(), nil, settings, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		BarID: 1, Date: testDate, PartySize: 4, DurationMinutes: 120,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_EmptyWhenDateOutOfWindow(t *testing.T) {
	uc := newTestUseCase(threeTables(), nil, saturdaySettings(), nil)

	// Дата в прошлом
	resp, err := uc.Execute(context.Background(), &Request{
		BarID: 1, Date: testNow.AddDate(0, 0, -1), PartySize: 4, DurationMinutes: 120,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)

	// Дата за пределами maxAdvanceBookingDays
	resp, err = uc.Execute(context.Background(), &Request{
		BarID: 1, Date: testNow.AddDate(0, 0, 31), PartySize: 4, DurationMinutes: 120,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_EmptyWhenPartyTooLarge(t *testing.T) {
	uc := newTestUseCase(threeTables(), nil, saturdaySettings(), nil)

	resp, err := uc.Execute(context.Background(), &Request{
		BarID: 1, Date: testDate, PartySize: 13, DurationMinutes: 120,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_SameDayNoticeFilter(t *testing.T) {
	uc := newTestUseCase(threeTables(), nil, saturdaySettings(), nil)
	// Запрос в день бронирования в 18:10; minAdvance=60 отрезает все слоты до 19:10
	uc.WithTimeProvider(&fixedTime{now: time.Date(2026, 9, 12, 18, 10, 0, 0, time.UTC)})

	resp, err := uc.Execute(context.Background(), &Request{
		BarID: 1, Date: testDate, PartySize: 4, DurationMinutes: 120,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "19:30", resp.Slots[0].Time)
	assert.Equal(t, "21:00", resp.Slots[len(resp.Slots)-1].Time)
}

func TestExecute_DefaultDuration(t *testing.T) {
	uc := newTestUseCase(threeTables(), nil, saturdaySettings(), nil)

	resp, err := uc.Execute(context.Background(), &Request{
		BarID: 1, Date: testDate, PartySize: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultReservationMinutes, resp.DurationMinutes)
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "21:00", resp.Slots[len(resp.Slots)-1].Time)
}

func TestExecute_DefaultSettingsWhenMissing(t *testing.T) {
	uc := newTestUseCase(threeTables(), nil, nil, settingsRepo.ErrSettingsNotFound)

	// Дефолтные настройки не содержат расписания - бар считается закрытым
	resp, err := uc.Execute(context.Background(), &Request{
		BarID: 1, Date: testDate, PartySize: 4, DurationMinutes: 120,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_InvalidSettings(t *testing.T) {
	settings := saturdaySettings()
	settings.OpeningHours.Saturday = &domain.DayHours{Open: "23:00", Close: "12:00"}
	uc := newTestUseCase(threeTables(), nil, settings, nil)

	_, err := uc.Execute(context.Background(), &Request{
		BarID: 1, Date: testDate, PartySize: 4, DurationMinutes: 120,
	})
	require.ErrorIs(t, err, ErrInvalidSettings)

	settings = saturdaySettings()
	settings.SlotDurationMinutes = 0
	uc = newTestUseCase(threeTables(), nil, settings, nil)

	_, err = uc.Execute(context.Background(), &Request{
		BarID: 1, Date: testDate, PartySize: 4, DurationMinutes: 120,
	})
	require.ErrorIs(t, err, ErrInvalidSettings)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(threeTables(), nil, saturdaySettings(), nil)

	cases := []Request{
		{BarID: 0, Date: testDate, PartySize: 4},
		{BarID: 1, Date: testDate, PartySize: 0},
		{BarID: 1, Date: testDate, PartySize: 4, DurationMinutes: -30},
		{BarID: 1, PartySize: 4},
	}
	for _, req := range cases {
		_, err := uc.Execute(context.Background(), &req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}
