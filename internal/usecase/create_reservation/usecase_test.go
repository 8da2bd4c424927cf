package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	settingsRepo "github.com/matchtag/MT-ReservationService/internal/infra/storage/settings"
	"github.com/matchtag/MT-ReservationService/internal/queue"
	"github.com/matchtag/MT-ReservationService/pkg/ptr"
)

// --- Стабы зависимостей ---

type stubReservationRepo struct {
	existing []*domain.Reservation
	created  *domain.Reservation
}

func (s *stubReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	created := *res
	created.ID = 500
	created.CreatedAt = time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	s.created = &created
	return &created, nil
}

func (s *stubReservationRepo) GetByBarWithFilter(_ context.Context, _ domain.BarReservationsFilter) ([]*domain.Reservation, error) {
	return s.existing, nil
}

type stubTableRepo struct {
	tables []*domain.Table
}

func (s *stubTableRepo) ListByBar(_ context.Context, filter domain.TablesFilter) ([]*domain.Table, error) {
	if !filter.ActiveOnly {
		return s.tables, nil
	}
	active := make([]*domain.Table, 0, len(s.tables))
	for _, t := range s.tables {
		if t.Active {
			active = append(active, t)
		}
	}
	return active, nil
}

type stubSettingsRepo struct {
	settings *domain.ReservationSettings
	err      error
}

func (s *stubSettingsRepo) GetByBar(_ context.Context, _ int64) (*domain.ReservationSettings, error) {
	return s.settings, s.err
}

// inlineTxManager выполняет fn без реальной транзакции
type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingPublisher struct {
	events []queue.ReservationCreatedEvent
}

func (r *recordingPublisher) PublishReservationCreated(_ context.Context, event queue.ReservationCreatedEvent) error {
	r.events = append(r.events, event)
	return nil
}

type recordingInvalidator struct {
	calls int
}

func (r *recordingInvalidator) Invalidate(_ context.Context, _ int64, _ time.Time) error {
	r.calls++
	return nil
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

type testEnv struct {
	uc          *UseCase
	reservation *stubReservationRepo
	publisher   *recordingPublisher
	invalidator *recordingInvalidator
}

func newTestEnv(tables []*domain.Table, existing []*domain.Reservation, settings *domain.ReservationSettings, settingsErr error) *testEnv {
	env := &testEnv{
		reservation: &stubReservationRepo{existing: existing},
		publisher:   &recordingPublisher{},
		invalidator: &recordingInvalidator{},
	}
	env.uc = NewUseCase(
		env.reservation,
		&stubTableRepo{tables: tables},
		&stubSettingsRepo{settings: settings, err: settingsErr},
		inlineTxManager{},
		env.publisher,
		env.invalidator,
		nopLogger{},
	).WithTimeProvider(&fixedTime{now: testNow})
	return env
}

func validRequest() *Request {
	return &Request{
		GuestID:         7,
		BarID:           1,
		GuestName:       "Анна",
		PartySize:       4,
		Date:            testDate,
		StartTime:       "19:00",
		DurationMinutes: 120,
	}
}

// --- Тесты ---

func TestExecute_AssignsTightestTable(t *testing.T) {
	env := newTestEnv(threeTables(), nil, saturdaySettings(), nil)

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Для компании из 4 подходят столы 2 и 3 (оба на 4 места), берётся меньший номер
	require.NotNil(t, resp.TableID)
	assert.Equal(t, int64(2), *resp.TableID)
	require.NotNil(t, resp.TableNumber)
	assert.Equal(t, 2, *resp.TableNumber)
	require.NotNil(t, resp.TableCapacity)
	assert.Equal(t, 4, *resp.TableCapacity)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, int64(500), resp.ID)

	// Денормализация сохраняется вместе с бронированием
	require.NotNil(t, env.reservation.created)
	assert.Equal(t, ptr.Ptr(2), env.reservation.created.TableNumber)

	// Пост-обработка: кеш сброшен, событие опубликовано
	assert.Equal(t, 1, env.invalidator.calls)
	require.Len(t, env.publisher.events, 1)
	event := env.publisher.events[0]
	assert.Equal(t, int64(500), event.ReservationID)
	assert.Equal(t, "19:00", event.StartTime)
	assert.Equal(t, "2026-09-12", event.ReservationDate)
}

func TestExecute_SkipsBusyTable(t *testing.T) {
	// Стол 2 занят 19:00-21:00, должен достаться стол 3
	existing := []*domain.Reservation{{
		ID: 100, BarID: 1, TableID: ptr.Ptr(int64(2)), GuestID: 8, PartySize: 4,
		ReservationDate: testDate, StartTime: "19:00", DurationMinutes: 120,
		Status: domain.StatusConfirmed,
	}}
	env := newTestEnv(threeTables(), existing, saturdaySettings(), nil)

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp.TableID)
	assert.Equal(t, int64(3), *resp.TableID)
}

func TestExecute_AllTablesBusy(t *testing.T) {
	existing := []*domain.Reservation{
		{ID: 100, BarID: 1, TableID: ptr.Ptr(int64(2)), ReservationDate: testDate, StartTime: "19:00", DurationMinutes: 120, Status: domain.StatusConfirmed},
		{ID: 101, BarID: 1, TableID: ptr.Ptr(int64(3)), ReservationDate: testDate, StartTime: "18:00", DurationMinutes: 180, Status: domain.StatusConfirmed},
	}
	env := newTestEnv(threeTables(), existing, saturdaySettings(), nil)

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrTableNotAvailable)
}

func TestExecute_NoTableFits(t *testing.T) {
	env := newTestEnv(threeTables(), nil, saturdaySettings(), nil)

	req := validRequest()
	req.PartySize = 5
	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrNoTableFits)
}

func TestExecute_RequestedTable(t *testing.T) {
	env := newTestEnv(threeTables(), nil, saturdaySettings(), nil)

	req := validRequest()
	req.TableID = ptr.Ptr(int64(3))
	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.TableID)
	assert.Equal(t, int64(3), *resp.TableID)
}

func TestExecute_RequestedTableNotFound(t *testing.T) {
	env := newTestEnv(threeTables(), nil, saturdaySettings(), nil)

	req := validRequest()
	req.TableID = ptr.Ptr(int64(99))
	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrTableNotFound)
}

func TestExecute_RequestedInactiveTableNotFound(t *testing.T) {
	tables := threeTables()
	tables[2].Active = false
	env := newTestEnv(tables, nil, saturdaySettings(), nil)

	req := validRequest()
	req.TableID = ptr.Ptr(int64(3))
	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrTableNotFound)
}

func TestExecute_RequestedTableTooSmall(t *testing.T) {
	env := newTestEnv(threeTables(), nil, saturdaySettings(), nil)

	req := validRequest()
	req.TableID = ptr.Ptr(int64(1)) // стол на 2 места
	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrNoTableFits)
}

func TestExecute_RequestedTableBusy(t *testing.T) {
	existing := []*domain.Reservation{{
		ID: 100, BarID: 1, TableID: ptr.Ptr(int64(2)), ReservationDate: testDate,
		StartTime: "18:00", DurationMinutes: 180, Status: domain.StatusConfirmed,
	}}
	env := newTestEnv(threeTables(), existing, saturdaySettings(), nil)

	req := validRequest()
	req.TableID = ptr.Ptr(int64(2))
	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrTableNotAvailable)
}

func TestExecute_TouchingReservationIsNotConflict(t *testing.T) {
	// Существующая бронь заканчивается ровно в 19:00 - слот 19:00 свободен
	existing := []*domain.Reservation{{
		ID: 100, BarID: 1, TableID: ptr.Ptr(int64(2)), ReservationDate: testDate,
		StartTime: "17:00", DurationMinutes: 120, Status: domain.StatusConfirmed,
	}}
	env := newTestEnv(threeTables(), existing, saturdaySettings(), nil)

	req := validRequest()
	req.TableID = ptr.Ptr(int64(2))
	_, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_BarClosed(t *testing.T) {
	settings := saturdaySettings()
	settings.OpeningHours.Saturday = nil
	env := newTestEnv(threeTables(), nil, settings, nil)

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrBarClosed)
}

func TestExecute_DateValidation(t *testing.T) {
	env := newTestEnv(threeTables(), nil, saturdaySettings(), nil)

	req := validRequest()
	req.Date = testNow.AddDate(0, 0, -1)
	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDate)

	req = validRequest()
	req.Date = testNow.AddDate(0, 0, 40)
	_, err = env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_TimeSlotValidation(t *testing.T) {
	env := newTestEnv(threeTables(), nil, saturdaySettings(), nil)

	// До открытия
	req := validRequest()
	req.StartTime = "11:00"
	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidTimeSlot)

	// Мимо сетки слотов
	req = validRequest()
	req.StartTime = "19:15"
	_, err = env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidTimeSlot)

	// Посадка выходит за закрытие
	req = validRequest()
	req.StartTime = "22:00"
	_, err = env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_TooLateToBook(t *testing.T) {
	env := newTestEnv(threeTables(), nil, saturdaySettings(), nil)
	// Запрос в день бронирования в 18:30: 19:00 нарушает minAdvance=60
	env.uc.WithTimeProvider(&fixedTime{now: time.Date(2026, 9, 12, 18, 30, 0, 0, time.UTC)})

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_PartyTooLarge(t *testing.T) {
	env := newTestEnv(threeTables(), nil, saturdaySettings(), nil)

	req := validRequest()
	req.PartySize = 13
	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrPartyTooLarge)
}

func TestExecute_DefaultSettingsWhenMissing(t *testing.T) {
	env := newTestEnv(threeTables(), nil, nil, settingsRepo.ErrSettingsNotFound)

	// Дефолтные настройки не содержат расписания - бар считается закрытым
	_, err := env.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrBarClosed)
}

func TestExecute_InvalidSettings(t *testing.T) {
	settings := saturdaySettings()
	settings.OpeningHours.Saturday = &domain.DayHours{Open: "23:00", Close: "12:00"}
	env := newTestEnv(threeTables(), nil, settings, nil)

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrInvalidSettings)
}

func TestExecute_InvalidInput(t *testing.T) {
	env := newTestEnv(threeTables(), nil, saturdaySettings(), nil)

	mutations := []func(*Request){
		func(r *Request) { r.GuestID = 0 },
		func(r *Request) { r.BarID = -1 },
		func(r *Request) { r.GuestName = "" },
		func(r *Request) { r.PartySize = 0 },
		func(r *Request) { r.DurationMinutes = -30 },
		func(r *Request) { r.Date = time.Time{} },
		func(r *Request) { r.StartTime = "" },
		func(r *Request) { r.StartTime = "7pm" },
		func(r *Request) { r.TableID = ptr.Ptr(int64(0)) },
	}
	for _, mutate := range mutations {
		req := validRequest()
		mutate(req)
		_, err := env.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestExecute_DefaultDuration(t *testing.T) {
	env := newTestEnv(threeTables(), nil, saturdaySettings(), nil)

	req := validRequest()
	req.DurationMinutes = 0
	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultReservationMinutes, resp.DurationMinutes)
}
