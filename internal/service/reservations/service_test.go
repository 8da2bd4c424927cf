package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	reservationRepo "github.com/matchtag/MT-ReservationService/internal/infra/storage/reservation"
	"github.com/matchtag/MT-ReservationService/internal/queue"
	"github.com/matchtag/MT-ReservationService/internal/service/reservations/models"
	"github.com/matchtag/MT-ReservationService/pkg/ptr"
)

// --- Стабы зависимостей ---

type stubRepo struct {
	byID map[int64]*domain.Reservation

	cancelledID     int64
	cancelledReason string
	updatedStatus   domain.ReservationStatus
}

func (s *stubRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	res, ok := s.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return res, nil
}

func (s *stubRepo) GetByGuestID(_ context.Context, guestID int64, status *domain.ReservationStatus) ([]*domain.Reservation, error) {
	out := []*domain.Reservation{}
	for _, res := range s.byID {
		if res.GuestID != guestID {
			continue
		}
		if status != nil && res.Status != *status {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (s *stubRepo) GetByBarWithFilter(_ context.Context, filter domain.BarReservationsFilter) ([]*domain.Reservation, error) {
	out := []*domain.Reservation{}
	for _, res := range s.byID {
		if res.BarID == filter.BarID {
			out = append(out, res)
		}
	}
	return out, nil
}

func (s *stubRepo) UpdateStatus(_ context.Context, id int64, status domain.ReservationStatus) error {
	if _, ok := s.byID[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	s.updatedStatus = status
	return nil
}

func (s *stubRepo) Cancel(_ context.Context, id int64, reason string) error {
	if _, ok := s.byID[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	s.cancelledID = id
	s.cancelledReason = reason
	return nil
}

type recordingPublisher struct {
	events []queue.ReservationCancelledEvent
}

func (r *recordingPublisher) PublishReservationCancelled(_ context.Context, event queue.ReservationCancelledEvent) error {
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- Фикстуры ---

const (
	guestID = int64(7)
	otherID = int64(8)
)

func confirmedReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:              500,
		BarID:           1,
		TableID:         ptr.Ptr(int64(2)),
		GuestID:         guestID,
		GuestName:       "Анна",
		PartySize:       4,
		ReservationDate: time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		StartTime:       "19:00",
		DurationMinutes: 120,
		Status:          domain.StatusConfirmed,
	}
}

type testEnv struct {
	svc         *Service
	repo        *stubRepo
	publisher   *recordingPublisher
	invalidator *recordingInvalidator
}

func newTestEnv(reservations ...*domain.Reservation) *testEnv {
	env := &testEnv{
		repo:        &stubRepo{byID: map[int64]*domain.Reservation{}},
		publisher:   &recordingPublisher{},
		invalidator: &recordingInvalidator{},
	}
	for _, res := range reservations {
		env.repo.byID[res.ID] = res
	}
	env.svc = NewService(env.repo, env.publisher, env.invalidator, nopLogger{})
	return env
}

// --- Тесты ---

func TestGetByID_OwnerAndStaffAccess(t *testing.T) {
	env := newTestEnv(confirmedReservation())

	// Владелец видит своё бронирование
	resp, err := env.svc.GetByID(context.Background(), 500, guestID, false)
	require.NoError(t, err)
	assert.Equal(t, int64(500), resp.ID)

	// Чужой гость - нет
	_, err = env.svc.GetByID(context.Background(), 500, otherID, false)
	require.ErrorIs(t, err, ErrAccessDenied)

	// Персонал видит любое
	resp, err = env.svc.GetByID(context.Background(), 500, otherID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(500), resp.ID)
}

func TestGetByID_NotFound(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetByID(context.Background(), 999, guestID, false)
	require.ErrorIs(t, err, ErrReservationNotFound)
}

func TestCancel_Owner(t *testing.T) {
	env := newTestEnv(confirmedReservation())

	err := env.svc.Cancel(context.Background(), 500, &models.CancelReservationRequest{
		UserID:             guestID,
		CancellationReason: "планы изменились",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(500), env.repo.cancelledID)
	assert.Equal(t, "планы изменились", env.repo.cancelledReason)

	// Слот освободился: кеш сброшен, событие опубликовано
	assert.Equal(t, 1, env.invalidator.calls)
	require.Len(t, env.publisher.events, 1)
	event := env.publisher.events[0]
	assert.Equal(t, int64(500), event.ReservationID)
	assert.Equal(t, "планы изменились", event.Reason)
	assert.NotEmpty(t, event.CancelledAt)
}

func TestCancel_AccessDenied(t *testing.T) {
	env := newTestEnv(confirmedReservation())

	err := env.svc.Cancel(context.Background(), 500, &models.CancelReservationRequest{UserID: otherID})
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Zero(t, env.repo.cancelledID)
	assert.Empty(t, env.publisher.events)
}

func TestCancel_Staff(t *testing.T) {
	env := newTestEnv(confirmedReservation())

	err := env.svc.Cancel(context.Background(), 500, &models.CancelReservationRequest{
		UserID: otherID,
		Staff:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(500), env.repo.cancelledID)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	res := confirmedReservation()
	res.Status = domain.StatusCancelled
	env := newTestEnv(res)

	err := env.svc.Cancel(context.Background(), 500, &models.CancelReservationRequest{UserID: guestID})
	require.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_CompletedNotCancellable(t *testing.T) {
	res := confirmedReservation()
	res.Status = domain.StatusCompleted
	env := newTestEnv(res)

	err := env.svc.Cancel(context.Background(), 500, &models.CancelReservationRequest{UserID: guestID, Staff: true})
	require.ErrorIs(t, err, ErrCannotCancel)
}

func TestUpdateStatus_StaffOnly(t *testing.T) {
	env := newTestEnv(confirmedReservation())

	err := env.svc.UpdateStatus(context.Background(), 500, &models.UpdateStatusRequest{
		UserID: guestID,
		Status: "completed",
	})
	require.ErrorIs(t, err, ErrAccessDenied)

	err = env.svc.UpdateStatus(context.Background(), 500, &models.UpdateStatusRequest{
		UserID: otherID,
		Staff:  true,
		Status: "completed",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, env.repo.updatedStatus)
}

func TestUpdateStatus_CancellationGoesThroughCancel(t *testing.T) {
	env := newTestEnv(confirmedReservation())

	err := env.svc.UpdateStatus(context.Background(), 500, &models.UpdateStatusRequest{
		UserID: otherID,
		Staff:  true,
		Status: "cancelled",
	})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	env := newTestEnv(confirmedReservation())

	err := env.svc.UpdateStatus(context.Background(), 500, &models.UpdateStatusRequest{
		UserID: otherID,
		Staff:  true,
		Status: "eaten",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetBarReservations_StaffOnly(t *testing.T) {
	env := newTestEnv(confirmedReservation())

	_, err := env.svc.GetBarReservations(context.Background(), &models.GetBarReservationsRequest{
		UserID: guestID,
		BarID:  1,
	})
	require.ErrorIs(t, err, ErrAccessDenied)

	resp, err := env.svc.GetBarReservations(context.Background(), &models.GetBarReservationsRequest{
		UserID: otherID,
		Staff:  true,
		BarID:  1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
}

func TestGetGuestReservations_StatusFilter(t *testing.T) {
	cancelled := confirmedReservation()
	cancelled.ID = 501
	cancelled.Status = domain.StatusCancelled
	env := newTestEnv(confirmedReservation(), cancelled)

	resp, err := env.svc.GetGuestReservations(context.Background(), &models.GetGuestReservationsRequest{
		GuestID: guestID,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Reservations, 2)

	resp, err = env.svc.GetGuestReservations(context.Background(), &models.GetGuestReservationsRequest{
		GuestID: guestID,
		Status:  ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, "confirmed", resp.Reservations[0].Status)

	_, err = env.svc.GetGuestReservations(context.Background(), &models.GetGuestReservationsRequest{
		GuestID: guestID,
		Status:  ptr.Ptr("eaten"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}
