package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	settingsRepo "github.com/matchtag/MT-ReservationService/internal/infra/storage/settings"
	"github.com/matchtag/MT-ReservationService/internal/service/settings/models"
)

type stubRepo struct {
	settings *domain.ReservationSettings
	getErr   error
	upserted *domain.ReservationSettings
}

func (s *stubRepo) GetByBar(_ context.Context, _ int64) (*domain.ReservationSettings, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.settings, nil
}

func (s *stubRepo) Upsert(_ context.Context, settings *domain.ReservationSettings) (*domain.ReservationSettings, error) {
	s.upserted = settings
	return settings, nil
}

func (s *stubRepo) Delete(_ context.Context, _ int64) error {
	if s.settings == nil {
		return settingsRepo.ErrSettingsNotFound
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validUpdateRequest() *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		UserID: 1,
		Staff:  true,
		BarID:  1,
		OpeningHours: models.OpeningHoursDTO{
			Friday:   &models.DayHoursDTO{Open: "12:00", Close: "23:00"},
			Saturday: &models.DayHoursDTO{Open: "12:00", Close: "23:00"},
		},
		SlotDurationMinutes:      30,
		MinAdvanceBookingMinutes: 60,
		MaxAdvanceBookingDays:    30,
		MaxPartySize:             12,
	}
}

func TestGetByBar_DefaultsWhenMissing(t *testing.T) {
	svc := NewService(&stubRepo{getErr: settingsRepo.ErrSettingsNotFound}, nopLogger{})

	resp, err := svc.GetByBar(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, resp.Default)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, resp.SlotDurationMinutes)
	assert.Equal(t, domain.DefaultMaxPartySize, resp.MaxPartySize)
	assert.Nil(t, resp.CreatedAt)
}

func TestGetByBar_Stored(t *testing.T) {
	stored := validUpdateRequest().ToDomainSettings()
	svc := NewService(&stubRepo{settings: stored}, nopLogger{})

	resp, err := svc.GetByBar(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, resp.Default)
	assert.Equal(t, 30, resp.SlotDurationMinutes)
	require.NotNil(t, resp.OpeningHours.Saturday)
	assert.Equal(t, "12:00", resp.OpeningHours.Saturday.Open)
}

func TestUpsert_StaffOnly(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, nopLogger{})

	req := validUpdateRequest()
	req.Staff = false
	_, err := svc.Upsert(context.Background(), req)
	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.upserted)

	req = validUpdateRequest()
	resp, err := svc.Upsert(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.BarID)
	require.NotNil(t, repo.upserted)
}

func TestUpsert_Validation(t *testing.T) {
	svc := NewService(&stubRepo{}, nopLogger{})

	mutations := []func(*models.UpdateSettingsRequest){
		func(r *models.UpdateSettingsRequest) { r.BarID = 0 },
		func(r *models.UpdateSettingsRequest) { r.SlotDurationMinutes = 4 },
		func(r *models.UpdateSettingsRequest) { r.SlotDurationMinutes = 481 },
		func(r *models.UpdateSettingsRequest) { r.MinAdvanceBookingMinutes = -1 },
		func(r *models.UpdateSettingsRequest) { r.MaxAdvanceBookingDays = -1 },
		func(r *models.UpdateSettingsRequest) { r.MaxAdvanceBookingDays = 366 },
		func(r *models.UpdateSettingsRequest) { r.MaxPartySize = 0 },
		func(r *models.UpdateSettingsRequest) { r.MaxPartySize = 101 },
		func(r *models.UpdateSettingsRequest) {
			r.OpeningHours.Friday = &models.DayHoursDTO{Open: "23:00", Close: "12:00"}
		},
		func(r *models.UpdateSettingsRequest) {
			r.OpeningHours.Friday = &models.DayHoursDTO{Open: "12:00", Close: "12:00"}
		},
		func(r *models.UpdateSettingsRequest) {
			r.OpeningHours.Friday = &models.DayHoursDTO{Open: "noon", Close: "23:00"}
		},
	}
	for _, mutate := range mutations {
		req := validUpdateRequest()
		mutate(req)
		_, err := svc.Upsert(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestDelete(t *testing.T) {
	stored := validUpdateRequest().ToDomainSettings()
	svc := NewService(&stubRepo{settings: stored}, nopLogger{})

	require.ErrorIs(t, svc.Delete(context.Background(), 1, 2, false), ErrAccessDenied)
	require.NoError(t, svc.Delete(context.Background(), 1, 2, true))

	svc = NewService(&stubRepo{}, nopLogger{})
	require.ErrorIs(t, svc.Delete(context.Background(), 1, 2, true), ErrSettingsNotFound)
}
