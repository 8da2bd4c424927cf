package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	getAvailability "github.com/matchtag/MT-ReservationService/internal/usecase/get_availability"
)

type stubUseCase struct {
	resp *getAvailability.Response
	err  error

	gotReq *getAvailability.Request
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	s.gotReq = req
	return s.resp, s.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(uc GetAvailabilityUseCase) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bars/{barId}/availability", NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodGet)
	return r
}

func TestHandle_OK(t *testing.T) {
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &getAvailability.Response{
		BarID:           1,
		Date:            date,
		PartySize:       4,
		DurationMinutes: 120,
		Slots: []domain.TimeSlot{{
			Time:                 "19:00",
			Datetime:             time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC),
			Available:            true,
			AvailableTablesCount: 2,
			SuggestedTable:       &domain.Table{ID: 2, Number: 2, Capacity: 4},
		}},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bars/1/availability?date=2026-09-12&partySize=4&duration=120", nil)
	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.BarID)
	assert.Equal(t, "2026-09-12", body.Date)
	require.Len(t, body.Slots, 1)
	assert.Equal(t, "19:00", body.Slots[0].Time)
	require.NotNil(t, body.Slots[0].SuggestedTable)
	assert.Equal(t, int64(2), body.Slots[0].SuggestedTable.ID)

	// Запрос к use case собран из path и query параметров
	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(1), uc.gotReq.BarID)
	assert.Equal(t, 4, uc.gotReq.PartySize)
	assert.Equal(t, 120, uc.gotReq.DurationMinutes)
}

func TestHandle_BadRequest(t *testing.T) {
	uc := &stubUseCase{resp: &getAvailability.Response{}}
	router := newRouter(uc)

	urls := []string{
		"/api/v1/bars/abc/availability?date=2026-09-12&partySize=4",
		"/api/v1/bars/1/availability?partySize=4",
		"/api/v1/bars/1/availability?date=12.09.2026&partySize=4",
		"/api/v1/bars/1/availability?date=2026-09-12",
		"/api/v1/bars/1/availability?date=2026-09-12&partySize=zero",
		"/api/v1/bars/1/availability?date=2026-09-12&partySize=-1",
		"/api/v1/bars/1/availability?date=2026-09-12&partySize=4&duration=-30",
	}
	for _, url := range urls {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "url %s", url)
	}
}

func TestHandle_InvalidSettings(t *testing.T) {
	uc := &stubUseCase{err: getAvailability.ErrInvalidSettings}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bars/1/availability?date=2026-09-12&partySize=4", nil)
	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	uc := &stubUseCase{err: getAvailability.ErrInternal}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bars/1/availability?date=2026-09-12&partySize=4", nil)
	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
