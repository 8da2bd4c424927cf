package tables

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	tableRepo "github.com/matchtag/MT-ReservationService/internal/infra/storage/table"
	"github.com/matchtag/MT-ReservationService/internal/service/tables/models"
	"github.com/matchtag/MT-ReservationService/pkg/ptr"
)

type stubRepo struct {
	byID        map[int64]*domain.Table
	createErr   error
	updateErr   error
	deactivated int64
}

func (s *stubRepo) Create(_ context.Context, t *domain.Table) (*domain.Table, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	created := *t
	created.ID = 10
	return &created, nil
}

func (s *stubRepo) GetByID(_ context.Context, id int64) (*domain.Table, error) {
	t, ok := s.byID[id]
	if !ok {
		return nil, tableRepo.ErrTableNotFound
	}
	copied := *t
	return &copied, nil
}

func (s *stubRepo) ListByBar(_ context.Context, filter domain.TablesFilter) ([]*domain.Table, error) {
	out := []*domain.Table{}
	for _, t := range s.byID {
		if t.BarID != filter.BarID {
			continue
		}
		if filter.ActiveOnly && !t.Active {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *stubRepo) Update(_ context.Context, id int64, t *domain.Table) (*domain.Table, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	if _, ok := s.byID[id]; !ok {
		return nil, tableRepo.ErrTableNotFound
	}
	return t, nil
}

func (s *stubRepo) Deactivate(_ context.Context, id int64) error {
	if _, ok := s.byID[id]; !ok {
		return tableRepo.ErrTableNotFound
	}
	s.deactivated = id
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRepoWith(tables ...*domain.Table) *stubRepo {
	repo := &stubRepo{byID: map[int64]*domain.Table{}}
	for _, t := range tables {
		repo.byID[t.ID] = t
	}
	return repo
}

func TestList(t *testing.T) {
	repo := newRepoWith(
		&domain.Table{ID: 1, BarID: 1, Number: 1, Capacity: 2, Active: true},
		&domain.Table{ID: 2, BarID: 1, Number: 2, Capacity: 4, Active: false},
	)
	svc := NewService(repo, nopLogger{})

	resp, err := svc.List(context.Background(), &models.ListTablesRequest{BarID: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Tables, 2)

	resp, err = svc.List(context.Background(), &models.ListTablesRequest{BarID: 1, ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, resp.Tables, 1)

	_, err = svc.List(context.Background(), &models.ListTablesRequest{BarID: 0})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate(t *testing.T) {
	svc := NewService(newRepoWith(), nopLogger{})

	resp, err := svc.Create(context.Background(), &models.CreateTableRequest{
		UserID: 1, Staff: true, BarID: 1, Number: 5, Capacity: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), resp.ID)
	assert.True(t, resp.Active)
}

func TestCreate_StaffOnly(t *testing.T) {
	svc := NewService(newRepoWith(), nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateTableRequest{
		UserID: 1, BarID: 1, Number: 5, Capacity: 4,
	})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newRepoWith(), nopLogger{})

	cases := []models.CreateTableRequest{
		{Staff: true, BarID: 0, Number: 5, Capacity: 4},
		{Staff: true, BarID: 1, Number: 0, Capacity: 4},
		{Staff: true, BarID: 1, Number: 5, Capacity: 0},
		{Staff: true, BarID: 1, Number: 5, Capacity: domain.MaxTableCapacity + 1},
	}
	for _, req := range cases {
		_, err := svc.Create(context.Background(), &req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestCreate_DuplicateNumber(t *testing.T) {
	repo := newRepoWith()
	repo.createErr = tableRepo.ErrDuplicateNumber
	svc := NewService(repo, nopLogger{})

	_, err := svc.Create(context.Background(), &models.CreateTableRequest{
		UserID: 1, Staff: true, BarID: 1, Number: 5, Capacity: 4,
	})
	require.ErrorIs(t, err, ErrDuplicateNumber)
}

func TestUpdate_Partial(t *testing.T) {
	repo := newRepoWith(&domain.Table{ID: 1, BarID: 1, Number: 1, Capacity: 2, Active: true})
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Update(context.Background(), 1, &models.UpdateTableRequest{
		UserID:   1,
		Staff:    true,
		Capacity: ptr.Ptr(6),
	})
	require.NoError(t, err)
	assert.Equal(t, 6, resp.Capacity)
	assert.Equal(t, 1, resp.Number)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewService(newRepoWith(), nopLogger{})

	_, err := svc.Update(context.Background(), 99, &models.UpdateTableRequest{
		UserID: 1,
		Staff:  true,
		Number: ptr.Ptr(2),
	})
	require.ErrorIs(t, err, ErrTableNotFound)
}

func TestUpdate_ValidatesResult(t *testing.T) {
	repo := newRepoWith(&domain.Table{ID: 1, BarID: 1, Number: 1, Capacity: 2, Active: true})
	svc := NewService(repo, nopLogger{})

	_, err := svc.Update(context.Background(), 1, &models.UpdateTableRequest{
		UserID:   1,
		Staff:    true,
		Capacity: ptr.Ptr(0),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeactivate(t *testing.T) {
	repo := newRepoWith(&domain.Table{ID: 1, BarID: 1, Number: 1, Capacity: 2, Active: true})
	svc := NewService(repo, nopLogger{})

	require.ErrorIs(t, svc.Deactivate(context.Background(), 1, 2, false), ErrAccessDenied)
	require.NoError(t, svc.Deactivate(context.Background(), 1, 2, true))
	assert.Equal(t, int64(1), repo.deactivated)
	require.ErrorIs(t, svc.Deactivate(context.Background(), 99, 2, true), ErrTableNotFound)
}
