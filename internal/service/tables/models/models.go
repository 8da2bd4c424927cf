package models

import (
	"time"

	"github.com/matchtag/MT-ReservationService/internal/domain"
)

// Request модели

// CreateTableRequest запрос на создание стола
type CreateTableRequest struct {
	UserID   int64 `json:"-"`
	Staff    bool  `json:"-"`
	BarID    int64 `json:"-"`
	Number   int   `json:"number"`
	Capacity int   `json:"capacity"`
}

// ToDomainTable конвертирует request в domain модель
func (r *CreateTableRequest) ToDomainTable() *domain.Table {
	return &domain.Table{
		BarID:    r.BarID,
		Number:   r.Number,
		Capacity: r.Capacity,
		Active:   true,
	}
}

// UpdateTableRequest запрос на частичное обновление стола
type UpdateTableRequest struct {
	UserID   int64 `json:"-"`
	Staff    bool  `json:"-"`
	Number   *int  `json:"number,omitempty"`
	Capacity *int  `json:"capacity,omitempty"`
	Active   *bool `json:"active,omitempty"`
}

// ApplyToTable применяет частичное обновление к domain модели
func (r *UpdateTableRequest) ApplyToTable(t *domain.Table) {
	if r.Number != nil {
		t.Number = *r.Number
	}
	if r.Capacity != nil {
		t.Capacity = *r.Capacity
	}
	if r.Active != nil {
		t.Active = *r.Active
	}
}

// ListTablesRequest запрос на получение столов бара
type ListTablesRequest struct {
	BarID      int64 `json:"-"`
	ActiveOnly bool  `json:"-"`
}

// Response модели

// TableResponse ответ с данными стола
type TableResponse struct {
	ID       int64 `json:"id"`
	BarID    int64 `json:"barId"`
	Number   int   `json:"number"`
	Capacity int   `json:"capacity"`
	Active   bool  `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableListResponse ответ со списком столов
type TableListResponse struct {
	Tables []TableResponse `json:"tables"`
}

// Методы конвертации

// FromDomainTable конвертирует domain модель в DTO
func FromDomainTable(t *domain.Table) *TableResponse {
	if t == nil {
		return nil
	}

	return &TableResponse{
		ID:        t.ID,
		BarID:     t.BarID,
		Number:    t.Number,
		Capacity:  t.Capacity,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// FromDomainTableList конвертирует список domain моделей в DTO
func FromDomainTableList(tables []*domain.Table) *TableListResponse {
	if tables == nil {
		return &TableListResponse{
			Tables: []TableResponse{},
		}
	}

	resp := &TableListResponse{
		Tables: make([]TableResponse, len(tables)),
	}

	for i, table := range tables {
		if tableResp := FromDomainTable(table); tableResp != nil {
			resp.Tables[i] = *tableResp
		}
	}

	return resp
}
