package tables

import (
	"context"
	"errors"
	"fmt"

	"github.com/matchtag/MT-ReservationService/internal/domain"
	tableRepo "github.com/matchtag/MT-ReservationService/internal/infra/storage/table"
	"github.com/matchtag/MT-ReservationService/internal/service/tables/models"
)

// Service сервис для работы со столами бара
type Service struct {
	tableRepo TableRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса столов
func NewService(tableRepo TableRepository, logger Logger) *Service {
	return &Service{
		tableRepo: tableRepo,
		logger:    logger,
	}
}

// List получает столы бара
// Публичный метод - гость видит план зала при выборе стола
func (s *Service) List(ctx context.Context, req *models.ListTablesRequest) (*models.TableListResponse, error) {
	s.logger.Info("List: fetching tables for bar=%d, activeOnly=%v", req.BarID, req.ActiveOnly)

	if req.BarID <= 0 {
		return nil, fmt.Errorf("%w: barID must be positive", ErrInvalidInput)
	}

	tables, err := s.tableRepo.ListByBar(ctx, domain.TablesFilter{
		BarID:      req.BarID,
		ActiveOnly: req.ActiveOnly,
	})
	if err != nil {
		s.logger.Error("List: repository error for bar=%d: %v", req.BarID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d tables for bar=%d", len(tables), req.BarID)
	return models.FromDomainTableList(tables), nil
}

// Create создает новый стол
// Доступно только персоналу бара
func (s *Service) Create(ctx context.Context, req *models.CreateTableRequest) (*models.TableResponse, error) {
	s.logger.Info("Create: creating table number=%d capacity=%d for bar=%d by user=%d",
		req.Number, req.Capacity, req.BarID, req.UserID)

	// Проверяем права доступа
	if !req.Staff {
		s.logger.Warn("Create: access denied for user=%d to bar=%d", req.UserID, req.BarID)
		return nil, ErrAccessDenied
	}

	// Валидируем входные данные
	if err := validateTableData(req.BarID, req.Number, req.Capacity); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.tableRepo.Create(ctx, req.ToDomainTable())
	if err != nil {
		if errors.Is(err, tableRepo.ErrDuplicateNumber) {
			s.logger.Warn("Create: table number=%d already exists in bar=%d", req.Number, req.BarID)
			return nil, ErrDuplicateNumber
		}
		s.logger.Error("Create: repository error for bar=%d: %v", req.BarID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created table id=%d", created.ID)
	return models.FromDomainTable(created), nil
}

// Update обновляет существующий стол
// Поддерживает частичное обновление - обновляются только указанные поля
// Доступно только персоналу бара
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateTableRequest) (*models.TableResponse, error) {
	s.logger.Info("Update: updating table id=%d by user=%d", id, req.UserID)

	// Проверяем права доступа
	if !req.Staff {
		s.logger.Warn("Update: access denied for user=%d to table id=%d", req.UserID, id)
		return nil, ErrAccessDenied
	}

	// Получаем существующий стол
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			s.logger.Warn("Update: table id=%d not found", id)
			return nil, ErrTableNotFound
		}
		s.logger.Error("Update: repository error for table id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// Применяем обновления и валидируем результат
	req.ApplyToTable(table)
	if err := validateTableData(table.BarID, table.Number, table.Capacity); err != nil {
		s.logger.Warn("Update: validation failed for table id=%d: %v", id, err)
		return nil, err
	}

	updated, err := s.tableRepo.Update(ctx, id, table)
	if err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			s.logger.Warn("Update: table id=%d not found during update", id)
			return nil, ErrTableNotFound
		}
		if errors.Is(err, tableRepo.ErrDuplicateNumber) {
			s.logger.Warn("Update: table number=%d already exists in bar=%d", table.Number, table.BarID)
			return nil, ErrDuplicateNumber
		}
		s.logger.Error("Update: repository error for table id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated table id=%d", id)
	return models.FromDomainTable(updated), nil
}

// Deactivate выводит стол из оборота
// Стол исчезает из расчёта доступности, но история бронирований сохраняется
// Доступно только персоналу бара
func (s *Service) Deactivate(ctx context.Context, id int64, userID int64, staff bool) error {
	s.logger.Info("Deactivate: deactivating table id=%d by user=%d", id, userID)

	// Проверяем права доступа
	if !staff {
		s.logger.Warn("Deactivate: access denied for user=%d to table id=%d", userID, id)
		return ErrAccessDenied
	}

	if err := s.tableRepo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, tableRepo.ErrTableNotFound) {
			s.logger.Warn("Deactivate: table id=%d not found", id)
			return ErrTableNotFound
		}
		s.logger.Error("Deactivate: repository error for table id=%d: %v", id, err)
		return fmt.Errorf("%w: Deactivate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: successfully deactivated table id=%d", id)
	return nil
}

// validateTableData проверяет бизнес-ограничения стола
func validateTableData(barID int64, number, capacity int) error {
	if barID <= 0 {
		return fmt.Errorf("%w: barID must be positive", ErrInvalidInput)
	}
	if number <= 0 {
		return fmt.Errorf("%w: table number must be positive", ErrInvalidInput)
	}
	if capacity < domain.MinTableCapacity || capacity > domain.MaxTableCapacity {
		return fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinTableCapacity, domain.MaxTableCapacity)
	}
	return nil
}
