package table

import "errors"

var (
	// ErrTableNotFound возвращается, когда стол не найден
	ErrTableNotFound = errors.New("table.repository: table not found")

	// ErrDuplicateNumber возвращается при попытке создать стол с занятым номером в баре
	ErrDuplicateNumber = errors.New("table.repository: table number already exists in this bar")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("table.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("table.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("table.repository: failed to scan row")
)
