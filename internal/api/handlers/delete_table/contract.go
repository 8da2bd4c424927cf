package delete_table

import "context"

type TableService interface {
	Deactivate(ctx context.Context, id int64, userID int64, staff bool) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
