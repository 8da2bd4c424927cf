package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/matchtag/MT-ReservationService/internal/api/handlers"
)

const (
	// HeaderUserID заголовок с ID пользователя, проставляется API-шлюзом
	HeaderUserID = "X-User-ID"

	// HeaderUserRole заголовок с ролью пользователя
	HeaderUserRole = "X-User-Role"

	// RoleStaff значение роли персонала бара
	RoleStaff = "staff"
)

const (
	msgMissingUserID = "заголовок X-User-ID обязателен"
	msgInvalidUserID = "некорректный ID пользователя"
)

type userIDKey struct{}
type staffKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth извлекает идентификацию пользователя из заголовков запроса
// Запросы без X-User-ID отклоняются с 401
func Auth(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr := r.Header.Get(HeaderUserID)
			if userIDStr == "" {
				logger.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, HeaderUserID)
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			userID, err := strconv.ParseInt(userIDStr, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("%s %s - Invalid %s header: %v", r.Method, r.URL.Path, HeaderUserID, err)
				handlers.RespondUnauthorized(w, msgInvalidUserID)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, userID)
			if r.Header.Get(HeaderUserRole) == RoleStaff {
				ctx = context.WithValue(ctx, staffKey{}, true)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserID возвращает ID пользователя, проставленный Auth middleware
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey{}).(int64)
	return userID, ok
}

// IsStaff возвращает true, если запрос пришёл от персонала бара
func IsStaff(ctx context.Context) bool {
	staff, ok := ctx.Value(staffKey{}).(bool)
	return ok && staff
}
