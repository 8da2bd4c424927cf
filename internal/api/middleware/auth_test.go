package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Warn(string, ...interface{}) {}

func authRouter(capture *struct {
	userID int64
	ok     bool
	staff  bool
}) *mux.Router {
	r := mux.NewRouter()
	r.Use(Auth(nopLogger{}))
	r.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		capture.userID, capture.ok = GetUserID(r.Context())
		capture.staff = IsStaff(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func TestAuth_MissingHeader(t *testing.T) {
	var capture struct {
		userID int64
		ok     bool
		staff  bool
	}
	rec := httptest.NewRecorder()
	authRouter(&capture).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, capture.ok)
}

func TestAuth_InvalidHeader(t *testing.T) {
	var capture struct {
		userID int64
		ok     bool
		staff  bool
	}
	router := authRouter(&capture)

	for _, v := range []string{"abc", "0", "-5"} {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(HeaderUserID, v)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", v)
	}
}

func TestAuth_Guest(t *testing.T) {
	var capture struct {
		userID int64
		ok     bool
		staff  bool
	}
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderUserID, "7")
	rec := httptest.NewRecorder()
	authRouter(&capture).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, capture.ok)
	assert.Equal(t, int64(7), capture.userID)
	assert.False(t, capture.staff)
}

func TestAuth_Staff(t *testing.T) {
	var capture struct {
		userID int64
		ok     bool
		staff  bool
	}
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderUserID, "7")
	req.Header.Set(HeaderUserRole, RoleStaff)
	rec := httptest.NewRecorder()
	authRouter(&capture).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, capture.staff)
}
