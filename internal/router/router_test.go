package router

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usamaejaz9741/pizza-shop/internal/auth"
	"github.com/usamaejaz9741/pizza-shop/internal/catalog"
	"github.com/usamaejaz9741/pizza-shop/internal/order"
	"github.com/usamaejaz9741/pizza-shop/internal/whatsapp"
)

func loginBody(password string) io.Reader {
	return strings.NewReader(fmt.Sprintf(`{"password":%q}`, password))
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("SESSION_SECRET", "test-secret-key-12345")

	authService, err := auth.NewService("hunter2")
	require.NoError(t, err)

	catalogService := catalog.NewService(catalog.NewInMemoryRepository())
	orderService := order.NewService(
		catalogService,
		order.NewInMemoryCartStore(),
		whatsapp.NewClient("http://127.0.0.1:0", "test"),
		"0300",
	)

	return NewRouter(
		auth.NewHandler(authService),
		catalog.NewHandler(catalogService, nil),
		order.NewHandler(orderService),
	)
}

func TestHealthCheck(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStoreDataIsPublic(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/api/store", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Pizza Shop")
}

func TestAdminDataRequiresSession(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/api/data", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginIssuesWorkingSession(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/api/login", loginBody("hunter2"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	require.NotEmpty(t, session.Value)

	req = httptest.NewRequest(http.MethodGet, "/admin/api/data", nil)
	req.AddCookie(session)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r := newTestEngine(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/api/login", loginBody("wrong"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
