package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpin "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/identity"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoPath records the path an upstream stub received.
func upstreamStub(t *testing.T, lastPath *string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*lastPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":{"echo":"` + r.URL.Path + `"}}`))
	}))
}

func newGateway(t *testing.T, usersURL, ordersURL string) (*echo.Echo, *identity.JWTProvider) {
	t.Helper()

	provider, err := identity.NewJWTProvider("test-secret", 30*time.Minute)
	require.NoError(t, err)

	gateway, err := httpin.NewGatewayServer(usersURL, ordersURL, provider)
	require.NoError(t, err)

	e := echo.New()
	gateway.RegisterRoutes(e)
	return e, provider
}

func gatewayToken(t *testing.T, provider *identity.JWTProvider) string {
	t.Helper()

	token, err := provider.Issue(ports.Claims{
		UserID: kernel.NewUUID(),
		Email:  "caller@example.com",
		Role:   user.Client,
	})
	require.NoError(t, err)
	return token
}

func TestGatewayServer_RoutesAndRewrites(t *testing.T) {
	var usersPath, ordersPath string
	users := upstreamStub(t, &usersPath)
	defer users.Close()
	orders := upstreamStub(t, &ordersPath)
	defer orders.Close()

	e, provider := newGateway(t, users.URL, orders.URL)
	token := gatewayToken(t, provider)

	t.Run("register is public and rewritten", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/users/register", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/v1/register", usersPath)
	})

	t.Run("login is public and rewritten", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/users/login", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/v1/login", usersPath)
	})

	t.Run("profile requires token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/users/profile", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("profile forwarded when authenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/users/profile", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/v1/profile", usersPath)
	})

	t.Run("orders forwarded unchanged", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/orders", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/v1/orders", ordersPath)
	})

	t.Run("orders require token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/v1/orders/abc", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestGatewayServer_UpstreamDown(t *testing.T) {
	var ordersPath string
	orders := upstreamStub(t, &ordersPath)
	defer orders.Close()

	// Users upstream points at a closed port.
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	e, provider := newGateway(t, deadURL, orders.URL)
	token := gatewayToken(t, provider)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/profile", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var envelope apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "SERVICE_UNAVAILABLE", envelope.Error.Code)
}

func TestGatewayServer_Health(t *testing.T) {
	var usersPath string
	users := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		usersPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer users.Close()

	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	e, _ := newGateway(t, users.URL, deadURL)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/health", usersPath)

	var body struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "available", body.Services["users"])
	assert.Equal(t, "unavailable", body.Services["orders"])
}
