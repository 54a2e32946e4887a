package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/auth"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/usecase"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/verification"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain/entity"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/backend"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/memory"
	apphttp "github.com/roboticsteamraoatech-creator/datacapture-api/internal/interfaces/http"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/config"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
)

type dirStub struct{}

func (dirStub) Countries(context.Context) ([]string, error) { return []string{"Nigeria"}, nil }
func (dirStub) States(context.Context, string) ([]string, error) {
	return []string{"Lagos", "Oyo"}, nil
}
func (dirStub) LGAs(context.Context, string, string) ([]string, error) { return nil, nil }
func (dirStub) Cities(context.Context, string, string, string) ([]string, error) {
	return nil, nil
}
func (dirStub) CityRegions(context.Context, string, string, string, string) ([]ports.Region, error) {
	return nil, nil
}

type proxyCall struct {
	method, path, query, auth string
}

// newRouterApp levanta el router con repos en memoria y un backend falso para el reenvío.
func newRouterApp(t *testing.T) (*fiber.App, *proxyCall) {
	t.Helper()
	seen := &proxyCall{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = proxyCall{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, auth: r.Header.Get("Authorization")}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte(`{"forwarded":true}`))
	}))
	t.Cleanup(upstream.Close)

	log := logger.Nop()
	staff := memory.NewStaffRepository(
		entity.StaffUser{ID: "agent1", Email: "agent@example.com", Role: entity.RoleStaff, Permissions: []entity.Permission{entity.PermDataVerification}, Status: "active"},
		entity.StaffUser{ID: "agent2", Email: "plain@example.com", Role: entity.RoleStaff, Status: "active"},
		entity.StaffUser{ID: "agent3", Email: "other@example.com", Role: entity.RoleStaff, Permissions: []entity.Permission{entity.PermDataVerification}, Status: "active"},
	)
	sessions := auth.NewAuthSession(memory.NewSessionStore(), time.Hour)
	client := backend.New(config.BackendConfig{BaseURL: upstream.URL, Timeout: 5 * time.Second}, log)

	app := apphttp.NewApp(apphttp.ServerOptions{Name: "test", Log: log})
	apphttp.Router(app, apphttp.RouterDeps{
		StaffAuth:        auth.NewStaffAuthUseCase(staff, sessions, log),
		Permissions:      usecase.NewPermissionService(staff),
		DataVerification: verification.NewDataVerificationService(memory.NewVerificationRepository(), staff, memory.NewProfileRepository(), nil, log),
		Packages:         usecase.NewPackageUseCase(memory.NewPackageRepository()),
		Locations:        dirStub{},
		Proxy:            backend.NewProxy(client),
		JWTSecret:        testJWTSecret,
	})
	return app, seen
}

func send(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func staffLogin(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	resp, body := send(t, app, http.MethodPost, "/api/staff/auth/login", "", map[string]string{"email": email, "password": "x"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.True(t, out.Success)
	return "Bearer " + out.Token
}

func TestRouter_Health(t *testing.T) {
	app, _ := newRouterApp(t)
	resp, body := send(t, app, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)
}

func TestRouter_StaffCreaVerificacion(t *testing.T) {
	app, _ := newRouterApp(t)
	token := staffLogin(t, app, "agent@example.com")

	resp, body := send(t, app, http.MethodPost, "/api/staff/verifications", token, map[string]string{"organizationId": "org-1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var out struct {
		Success bool `json:"success"`
		Data    struct {
			ID             string `json:"id"`
			OrganizationID string `json:"organizationId"`
			AgentID        string `json:"agentId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.Success)
	assert.NotEmpty(t, out.Data.ID)
	assert.Equal(t, "org-1", out.Data.OrganizationID)
	assert.Equal(t, "agent1", out.Data.AgentID)

	resp, _ = send(t, app, http.MethodGet, "/api/staff/verifications/"+out.Data.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	other := staffLogin(t, app, "other@example.com")
	resp, _ = send(t, app, http.MethodGet, "/api/staff/verifications/"+out.Data.ID, other, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "otro agente no lee cuestionarios ajenos")

	resp, body = send(t, app, http.MethodGet, "/api/super-admin/verifications/"+out.Data.ID, tokenForRole(t, entity.RoleSuperAdmin), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))
}

func TestRouter_StaffSinPermiso(t *testing.T) {
	app, _ := newRouterApp(t)
	token := staffLogin(t, app, "plain@example.com")

	resp, body := send(t, app, http.MethodGet, "/api/staff/verifications", token, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "PERMISSION_DENIED")
}

func TestRouter_StaffTokenInvalido(t *testing.T) {
	app, _ := newRouterApp(t)
	resp, _ := send(t, app, http.MethodGet, "/api/staff/verifications", "Bearer not-a-mock-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_LocationsValidaQuery(t *testing.T) {
	app, _ := newRouterApp(t)

	resp, body := send(t, app, http.MethodGet, "/api/locations/states", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "missing query parameters: country")

	resp, body = send(t, app, http.MethodGet, "/api/locations/states?country=Nigeria", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Lagos")
}

func TestRouter_SuperAdminExigeRol(t *testing.T) {
	app, _ := newRouterApp(t)

	resp, _ := send(t, app, http.MethodGet, "/api/super-admin/verifications", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = send(t, app, http.MethodGet, "/api/super-admin/verifications", tokenForRole(t, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = send(t, app, http.MethodGet, "/api/super-admin/verifications", tokenForRole(t, entity.RoleSuperAdmin), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_PaquetesPublicos(t *testing.T) {
	app, _ := newRouterApp(t)

	resp, _ := send(t, app, http.MethodGet, "/api/subscription-packages", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = send(t, app, http.MethodGet, "/api/subscription-packages/all", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_ReenviaRutasNoImplementadas(t *testing.T) {
	app, seen := newRouterApp(t)

	resp, body := send(t, app, http.MethodGet, "/api/super-admin/reports/monthly?year=2026", "Bearer upstream-token", nil)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.JSONEq(t, `{"forwarded":true}`, string(body))
	assert.Equal(t, http.MethodGet, seen.method)
	assert.Equal(t, "/api/super-admin/reports/monthly", seen.path)
	assert.Equal(t, "year=2026", seen.query)
	assert.Equal(t, "Bearer upstream-token", seen.auth)

	resp, _ = send(t, app, http.MethodDelete, "/api/admin/users/7", "", nil)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, http.MethodDelete, seen.method)
	assert.Equal(t, "/api/admin/users/7", seen.path)
}

func TestRouter_RutaDesconocida(t *testing.T) {
	app, _ := newRouterApp(t)
	resp, body := send(t, app, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "NOT_FOUND")
}
