package backend

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/config"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.BackendConfig{BaseURL: srv.URL + "/", Timeout: 2 * time.Second}, logger.Nop())
}

func TestOrganizationClient_CreateHaceUnSoloPOST(t *testing.T) {
	var posts int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, organizationsPath, r.URL.Path)
		if r.Method == http.MethodPost {
			atomic.AddInt32(&posts, 1)
		}
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Acme", body["name"])
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":"org-9","name":"Acme"}}`)
	})

	data, err := NewOrganizationClient(c).Create(context.Background(), "tok-1", map[string]string{"name": "Acme"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&posts))
	assert.JSONEq(t, `{"id":"org-9","name":"Acme"}`, string(data))
}

func TestOrganizationClient_ErrorConMensajeDelBackend(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"success":false,"message":"Email already registered"}`)
	})

	_, err := NewOrganizationClient(c).Create(context.Background(), "tok", map[string]string{"name": "Acme"})
	require.Error(t, err)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindUpstream, de.Kind)
	assert.Equal(t, http.StatusUnprocessableEntity, de.Status)
	assert.Equal(t, "Email already registered", de.Message)
	assert.Contains(t, string(de.Body), "Email already registered")
}

func TestOrganizationClient_ErrorSinCuerpoUsaStatusText(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	err := NewOrganizationClient(c).Delete(context.Background(), "tok", "org-1")
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), de.Message)
}

func TestClient_BackendCaidoEsErrorDeRed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	c := New(config.BackendConfig{BaseURL: url, Timeout: time.Second}, logger.Nop())

	_, err := NewOrganizationClient(c).Get(context.Background(), "", "x")
	assert.Equal(t, domain.KindNetwork, domain.KindOf(err))
}

func TestDirectory_NormalizaNombres(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/locations/states":
			assert.Equal(t, "Nigeria", r.URL.Query().Get("country"))
			_, _ = io.WriteString(w, `{"success":true,"data":["Lagos",{"name":"Abuja"},{"name":""}," "]}`)
		case "/api/locations/city-regions":
			_, _ = io.WriteString(w, `{"data":{"cityRegions":[{"name":"Lekki Phase 1","fee":8500},{"name":"Ajah","fee":"4000"},"Ikoyi"]}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	d := NewDirectory(c)

	states, err := d.States(context.Background(), "Nigeria")
	require.NoError(t, err)
	assert.Equal(t, []string{"Lagos", "Abuja"}, states)

	regions, err := d.CityRegions(context.Background(), "Nigeria", "Lagos", "Eti-Osa", "Lekki")
	require.NoError(t, err)
	require.Len(t, regions, 3)
	assert.Equal(t, 8500.0, regions[0].Fee)
	assert.Equal(t, 4000.0, regions[1].Fee)
	assert.Equal(t, "Ikoyi", regions[2].Name)
	assert.Zero(t, regions[2].Fee)
}

func TestProxy_ReenviaStatusYCuerpo(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/users/7", r.URL.Path)
		assert.Equal(t, "a=1&b=2", r.URL.RawQuery)
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"x":1}`, string(b))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, `{"message":"nope"}`)
	})

	resp, err := NewProxy(c).Forward(context.Background(), ProxyRequest{
		Method:        http.MethodPatch,
		Path:          "api/users/7",
		RawQuery:      "a=1&b=2",
		Authorization: "Bearer abc",
		Body:          []byte(`{"x":1}`),
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.Status)
	assert.JSONEq(t, `{"message":"nope"}`, string(resp.Body))
	assert.Equal(t, "application/json", resp.ContentType)
}
