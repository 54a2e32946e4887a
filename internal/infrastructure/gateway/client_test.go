package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/config"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(config.GatewayConfig{
		BaseURL:     srv.URL,
		SecretKey:   "sk_test",
		CallbackURL: "https://app.example.com/payment/callback",
		Currency:    "NGN",
		Timeout:     2 * time.Second,
	}, logger.Nop())
}

func TestInitialize_EnviaMontoEnSubunidades(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test", r.Header.Get("Authorization"))
		var body initializeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 1250050, body.Amount)
		assert.Equal(t, "NGN", body.Currency)
		assert.Equal(t, "LOC-1", body.Reference)
		assert.Equal(t, "https://app.example.com/payment/callback", body.CallbackURL)
		assert.Equal(t, "Ada", body.Metadata["customer_name"])
		_, _ = io.WriteString(w, `{"status":true,"message":"ok","data":{"authorization_url":"https://pay.example.com/abc","access_code":"abc","reference":"LOC-1"}}`)
	})

	s, err := g.Initialize(context.Background(), ports.GatewayInit{
		Reference: "LOC-1",
		Amount:    decimal.RequireFromString("12500.50"),
		Email:     "ada@example.com",
		Name:      "Ada",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/abc", s.AuthorizationURL)
	assert.Equal(t, "LOC-1", s.Reference)
}

func TestInitialize_SinEmail(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no debe llamar a la pasarela")
	})
	_, err := g.Initialize(context.Background(), ports.GatewayInit{Reference: "x", Amount: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInitialize_ErrorDeLaPasarela(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"status":false,"message":"Duplicate Transaction Reference"}`)
	})
	_, err := g.Initialize(context.Background(), ports.GatewayInit{Reference: "x", Amount: decimal.NewFromInt(1), Email: "a@b.co"})
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindUpstream, de.Kind)
	assert.Equal(t, "Duplicate Transaction Reference", de.Message)
}

func TestVerify(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/transaction/verify/LOC-1", r.URL.Path)
		_, _ = io.WriteString(w, `{"status":true,"message":"Verification successful","data":{"reference":"LOC-1","status":"success","amount":850000,"gateway_response":"Approved","paid_at":"2026-01-02T10:00:00Z"}}`)
	})

	v, err := g.Verify(context.Background(), "LOC-1")
	require.NoError(t, err)
	assert.True(t, v.Success)
	assert.True(t, v.Amount.Equal(decimal.NewFromInt(8500)))
	assert.Equal(t, "Approved", v.Message)
	require.NotNil(t, v.PaidAt)
}

func TestVerify_Abandonada(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"status":true,"message":"Verification successful","data":{"reference":"LOC-2","status":"abandoned","amount":0}}`)
	})
	v, err := g.Verify(context.Background(), "LOC-2")
	require.NoError(t, err)
	assert.False(t, v.Success)
	assert.Equal(t, "Verification successful", v.Message)
}

func TestVerify_ReferenciaVacia(t *testing.T) {
	g := newGateway(t, func(w http.ResponseWriter, r *http.Request) {})
	_, err := g.Verify(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
