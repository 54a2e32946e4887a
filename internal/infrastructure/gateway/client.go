// Package gateway cliente de la pasarela de pago con página hospedada
// (inicializar transacción y verificar por referencia).
package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/config"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
	"github.com/shopspring/decimal"
)

var _ ports.PaymentGateway = (*Client)(nil)

// minorUnits la pasarela trabaja en la subunidad de la moneda (kobo, centavos).
var minorUnits = decimal.NewFromInt(100)

type initializeRequest struct {
	Reference   string            `json:"reference"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency,omitempty"`
	Email       string            `json:"email"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type apiResponse[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Reference       string     `json:"reference"`
	Status          string     `json:"status"`
	Amount          int64      `json:"amount"`
	GatewayResponse string     `json:"gateway_response"`
	PaidAt          *time.Time `json:"paid_at"`
}

// Client pasarela autenticada con la clave secreta como bearer token.
type Client struct {
	http        *resty.Client
	callbackURL string
	currency    string
	log         *logger.Logger
}

func New(cfg config.GatewayConfig, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	hc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetAuthToken(cfg.SecretKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &Client{http: hc, callbackURL: cfg.CallbackURL, currency: cfg.Currency, log: log.Named("gateway")}
}

// Initialize abre la sesión de pago y devuelve la URL de autorización.
func (c *Client) Initialize(ctx context.Context, in ports.GatewayInit) (*ports.GatewaySession, error) {
	if in.Email == "" {
		return nil, domain.Validation("payer email is required")
	}
	currency := in.Currency
	if currency == "" {
		currency = c.currency
	}
	meta := map[string]string{}
	for k, v := range in.Metadata {
		meta[k] = v
	}
	if in.Name != "" {
		meta["customer_name"] = in.Name
	}
	if in.Phone != "" {
		meta["customer_phone"] = in.Phone
	}
	if in.Description != "" {
		meta["description"] = in.Description
	}
	body := initializeRequest{
		Reference:   in.Reference,
		Amount:      in.Amount.Mul(minorUnits).Round(0).IntPart(),
		Currency:    currency,
		Email:       in.Email,
		CallbackURL: c.callbackURL,
		Metadata:    meta,
	}

	var out apiResponse[initializeData]
	if err := c.call(ctx, http.MethodPost, "/transaction/initialize", body, &out); err != nil {
		return nil, err
	}
	if !out.Status || out.Data.AuthorizationURL == "" {
		return nil, domain.Upstream(http.StatusBadGateway, firstNonEmpty(out.Message, "payment initialization failed"), nil)
	}
	ref := out.Data.Reference
	if ref == "" {
		ref = in.Reference
	}
	c.log.Info().Str("reference", ref).Str("amount", in.Amount.String()).Msg("payment initialized")
	return &ports.GatewaySession{
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
		Reference:        ref,
	}, nil
}

// Verify consulta el estado de la transacción; solo "success" cuenta como pagada.
func (c *Client) Verify(ctx context.Context, reference string) (*ports.GatewayVerdict, error) {
	if strings.TrimSpace(reference) == "" {
		return nil, domain.Validation("reference is required")
	}
	var out apiResponse[verifyData]
	if err := c.call(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &out); err != nil {
		return nil, err
	}
	v := &ports.GatewayVerdict{
		Reference: firstNonEmpty(out.Data.Reference, reference),
		Success:   out.Status && strings.EqualFold(out.Data.Status, "success"),
		Amount:    decimal.NewFromInt(out.Data.Amount).Div(minorUnits),
		Message:   firstNonEmpty(out.Data.GatewayResponse, out.Message),
		PaidAt:    out.Data.PaidAt,
	}
	c.log.Info().Str("reference", v.Reference).Bool("success", v.Success).Str("gateway_status", out.Data.Status).Msg("payment verified")
	return v, nil
}

func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	r := c.http.R().SetContext(ctx)
	if body != nil {
		r.SetBody(body)
	}
	resp, err := r.Execute(method, path)
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("gateway unreachable")
		return domain.Network(err, "payment gateway request failed")
	}
	if resp.IsError() {
		var e apiResponse[json.RawMessage]
		_ = json.Unmarshal(resp.Body(), &e)
		msg := firstNonEmpty(e.Message, http.StatusText(resp.StatusCode()))
		c.log.Warn().Int("status", resp.StatusCode()).Str("path", path).Str("message", msg).Msg("gateway error")
		return domain.Upstream(resp.StatusCode(), msg, resp.Body())
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return domain.Network(err, "invalid payment gateway response")
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
