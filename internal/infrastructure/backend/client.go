// Package backend es el cliente HTTP del backend REST externo: organizaciones,
// jerarquía de ubicaciones y reenvío de rutas proxy.
package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/config"
	"github.com/roboticsteamraoatech-creator/datacapture-api/pkg/logger"
)

// envelope respuesta estándar del backend.
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// Client comparte un resty.Client con base URL y timeout.
type Client struct {
	http *resty.Client
	log  *logger.Logger
}

// New la base URL ya viene resuelta por la configuración.
func New(cfg config.BackendConfig, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	hc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{http: hc, log: log.Named("backend")}
}

func (c *Client) request(ctx context.Context, token string) *resty.Request {
	r := c.http.R().SetContext(ctx)
	if token != "" {
		r.SetAuthToken(token)
	}
	return r
}

// do ejecuta la petición y devuelve el campo data de una respuesta 2xx.
// Una respuesta no 2xx se convierte en domain.Upstream con el mensaje del backend.
func (c *Client) do(r *resty.Request, method, path string) (json.RawMessage, error) {
	resp, err := r.Execute(method, path)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("backend unreachable")
		return nil, domain.Network(err, "backend request failed")
	}
	body := resp.Body()
	if resp.IsError() {
		msg := upstreamMessage(body, resp.StatusCode())
		c.log.Warn().Int("status", resp.StatusCode()).Str("path", path).Str("message", msg).Msg("backend error")
		return nil, domain.Upstream(resp.StatusCode(), msg, body)
	}
	if len(body) == 0 {
		return nil, nil
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, domain.Network(err, "invalid backend response")
	}
	if env.Success != nil && !*env.Success {
		return nil, domain.Upstream(resp.StatusCode(), firstNonEmpty(env.Message, env.Error, "backend request failed"), body)
	}
	if env.Data == nil {
		// Algunas rutas devuelven el recurso sin envoltorio.
		return json.RawMessage(body), nil
	}
	return env.Data, nil
}

func upstreamMessage(body []byte, status int) string {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if m := firstNonEmpty(env.Message, env.Error); m != "" {
			return m
		}
	}
	return http.StatusText(status)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
