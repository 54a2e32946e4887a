package backend

import (
	"context"
	"net/http"
	"strings"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
)

// ProxyRequest petición entrante a reenviar tal cual.
type ProxyRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	ContentType   string
	Body          []byte
}

// ProxyResponse status, cuerpo y content-type del backend sin cambios.
type ProxyResponse struct {
	Status      int
	Body        []byte
	ContentType string
}

// Proxy reenvía rutas que esta API no implementa.
type Proxy struct {
	c *Client
}

func NewProxy(c *Client) *Proxy {
	return &Proxy{c: c}
}

// Forward solo falla por errores de red; cualquier status del backend se devuelve como respuesta.
func (p *Proxy) Forward(ctx context.Context, in ProxyRequest) (*ProxyResponse, error) {
	r := p.c.http.R().SetContext(ctx)
	if in.Authorization != "" {
		r.SetHeader("Authorization", in.Authorization)
	}
	if len(in.Body) > 0 && in.Method != http.MethodGet && in.Method != http.MethodHead {
		ct := in.ContentType
		if ct == "" {
			ct = "application/json"
		}
		r.SetHeader("Content-Type", ct).SetBody(in.Body)
	}
	if in.RawQuery != "" {
		r.SetQueryString(in.RawQuery)
	}
	path := "/" + strings.TrimLeft(in.Path, "/")
	resp, err := r.Execute(in.Method, path)
	if err != nil {
		p.c.log.Error().Err(err).Str("method", in.Method).Str("path", path).Msg("proxy failed")
		return nil, domain.Network(err, "backend request failed")
	}
	p.c.log.Debug().Str("method", in.Method).Str("path", path).Int("status", resp.StatusCode()).Msg("proxied")
	return &ProxyResponse{
		Status:      resp.StatusCode(),
		Body:        resp.Body(),
		ContentType: resp.Header().Get("Content-Type"),
	}, nil
}
