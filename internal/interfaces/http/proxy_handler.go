package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/infrastructure/backend"
)

// proxyObserver lo implementa *metrics.Recorder.
type proxyObserver interface {
	ObserveProxy(method string, status int)
}

// ProxyHandler reenvía al backend las rutas que esta API no implementa.
type ProxyHandler struct {
	proxy    *backend.Proxy
	observer proxyObserver
}

func NewProxyHandler(proxy *backend.Proxy, observer proxyObserver) *ProxyHandler {
	return &ProxyHandler{proxy: proxy, observer: observer}
}

// Forward método, cuerpo, query y Authorization viajan sin cambios; status y cuerpo vuelven igual.
func (h *ProxyHandler) Forward(c *fiber.Ctx) error {
	resp, err := h.proxy.Forward(c.UserContext(), backend.ProxyRequest{
		Method:        c.Method(),
		Path:          c.Path(),
		RawQuery:      string(c.Request().URI().QueryString()),
		Authorization: c.Get(fiber.HeaderAuthorization),
		ContentType:   c.Get(fiber.HeaderContentType),
		Body:          c.Body(),
	})
	if err != nil {
		if h.observer != nil {
			h.observer.ObserveProxy(c.Method(), fiber.StatusBadGateway)
		}
		return writeError(c, err)
	}
	if h.observer != nil {
		h.observer.ObserveProxy(c.Method(), resp.Status)
	}
	if resp.ContentType != "" {
		c.Set(fiber.HeaderContentType, resp.ContentType)
	}
	return c.Status(resp.Status).Send(resp.Body)
}
