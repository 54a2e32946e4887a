package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
)

// LocationHandler jerarquía de ubicaciones normalizada a arreglos de nombres.
type LocationHandler struct {
	dir ports.LocationDirectory
}

func NewLocationHandler(dir ports.LocationDirectory) *LocationHandler {
	return &LocationHandler{dir: dir}
}

// requireQuery devuelve los parámetros pedidos o un error con los que faltan.
func requireQuery(c *fiber.Ctx, names ...string) ([]string, error) {
	values := make([]string, len(names))
	var missing []string
	for i, n := range names {
		values[i] = strings.TrimSpace(c.Query(n))
		if values[i] == "" {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return nil, domain.Validation("missing query parameters: %s", strings.Join(missing, ", "))
	}
	return values, nil
}

// Countries godoc
// @Summary      Países
// @Tags         locations
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/locations/countries [get]
func (h *LocationHandler) Countries(c *fiber.Ctx) error {
	out, err := h.dir.Countries(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// States godoc
// @Summary      Estados de un país
// @Tags         locations
// @Produce      json
// @Param        country  query  string  true  "País"
// @Success      200  {array}  string
// @Router       /api/locations/states [get]
func (h *LocationHandler) States(c *fiber.Ctx) error {
	q, err := requireQuery(c, "country")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.dir.States(c.UserContext(), q[0])
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// LGAs godoc
// @Summary      LGAs de un estado
// @Tags         locations
// @Produce      json
// @Param        country  query  string  true  "País"
// @Param        state    query  string  true  "Estado"
// @Success      200  {array}  string
// @Router       /api/locations/lgas [get]
func (h *LocationHandler) LGAs(c *fiber.Ctx) error {
	q, err := requireQuery(c, "country", "state")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.dir.LGAs(c.UserContext(), q[0], q[1])
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// Cities godoc
// @Summary      Ciudades de una LGA
// @Tags         locations
// @Produce      json
// @Param        country  query  string  true  "País"
// @Param        state    query  string  true  "Estado"
// @Param        lga      query  string  true  "LGA"
// @Success      200  {array}  string
// @Router       /api/locations/cities [get]
func (h *LocationHandler) Cities(c *fiber.Ctx) error {
	q, err := requireQuery(c, "country", "state", "lga")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.dir.Cities(c.UserContext(), q[0], q[1], q[2])
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}

// CityRegions godoc
// @Summary      Regiones de una ciudad con su tarifa
// @Tags         locations
// @Produce      json
// @Param        country  query  string  true  "País"
// @Param        state    query  string  true  "Estado"
// @Param        lga      query  string  true  "LGA"
// @Param        city     query  string  true  "Ciudad"
// @Success      200  {array}  ports.Region
// @Router       /api/locations/city-regions [get]
func (h *LocationHandler) CityRegions(c *fiber.Ctx) error {
	q, err := requireQuery(c, "country", "state", "lga", "city")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.dir.CityRegions(c.UserContext(), q[0], q[1], q[2], q[3])
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, out)
}
