package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/domain"
)

var _ ports.LocationDirectory = (*Directory)(nil)

// Directory jerarquía país > estado > LGA > ciudad > región publicada por el backend.
// El backend responde strings u objetos {name}; aquí se normaliza a []string.
type Directory struct {
	c *Client
}

func NewDirectory(c *Client) *Directory {
	return &Directory{c: c}
}

func (d *Directory) Countries(ctx context.Context) ([]string, error) {
	return d.names(ctx, "/api/locations/countries", nil)
}

func (d *Directory) States(ctx context.Context, country string) ([]string, error) {
	return d.names(ctx, "/api/locations/states", map[string]string{"country": country})
}

func (d *Directory) LGAs(ctx context.Context, country, state string) ([]string, error) {
	return d.names(ctx, "/api/locations/lgas", map[string]string{"country": country, "state": state})
}

func (d *Directory) Cities(ctx context.Context, country, state, lga string) ([]string, error) {
	return d.names(ctx, "/api/locations/cities", map[string]string{"country": country, "state": state, "lga": lga})
}

// CityRegions conserva la tarifa de cada región.
func (d *Directory) CityRegions(ctx context.Context, country, state, lga, city string) ([]ports.Region, error) {
	raw, err := d.c.do(d.c.request(ctx, "").SetQueryParams(map[string]string{
		"country": country, "state": state, "lga": lga, "city": city,
	}), http.MethodGet, "/api/locations/city-regions")
	if err != nil {
		return nil, err
	}
	items, err := listOf(raw, "cityRegions")
	if err != nil {
		return nil, err
	}
	out := make([]ports.Region, 0, len(items))
	for _, it := range items {
		var r struct {
			Name string          `json:"name"`
			Fee  json.RawMessage `json:"fee"`
		}
		if json.Unmarshal(it, &r) == nil && r.Name != "" {
			out = append(out, ports.Region{Name: r.Name, Fee: parseFee(r.Fee)})
			continue
		}
		var s string
		if json.Unmarshal(it, &s) == nil && s != "" {
			out = append(out, ports.Region{Name: s})
		}
	}
	return out, nil
}

func (d *Directory) names(ctx context.Context, path string, query map[string]string) ([]string, error) {
	r := d.c.request(ctx, "")
	if query != nil {
		r.SetQueryParams(query)
	}
	raw, err := d.c.do(r, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	items, err := listOf(raw, path[strings.LastIndex(path, "/")+1:])
	if err != nil {
		return nil, err
	}
	return normalizeNames(items), nil
}

// normalizeNames acepta "Lagos" o {"name":"Lagos"}; descarta vacíos.
func normalizeNames(items []json.RawMessage) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		var s string
		if json.Unmarshal(it, &s) == nil {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
			continue
		}
		var obj struct {
			Name string `json:"name"`
		}
		if json.Unmarshal(it, &obj) == nil {
			if n := strings.TrimSpace(obj.Name); n != "" {
				out = append(out, n)
			}
		}
	}
	return out
}

// listOf acepta un arreglo directo o un objeto con el arreglo bajo key.
func listOf(raw json.RawMessage, key string) ([]json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, domain.Network(err, "invalid locations response")
	}
	inner, ok := wrapped[key]
	if !ok {
		return nil, nil
	}
	if err := json.Unmarshal(inner, &items); err != nil {
		return nil, domain.Network(err, "invalid locations response")
	}
	return items, nil
}

// parseFee el backend manda la tarifa como número o como texto.
func parseFee(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if json.Unmarshal(raw, &f) == nil {
		return f
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return v
		}
	}
	return 0
}
