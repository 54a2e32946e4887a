package ports

import (
	"context"
	"encoding/json"
)

// Region región de ciudad con su tarifa publicada por el backend.
type Region struct {
	Name string  `json:"name"`
	Fee  float64 `json:"fee"`
}

// LocationDirectory jerarquía de ubicaciones publicada por el backend.
type LocationDirectory interface {
	Countries(ctx context.Context) ([]string, error)
	States(ctx context.Context, country string) ([]string, error)
	LGAs(ctx context.Context, country, state string) ([]string, error)
	Cities(ctx context.Context, country, state, lga string) ([]string, error)
	CityRegions(ctx context.Context, country, state, lga, city string) ([]Region, error)
}

// OrganizationBackend CRUD de organizaciones delegado al backend.
// Los cuerpos viajan como JSON crudo: el backend es dueño del esquema.
type OrganizationBackend interface {
	List(ctx context.Context, token string, query map[string]string) (json.RawMessage, error)
	Get(ctx context.Context, token, id string) (json.RawMessage, error)
	Create(ctx context.Context, token string, body any) (json.RawMessage, error)
	Update(ctx context.Context, token, id string, body any) (json.RawMessage, error)
	Delete(ctx context.Context, token, id string) error
}
