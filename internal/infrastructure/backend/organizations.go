package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/roboticsteamraoatech-creator/datacapture-api/internal/application/ports"
)

const organizationsPath = "/api/super-admin/organizations"

var _ ports.OrganizationBackend = (*OrganizationClient)(nil)

// OrganizationClient CRUD de organizaciones contra el backend.
type OrganizationClient struct {
	c *Client
}

func NewOrganizationClient(c *Client) *OrganizationClient {
	return &OrganizationClient{c: c}
}

func (o *OrganizationClient) List(ctx context.Context, token string, query map[string]string) (json.RawMessage, error) {
	return o.c.do(o.c.request(ctx, token).SetQueryParams(query), http.MethodGet, organizationsPath)
}

func (o *OrganizationClient) Get(ctx context.Context, token, id string) (json.RawMessage, error) {
	return o.c.do(o.c.request(ctx, token), http.MethodGet, organizationsPath+"/"+url.PathEscape(id))
}

// Create un único POST; devuelve el campo data.
func (o *OrganizationClient) Create(ctx context.Context, token string, body any) (json.RawMessage, error) {
	return o.c.do(o.c.request(ctx, token).SetBody(body), http.MethodPost, organizationsPath)
}

func (o *OrganizationClient) Update(ctx context.Context, token, id string, body any) (json.RawMessage, error) {
	return o.c.do(o.c.request(ctx, token).SetBody(body), http.MethodPut, organizationsPath+"/"+url.PathEscape(id))
}

func (o *OrganizationClient) Delete(ctx context.Context, token, id string) error {
	_, err := o.c.do(o.c.request(ctx, token), http.MethodDelete, organizationsPath+"/"+url.PathEscape(id))
	return err
}
