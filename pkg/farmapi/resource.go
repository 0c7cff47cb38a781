package farmapi

import (
	"context"
	"net/url"

	"kaard/entities"
)

// ResourceClient covers list/create/update/delete for one resource path.
type ResourceClient[T any] struct {
	c         *Client
	kind      string
	path      string
	updatable bool
}

func newResource[T any](c *Client, kind, path string, updatable bool) *ResourceClient[T] {
	return &ResourceClient[T]{c: c, kind: kind, path: path, updatable: updatable}
}

func (r *ResourceClient[T]) Path() string { return r.path }

func (r *ResourceClient[T]) List(ctx context.Context) ([]T, error) {
	var out []T
	if err := r.c.do(ctx, "list "+r.kind, "GET", r.path, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Create posts the form fields. The API's answer is ignored; callers re-list.
func (r *ResourceClient[T]) Create(ctx context.Context, body any) error {
	return r.c.do(ctx, "create "+r.kind, "POST", r.path, body, nil)
}

func (r *ResourceClient[T]) Update(ctx context.Context, id string, body any) error {
	if !r.updatable {
		return ErrNoUpdateRoute
	}
	return r.c.do(ctx, "update "+r.kind, "PUT", r.item(id), body, nil)
}

func (r *ResourceClient[T]) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, "delete "+r.kind, "DELETE", r.item(id), nil, nil)
}

func (r *ResourceClient[T]) item(id string) string {
	return r.path + "/" + url.PathEscape(id)
}

func (c *Client) Crops() *ResourceClient[entities.Crop] {
	return newResource[entities.Crop](c, "crop", "/crops", true)
}

func (c *Client) Equipment() *ResourceClient[entities.Equipment] {
	return newResource[entities.Equipment](c, "equipment", "/equipment", true)
}

// Production has no update route on the API.
func (c *Client) Production() *ResourceClient[entities.ProductionRecord] {
	return newResource[entities.ProductionRecord](c, "production", "/production", false)
}

// VehicleClient adds the location route used by simulated and live movement.
type VehicleClient struct {
	*ResourceClient[entities.Vehicle]
}

func (c *Client) Vehicles() *VehicleClient {
	return &VehicleClient{newResource[entities.Vehicle](c, "vehicle", "/vehicles", true)}
}

type locationBody struct {
	CurrentLat float64 `json:"currentLat"`
	CurrentLng float64 `json:"currentLng"`
}

func (v *VehicleClient) UpdateLocation(ctx context.Context, id string, lat, lng float64) error {
	return v.c.do(ctx, "update vehicle location", "PUT", v.item(id)+"/location", locationBody{CurrentLat: lat, CurrentLng: lng}, nil)
}

func (c *Client) Stats(ctx context.Context) (entities.DashboardStats, error) {
	var s entities.DashboardStats
	err := c.do(ctx, "stats", "GET", "/stats", nil, &s)
	return s, err
}
