package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"kaard/entities"
)

// VehicleAPI is the vehicle resource plus its location route.
type VehicleAPI interface {
	Resource[entities.Vehicle]
	UpdateLocation(ctx context.Context, id string, lat, lng float64) error
}

const (
	MapCenterLat = -18.9166
	MapCenterLng = 29.8166
	MapZoom      = 12
)

// StatusColor maps a vehicle status to its marker colour.
func StatusColor(status string) string {
	switch status {
	case "Active":
		return "#4CAF50"
	case "Idle":
		return "#FFC107"
	case "Maintenance":
		return "#F44336"
	}
	return "#9E9E9E"
}

type Marker struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Registration string  `json:"registration,omitempty"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Status       string  `json:"status"`
	Color        string  `json:"color"`
	Driver       string  `json:"driver"`
	FuelLevel    float64 `json:"fuelLevel"`
	LastUpdate   string  `json:"lastUpdate,omitempty"`
}

type Overlay struct {
	Center  Position `json:"center"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers"`
}

// TrackingView is the vehicle CRUD view with a polling subscription and a
// simulate-movement action.
type TrackingView struct {
	*CRUDView[entities.Vehicle]

	api       VehicleAPI
	mover     Mover
	every     time.Duration
	newTicker TickerFunc
	log       *zap.Logger

	mu  sync.Mutex
	sub *Subscription
}

type TrackingOption func(*TrackingView)

// WithTicker replaces the wall-clock ticker.
func WithTicker(f TickerFunc) TrackingOption {
	return func(t *TrackingView) { t.newTicker = f }
}

func NewTrackingView(desc Descriptor[entities.Vehicle], api VehicleAPI, mover Mover, every time.Duration, log *zap.Logger, opts ...TrackingOption) *TrackingView {
	if log == nil {
		log = zap.NewNop()
	}
	t := &TrackingView{
		CRUDView:  NewCRUDView[entities.Vehicle](desc, api, log),
		api:       api,
		mover:     mover,
		every:     every,
		newTicker: NewStdTicker,
		log:       log.With(zap.String("view", "tracking")),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Activate mounts, fetches and starts polling. The release func stops the
// poller before unmounting.
func (t *TrackingView) Activate(ctx context.Context) (release func()) {
	unmount := t.CRUDView.Activate(ctx)

	pollCtx := context.WithoutCancel(ctx)
	sub := Subscribe(pollCtx, t.every, t.newTicker, func(ctx context.Context) {
		if err := t.Refresh(ctx); err != nil {
			t.log.Debug("poll failed", zap.Error(err))
		}
	})
	t.mu.Lock()
	t.sub = sub
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.Close()
			t.mu.Lock()
			if t.sub == sub {
				t.sub = nil
			}
			t.mu.Unlock()
			unmount()
		})
	}
}

// Polling reports whether a subscription is live.
func (t *TrackingView) Polling() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sub != nil
}

// SimulateMovement moves the listed vehicle id to wherever the mover says and
// re-lists.
func (t *TrackingView) SimulateMovement(ctx context.Context, id string) (Position, error) {
	v, ok := t.Find(id)
	if !ok {
		return Position{}, ErrUnknownRecord
	}
	pos, err := t.mover.Move(ctx, v)
	if err != nil {
		t.SetNotice(fmt.Sprintf("Could not move %s: %v", v.VehicleName, err))
		return Position{}, err
	}
	if err := t.api.UpdateLocation(ctx, id, pos.Lat, pos.Lng); err != nil {
		t.log.Warn("location update failed", zap.String("id", id), zap.Error(err))
		if t.Refresh(ctx) == nil {
			t.SetNotice(fmt.Sprintf("Could not move %s: %v", v.VehicleName, err))
		}
		return Position{}, err
	}
	t.log.Info("vehicle moved", zap.String("id", id), zap.Float64("lat", pos.Lat), zap.Float64("lng", pos.Lng))
	_ = t.Refresh(ctx)
	return pos, nil
}

// Map builds the overlay from the displayed list.
func (t *TrackingView) Map() Overlay {
	items := t.Items()
	o := Overlay{
		Center:  Position{Lat: MapCenterLat, Lng: MapCenterLng},
		Zoom:    MapZoom,
		Markers: make([]Marker, 0, len(items)),
	}
	for _, v := range items {
		driver := v.DriverName
		if driver == "" {
			driver = "Unassigned"
		}
		o.Markers = append(o.Markers, Marker{
			ID:           v.ID,
			Name:         v.VehicleName,
			Registration: v.Registration,
			Lat:          v.CurrentLat,
			Lng:          v.CurrentLng,
			Status:       v.Status,
			Color:        StatusColor(v.Status),
			Driver:       driver,
			FuelLevel:    v.FuelLevel,
			LastUpdate:   v.LastUpdate,
		})
	}
	return o
}
