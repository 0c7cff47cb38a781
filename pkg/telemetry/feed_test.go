package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaard/entities"
	"kaard/pkg/view"
)

func TestHandle_StoresLatestFixPerVehicle(t *testing.T) {
	f := NewFeed(nil)
	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return at }

	require.NoError(t, f.Handle("kaard/vehicles/v1/location", []byte(`{"lat":-18.9,"lng":29.8}`)))
	require.NoError(t, f.Handle("kaard/vehicles/v1/location", []byte(`{"lat":-18.95,"lng":29.85}`)))

	fx, ok := f.Latest("v1")
	require.True(t, ok)
	assert.Equal(t, view.Position{Lat: -18.95, Lng: 29.85}, fx.Position)
	assert.Equal(t, at, fx.At)
}

func TestHandle_RejectsBadMessages(t *testing.T) {
	f := NewFeed(nil)

	assert.Error(t, f.Handle("kaard/vehicles/v1/location", []byte(`not json`)))
	assert.Error(t, f.Handle("kaard/vehicles/v1/location", []byte(`{"lat":1}`)))
	assert.Error(t, f.Handle("kaard/vehicles", []byte(`{"lat":1,"lng":2}`)))
	_, ok := f.Latest("v1")
	assert.False(t, ok)
}

func TestMove_UsesFixOrFails(t *testing.T) {
	f := NewFeed(nil)
	require.NoError(t, f.Handle("farm/vehicles/v2/location", []byte(`{"lat":0,"lng":0}`)))

	pos, err := f.Move(context.Background(), entities.Vehicle{ID: "v2", CurrentLat: 5, CurrentLng: 5})
	require.NoError(t, err)
	assert.Equal(t, view.Position{}, pos)

	_, err = f.Move(context.Background(), entities.Vehicle{ID: "v3"})
	assert.ErrorIs(t, err, ErrNoFix)
}

func TestClose_WithoutBrokerIsNoop(t *testing.T) {
	assert.NotPanics(t, NewFeed(nil).Close)
}
