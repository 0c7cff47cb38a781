package view

import (
	"context"
	"math/rand"
	"sync"

	"kaard/entities"
)

type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Mover decides where a vehicle goes next. The random Jitter is a demo
// stand-in; a live GPS feed implements the same interface.
type Mover interface {
	Move(ctx context.Context, v entities.Vehicle) (Position, error)
}

// Jitter offsets each axis independently by a uniform value in [-Bound, +Bound].
type Jitter struct {
	Bound float64

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewJitter(bound float64, src rand.Source) *Jitter {
	return &Jitter{Bound: bound, rnd: rand.New(src)}
}

func (j *Jitter) Move(_ context.Context, v entities.Vehicle) (Position, error) {
	j.mu.Lock()
	dLat := (j.rnd.Float64()*2 - 1) * j.Bound
	dLng := (j.rnd.Float64()*2 - 1) * j.Bound
	j.mu.Unlock()
	return Position{Lat: v.CurrentLat + dLat, Lng: v.CurrentLng + dLng}, nil
}
