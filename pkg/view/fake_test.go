package view

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"kaard/entities"
)

var errBoom = errors.New("boom")

// fakeCrops is an in-memory crop API. Setting gate makes the next List or
// Create block until the channel is closed.
type fakeCrops struct {
	mu        sync.Mutex
	items     []entities.Crop
	next      int
	lists     int
	creates   []map[string]any
	updates   map[string]map[string]any
	deletes   []string
	listErr   error
	createErr error
	listGate  chan struct{}
	saveGate  chan struct{}
}

func newFakeCrops(items ...entities.Crop) *fakeCrops {
	return &fakeCrops{items: items, next: len(items) + 1, updates: map[string]map[string]any{}}
}

func (f *fakeCrops) List(ctx context.Context) ([]entities.Crop, error) {
	f.mu.Lock()
	f.lists++
	gate := f.listGate
	f.listGate = nil
	err := f.listErr
	out := append([]entities.Crop{}, f.items...)
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeCrops) Create(ctx context.Context, body any) error {
	f.mu.Lock()
	gate := f.saveGate
	f.saveGate = nil
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	m := body.(map[string]any)
	f.creates = append(f.creates, m)
	if f.createErr != nil {
		return f.createErr
	}
	c := entities.Crop{ID: strconv.Itoa(f.next)}
	f.next++
	c.CropName, _ = m["cropName"].(string)
	c.Quantity, _ = m["quantity"].(float64)
	c.Unit, _ = m["unit"].(string)
	c.HarvestDate, _ = m["harvestDate"].(string)
	c.Status, _ = m["status"].(string)
	f.items = append(f.items, c)
	return nil
}

func (f *fakeCrops) Update(ctx context.Context, id string, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m := body.(map[string]any)
	f.updates[id] = m
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].CropName, _ = m["cropName"].(string)
			f.items[i].Quantity, _ = m["quantity"].(float64)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeCrops) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return errors.New("not found")
}

func (f *fakeCrops) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

func (f *fakeCrops) calls() (lists, creates, updates, deletes int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists, len(f.creates), len(f.updates), len(f.deletes)
}

func cropDescriptor() Descriptor[entities.Crop] {
	return Descriptor[entities.Crop]{
		Kind:     "crops",
		Title:    "Crop Inventory",
		Singular: "crop",
		Empty:    "No crops recorded yet.",
		Fields: []Field{
			{Key: "cropName", Label: "Crop Name", Kind: Text, Required: true},
			{Key: "quantity", Label: "Quantity", Kind: Number, Required: true, Min: Bound(0)},
			{Key: "unit", Label: "Unit", Kind: Enum, Default: "kg", Options: []Option{{"kg", "kg"}, {"tons", "tons"}, {"bags", "bags"}}},
			{Key: "harvestDate", Label: "Harvest Date", Kind: Date},
			{Key: "status", Label: "Status", Kind: Enum, Default: "In Stock", Options: []Option{{"In Stock", "In Stock"}, {"Low Stock", "Low Stock"}, {"Sold", "Sold"}}},
		},
		Columns: []Column[entities.Crop]{
			{Header: "Crop", Cell: func(c entities.Crop) string { return c.CropName }},
			{Header: "Status", Cell: func(c entities.Crop) string { return c.Status }},
		},
		Updatable: true,
		ID:        func(c entities.Crop) string { return c.ID },
	}
}

// manualTicker fires only when the test says so.
type manualTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func newManualTicker() *manualTicker { return &manualTicker{ch: make(chan time.Time)} }

func (m *manualTicker) C() <-chan time.Time { return m.ch }

func (m *manualTicker) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}

func (m *manualTicker) isStopped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stopped
}

// tick delivers one tick; false when nobody is listening any more.
func (m *manualTicker) tick() bool {
	select {
	case m.ch <- time.Now():
		return true
	case <-time.After(200 * time.Millisecond):
		return false
	}
}

func (m *manualTicker) factory() TickerFunc {
	return func(time.Duration) Ticker { return m }
}
