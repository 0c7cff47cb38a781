package view

import (
	"context"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"kaard/entities"
)

type StatsSource interface {
	Stats(ctx context.Context) (entities.DashboardStats, error)
}

type Phase int

const (
	Loading Phase = iota
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "loading"
}

// Snapshot is what the dashboard renders. Stats is only meaningful when Ready.
type Snapshot struct {
	Phase   Phase
	Stats   entities.DashboardStats
	Message string
}

// DashboardView fetches the stats once per activation.
type DashboardView struct {
	src StatsSource
	log *zap.Logger

	mu   sync.Mutex
	gen  uint64
	snap Snapshot
}

func NewDashboardView(src StatsSource, log *zap.Logger) *DashboardView {
	if log == nil {
		log = zap.NewNop()
	}
	return &DashboardView{src: src, log: log.With(zap.String("view", "dashboard"))}
}

func (d *DashboardView) Activate(ctx context.Context) (release func()) {
	d.mu.Lock()
	d.gen++
	d.snap = Snapshot{Phase: Loading}
	gen := d.gen
	d.mu.Unlock()

	d.load(ctx, gen)

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			d.gen++
			d.snap = Snapshot{Phase: Loading}
			d.mu.Unlock()
		})
	}
}

// Reload fetches again without remounting; used by the retry link.
func (d *DashboardView) Reload(ctx context.Context) {
	d.mu.Lock()
	d.snap = Snapshot{Phase: Loading}
	gen := d.gen
	d.mu.Unlock()
	d.load(ctx, gen)
}

func (d *DashboardView) load(ctx context.Context, gen uint64) {
	stats, err := d.src.Stats(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return
	}
	if err != nil {
		d.log.Warn("stats failed", zap.Error(err))
		d.snap = Snapshot{Phase: Failed, Message: fmt.Sprintf("Could not load dashboard: %v", err)}
		return
	}
	d.snap = Snapshot{Phase: Ready, Stats: stats}
}

func (d *DashboardView) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snap
}

var printer = message.NewPrinter(language.English)

// FormatQuantity renders a kilogram total with English digit grouping.
func FormatQuantity(kg float64) string {
	if kg == math.Trunc(kg) {
		return printer.Sprintf("%.0f kg", kg)
	}
	return printer.Sprintf("%.2f kg", kg)
}
