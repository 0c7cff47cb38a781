package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

// Pinger is any dependency the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthCtrl struct {
	db     *gorm.DB
	checks map[string]Pinger
}

// NewHealthCtrl checks db when it is set (sqlite session store) plus each
// named dependency.
func NewHealthCtrl(db *gorm.DB, checks map[string]Pinger) *HealthCtrl {
	return &HealthCtrl{db: db, checks: checks}
}

type sub struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	results := map[string]any{}
	allOK := true

	if h.db != nil {
		dbOK := true
		dbErr := ""
		sqlDB, err := h.db.DB()
		if err != nil {
			dbOK = false
			dbErr = "db.DB(): " + err.Error()
		} else if err := sqlDB.PingContext(ctx); err != nil {
			dbOK = false
			dbErr = "ping: " + err.Error()
		}
		results["database"] = sub{OK: dbOK, Err: dbErr}
		allOK = allOK && dbOK
	}

	for name, p := range h.checks {
		if err := p.Ping(ctx); err != nil {
			results[name] = sub{OK: false, Err: err.Error()}
			allOK = false
			continue
		}
		results[name] = sub{OK: true}
	}

	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	resp := map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     results,
		"time":       time.Now().Format(time.RFC3339),
	}
	return c.JSON(status, resp)
}
