package controllerImp

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kaard/pkg/render"
	"kaard/pkg/shell"
	"kaard/pkg/tracking/controller"
	"kaard/pkg/view"
)

type trackingCtrl struct {
	shell *shell.Shell
	view  *view.TrackingView
	log   *zap.Logger
}

func NewTrackingController(sh *shell.Shell, v *view.TrackingView, log *zap.Logger) controller.TrackingController {
	if log == nil {
		log = zap.NewNop()
	}
	return &trackingCtrl{shell: sh, view: v, log: log}
}

// Body wraps the vehicle page with the map overlay for the vehicles template.
func Body(v *view.TrackingView, every time.Duration) func(view.Page) any {
	return func(p view.Page) any {
		return render.VehiclesBody{Page: p, Map: v.Map(), PollMillis: every.Milliseconds()}
	}
}

func (h *trackingCtrl) ensure(c echo.Context) error {
	return h.shell.Ensure(c.Request().Context(), shell.Vehicles)
}

func (h *trackingCtrl) Simulate(c echo.Context) error {
	if err := h.ensure(c); errors.Is(err, shell.ErrNotAuthenticated) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	id := c.Param("id")
	if _, err := h.view.SimulateMovement(c.Request().Context(), id); err != nil {
		h.log.Info("simulate movement failed", zap.String("id", id), zap.Error(err))
		if errors.Is(err, view.ErrUnknownRecord) {
			h.view.SetNotice("That vehicle is no longer in the list.")
		}
	}
	return c.Redirect(http.StatusSeeOther, "/vehicles")
}

// MapJSON is polled by the browser map. It reads the mounted view without
// switching pages; while tracking is not mounted it answers 409 and the
// browser keeps its markers.
func (h *trackingCtrl) MapJSON(c echo.Context) error {
	if !h.view.Polling() {
		return c.JSON(http.StatusConflict, map[string]string{"error": "vehicle tracking is not open"})
	}
	return c.JSON(http.StatusOK, h.view.Map())
}
