package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"kaard/pkg/dashboard/controller"
	"kaard/pkg/middleware"
	"kaard/pkg/render"
	"kaard/pkg/shell"
	"kaard/pkg/view"
)

type dashboardCtrl struct {
	shell *shell.Shell
	view  *view.DashboardView
}

func NewDashboardController(sh *shell.Shell, v *view.DashboardView) controller.DashboardController {
	return &dashboardCtrl{shell: sh, view: v}
}

// Show mounts the dashboard when it is not the active tab. ?open=1 remounts,
// which fetches the stats again.
func (h *dashboardCtrl) Show(c echo.Context) error {
	ctx := c.Request().Context()
	var err error
	if c.QueryParam("open") != "" {
		err = h.shell.Navigate(ctx, shell.Dashboard)
	} else {
		err = h.shell.Ensure(ctx, shell.Dashboard)
	}
	if errors.Is(err, shell.ErrNotAuthenticated) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	return c.Render(http.StatusOK, "dashboard", render.Screen{
		Title: "Dashboard",
		User:  middleware.User(c),
		Tab:   string(shell.Dashboard),
		Tabs:  render.Tabs,
		Body:  h.view.Snapshot(),
	})
}

func (h *dashboardCtrl) Retry(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.shell.Ensure(ctx, shell.Dashboard); errors.Is(err, shell.ErrNotAuthenticated) {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	h.view.Reload(ctx)
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}
