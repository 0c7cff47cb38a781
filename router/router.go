package router

import (
	"github.com/labstack/echo/v4"

	authCtrl "kaard/pkg/auth/controller"
	dashCtrl "kaard/pkg/dashboard/controller"
	"kaard/pkg/middleware"
	resourceCtrl "kaard/pkg/resource/controller"
	"kaard/pkg/session/service"
	trackCtrl "kaard/pkg/tracking/controller"
)

func New(
	e *echo.Echo,
	sess service.SessionService,
	auth authCtrl.AuthController,
	dash dashCtrl.DashboardController,
	track trackCtrl.TrackingController,
	healthCtrl interface{ Health(echo.Context) error },
	resources ...resourceCtrl.ResourceController,
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	guest := e.Group("", middleware.GuestOnly(sess))
	guest.GET("/", auth.Landing)
	guest.GET("/login", auth.LoginForm)
	guest.POST("/login", auth.Login)

	api := e.Group("", middleware.RequireLogin(sess))
	api.POST("/logout", auth.Logout)
	api.GET("/dashboard", dash.Show)
	api.POST("/dashboard/retry", dash.Retry)

	api.GET("/vehicles/map.json", track.MapJSON)
	api.POST("/vehicles/:id/simulate", track.Simulate)

	for _, r := range resources {
		g := api.Group("/" + r.Kind())
		g.GET("", r.List)
		g.POST("", r.Submit)
		g.POST("/add", r.Add)
		g.POST("/cancel", r.Cancel)
		g.GET("/export", r.Export)
		g.POST("/:id/edit", r.Edit)
		g.POST("/:id/delete", r.Delete)
	}
	return e
}
