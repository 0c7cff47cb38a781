package controller

import "github.com/labstack/echo/v4"

type TrackingController interface {
	Simulate(c echo.Context) error
	MapJSON(c echo.Context) error
}
