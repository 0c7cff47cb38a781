package controller

import "github.com/labstack/echo/v4"

type DashboardController interface {
	Show(c echo.Context) error
	Retry(c echo.Context) error
}
