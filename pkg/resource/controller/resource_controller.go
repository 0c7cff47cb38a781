package controller

import "github.com/labstack/echo/v4"

// ResourceController serves one record kind under /{Kind}.
type ResourceController interface {
	Kind() string
	List(c echo.Context) error
	Add(c echo.Context) error
	Edit(c echo.Context) error
	Cancel(c echo.Context) error
	Submit(c echo.Context) error
	Delete(c echo.Context) error
	Export(c echo.Context) error
}
