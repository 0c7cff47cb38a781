package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kaard/pkg/session/service"
)

// RequireLogin sends visitors without a session to the login page and exposes
// the operator name as "user" on the context.
func RequireLogin(sess service.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			st := sess.State()
			if !st.LoggedIn {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			c.Set("user", st.Username)
			return next(c)
		}
	}
}

// GuestOnly is the reverse gate for the landing and login pages.
func GuestOnly(sess service.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sess.State().LoggedIn {
				return c.Redirect(http.StatusSeeOther, "/dashboard")
			}
			return next(c)
		}
	}
}

// User returns the name set by RequireLogin.
func User(c echo.Context) string {
	u, _ := c.Get("user").(string)
	return u
}
