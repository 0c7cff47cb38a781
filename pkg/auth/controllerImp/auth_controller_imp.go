package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kaard/pkg/auth/controller"
	"kaard/pkg/farmapi"
	"kaard/pkg/render"
	"kaard/pkg/session/service"
	"kaard/pkg/shell"
)

type authCtrl struct {
	sess  service.SessionService
	shell *shell.Shell
	log   *zap.Logger
}

func NewAuthController(sess service.SessionService, sh *shell.Shell, log *zap.Logger) controller.AuthController {
	if log == nil {
		log = zap.NewNop()
	}
	return &authCtrl{sess: sess, shell: sh, log: log}
}

func (h *authCtrl) Landing(c echo.Context) error {
	return c.Render(http.StatusOK, "landing", render.Screen{Title: "Welcome"})
}

func (h *authCtrl) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login", render.Screen{Title: "Login", Body: render.LoginBody{}})
}

// Login keeps the username on failure and always clears the password.
func (h *authCtrl) Login(c echo.Context) error {
	ctx := c.Request().Context()
	username := c.FormValue("username")
	password := c.FormValue("password")

	if err := h.sess.SignIn(ctx, username, password); err != nil {
		h.log.Info("login rejected", zap.String("username", username), zap.Error(err))
		body := render.LoginBody{Username: username, Error: loginMessage(err)}
		return c.Render(http.StatusOK, "login", render.Screen{Title: "Login", Body: body})
	}
	if err := h.shell.Navigate(ctx, shell.Dashboard); err != nil {
		h.log.Warn("open dashboard after login", zap.Error(err))
	}
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *authCtrl) Logout(c echo.Context) error {
	if err := h.shell.Logout(c.Request().Context()); err != nil {
		h.log.Error("logout", zap.Error(err))
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func loginMessage(err error) string {
	var ae *farmapi.AuthError
	switch {
	case errors.Is(err, service.ErrMissingCredentials):
		return "Please enter username and password"
	case errors.As(err, &ae):
		return ae.Message
	}
	return "Failed to connect to server"
}
