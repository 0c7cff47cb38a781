package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"kaard/pkg/export"
	"kaard/pkg/middleware"
	"kaard/pkg/render"
	"kaard/pkg/resource/controller"
	"kaard/pkg/shell"
	"kaard/pkg/view"
)

// ResourceCtrl drives a CRUD view over HTTP. Every action redirects back to
// the list so a reload never repeats a write.
type ResourceCtrl[T any] struct {
	shell *shell.Shell
	page  shell.PageName
	view  *view.CRUDView[T]
	log   *zap.Logger

	// body builds the template data; vehicles wrap the page with the map.
	template string
	body     func(view.Page) any
}

type Option[T any] func(*ResourceCtrl[T])

// WithTemplate renders the list with another page template.
func WithTemplate[T any](name string, body func(view.Page) any) Option[T] {
	return func(h *ResourceCtrl[T]) {
		h.template = name
		h.body = body
	}
}

func New[T any](sh *shell.Shell, page shell.PageName, v *view.CRUDView[T], log *zap.Logger, opts ...Option[T]) *ResourceCtrl[T] {
	if log == nil {
		log = zap.NewNop()
	}
	h := &ResourceCtrl[T]{
		shell:    sh,
		page:     page,
		view:     v,
		log:      log.With(zap.String("page", string(page))),
		template: "resource",
		body:     func(p view.Page) any { return p },
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

var _ controller.ResourceController = (*ResourceCtrl[struct{}])(nil)

// editIDField carries the record being edited so a reset form can be reopened.
const editIDField = "editId"

const formReset = "This form was reset before it was saved. Check the values and submit again."

// refusal words a refused form action for the notice bar.
func refusal(err error) string {
	switch {
	case errors.Is(err, view.ErrUnknownRecord):
		return "That record is no longer in the list."
	case errors.Is(err, view.ErrReadOnly):
		return "These records cannot be edited."
	case errors.Is(err, view.ErrInvalidTransition):
		return "Finish or cancel the open form first."
	}
	return err.Error()
}

func (h *ResourceCtrl[T]) Kind() string { return string(h.page) }

func (h *ResourceCtrl[T]) back(c echo.Context) error {
	return c.Redirect(http.StatusSeeOther, "/"+h.Kind())
}

func (h *ResourceCtrl[T]) mount(c echo.Context, fresh bool) error {
	ctx := c.Request().Context()
	if fresh {
		return h.shell.Navigate(ctx, h.page)
	}
	return h.shell.Ensure(ctx, h.page)
}

// guard mounts the page and runs fn, mapping a lost session to the login page.
func (h *ResourceCtrl[T]) guard(c echo.Context, fresh bool, fn func() error) error {
	if err := h.mount(c, fresh); err != nil {
		if errors.Is(err, shell.ErrNotAuthenticated) {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return err
	}
	return fn()
}

func (h *ResourceCtrl[T]) List(c echo.Context) error {
	return h.guard(c, c.QueryParam("open") != "", func() error {
		p := h.view.Present()
		return c.Render(http.StatusOK, h.template, render.Screen{
			Title: p.Title,
			User:  middleware.User(c),
			Tab:   h.Kind(),
			Tabs:  render.Tabs,
			Body:  h.body(p),
		})
	})
}

func (h *ResourceCtrl[T]) Add(c echo.Context) error {
	return h.guard(c, false, func() error {
		if err := h.view.Add(); err != nil {
			h.log.Debug("add refused", zap.Error(err))
			h.view.SetNotice(refusal(err))
		}
		return h.back(c)
	})
}

func (h *ResourceCtrl[T]) Edit(c echo.Context) error {
	return h.guard(c, false, func() error {
		if err := h.view.Edit(c.Param("id")); err != nil {
			h.log.Debug("edit refused", zap.String("id", c.Param("id")), zap.Error(err))
			h.view.SetNotice(refusal(err))
		}
		return h.back(c)
	})
}

func (h *ResourceCtrl[T]) Cancel(c echo.Context) error {
	return h.guard(c, false, func() error {
		if err := h.view.Cancel(); err != nil {
			h.log.Debug("cancel refused", zap.Error(err))
			h.view.SetNotice("There is no open form to cancel.")
		}
		return h.back(c)
	})
}

// Submit reads the declared fields from the posted form. Failures are shown
// inline by the view. When the page was remounted under the form, the posted
// values are put back into a reopened form instead of being dropped.
func (h *ResourceCtrl[T]) Submit(c echo.Context) error {
	return h.guard(c, false, func() error {
		d := view.Draft{}
		for _, f := range h.view.Descriptor().Fields {
			d[f.Key] = c.FormValue(f.Key)
		}
		err := h.view.Submit(c.Request().Context(), d)
		switch {
		case errors.Is(err, view.ErrInvalidTransition):
			id := c.FormValue(editIDField)
			h.log.Warn("form was reset before submit", zap.String("id", id))
			if rerr := h.view.Restore(d, id, formReset); rerr != nil {
				h.view.SetNotice("Your changes were not saved: " + refusal(rerr))
			}
		case errors.Is(err, view.ErrSubmitInProgress):
			h.view.SetNotice("Still saving, please wait.")
		case err != nil:
			h.log.Debug("submit failed", zap.Error(err))
		}
		return h.back(c)
	})
}

// Delete asks for confirmation unless the form carries confirm=true.
func (h *ResourceCtrl[T]) Delete(c echo.Context) error {
	return h.guard(c, false, func() error {
		id := c.Param("id")
		err := h.view.Delete(c.Request().Context(), id, c.FormValue("confirm") == "true")
		if errors.Is(err, view.ErrNotConfirmed) {
			desc := h.view.Descriptor()
			return c.Render(http.StatusOK, "confirm", render.Screen{
				Title: "Confirm delete",
				User:  middleware.User(c),
				Tab:   h.Kind(),
				Tabs:  render.Tabs,
				Body:  render.ConfirmBody{Kind: h.Kind(), ID: id, Singular: desc.Singular},
			})
		}
		return h.back(c)
	})
}

// Export downloads the list currently on screen.
func (h *ResourceCtrl[T]) Export(c echo.Context) error {
	return h.guard(c, false, func() error {
		b, err := export.XLSX(h.view.Present())
		if err != nil {
			h.log.Error("export", zap.Error(err))
			h.view.SetNotice("Could not export: " + err.Error())
			return h.back(c)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+export.FileName(h.Kind())+`"`)
		return c.Blob(http.StatusOK, export.ContentType, b)
	})
}
