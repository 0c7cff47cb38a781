// Package render turns view models into HTML pages for echo.
package render

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"kaard/pkg/view"
)

// Tab is one entry of the navigation bar.
type Tab struct {
	Name  string
	Label string
}

var Tabs = []Tab{
	{"dashboard", "Dashboard"},
	{"crops", "Crop Inventory"},
	{"equipment", "Equipment"},
	{"production", "Production"},
	{"vehicles", "Vehicle Tracking"},
}

// Screen is the data every page template receives.
type Screen struct {
	Title string
	User  string
	Tab   string
	Tabs  []Tab
	Body  any
}

type LoginBody struct {
	Username string
	Error    string
}

type ConfirmBody struct {
	Kind     string
	ID       string
	Singular string
}

type VehiclesBody struct {
	Page       view.Page
	Map        view.Overlay
	PollMillis int64
}

type rowAction struct {
	Kind      string
	ID        string
	Singular  string
	Updatable bool
}

type pair struct {
	Header string
	Value  string
	Class  string
}

var funcs = template.FuncMap{
	"quantity": view.FormatQuantity,
	"statusColor": func(status string) template.CSS {
		return template.CSS(view.StatusColor(status))
	},
	"bound": func(f *float64) string {
		if f == nil {
			return ""
		}
		return strconv.FormatFloat(*f, 'f', -1, 64)
	},
	"rowActions": func(p view.Page, r view.Row) rowAction {
		return rowAction{Kind: p.Kind, ID: r.ID, Singular: p.Singular, Updatable: p.Updatable}
	},
	// pairs zips headers and cells starting at column from.
	"pairs": func(headers, cells []string, from int) []pair {
		var out []pair
		for i := from; i < len(headers) && i < len(cells); i++ {
			out = append(out, pair{Header: headers[i], Value: cells[i], Class: strings.ToLower(headers[i])})
		}
		return out
	},
}

var pages = []string{"landing", "login", "dashboard", "resource", "vehicles", "confirm"}

// Renderer implements echo.Renderer. Each page is parsed together with the
// shared layout so the pages can each define their own content block.
type Renderer struct {
	pages map[string]*template.Template
}

func New(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{pages: map[string]*template.Template{}}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(fsys, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("render: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
