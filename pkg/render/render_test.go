package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kaard/pkg/view"
	"kaard/web"
)

func renderDoc(t *testing.T, name string, data Screen) *goquery.Document {
	t.Helper()
	r, err := New(web.Templates)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, name, data, nil))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestRender_UnknownPage(t *testing.T) {
	r, err := New(web.Templates)
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "nope", Screen{}, nil))
}

func TestRender_LoginHidesNavigation(t *testing.T) {
	doc := renderDoc(t, "login", Screen{Title: "Login", Body: LoginBody{Username: "admin", Error: "Invalid username or password"}})

	assert.Zero(t, doc.Find("nav").Length())
	assert.Equal(t, "Invalid username or password", doc.Find(".error-message").Text())
	assert.Equal(t, "admin", doc.Find("#username").AttrOr("value", ""))
}

func TestRender_ResourceRowsAndActions(t *testing.T) {
	page := view.Page{
		Kind:      "production",
		Title:     "Production Tracking",
		Singular:  "Production Record",
		ListTitle: "Production Records",
		Headers:   []string{"Field", "Crop Type"},
		Rows:      []view.Row{{ID: "p1", Cells: []string{"A1", "Maize"}}},
		Count:     1,
		Loaded:    true,
	}
	doc := renderDoc(t, "resource", Screen{Title: "Production", User: "admin", Tab: "production", Tabs: Tabs, Body: page})

	assert.Equal(t, len(Tabs), doc.Find("nav a").Length())
	assert.Equal(t, "Production", strings.TrimSpace(doc.Find("nav a.active").Text()))
	assert.Equal(t, "Production Records (1)", doc.Find(".table-container h3").Text())
	assert.Equal(t, "p1", doc.Find("tbody tr").AttrOr("data-id", ""))
	assert.Zero(t, doc.Find(".btn-edit").Length())
	assert.Equal(t, "/production/p1/delete", doc.Find("tbody form").AttrOr("action", ""))
}

func TestRender_FormKeepsValuesAndShowsError(t *testing.T) {
	page := view.Page{
		Kind:      "crops",
		Singular:  "Crop",
		Composing: true,
		Editing:   true,
		FormError: "Quantity must be a number",
		Form: []view.FormField{
			{Field: view.Field{Key: "cropName", Label: "Crop Name", Kind: view.Text, Required: true}, Value: "Maize"},
			{Field: view.Field{Key: "unit", Label: "Unit", Kind: view.Enum, Default: "kg", Options: []view.Option{
				{Value: "kg", Label: "Kilograms (kg)"}, {Value: "tons", Label: "Tons"},
			}}, Value: "tons"},
		},
	}
	doc := renderDoc(t, "resource", Screen{User: "admin", Tabs: Tabs, Body: page})

	assert.Equal(t, "Edit Crop", doc.Find(".form-container h3").Text())
	assert.Equal(t, "Quantity must be a number", doc.Find(".form-error").Text())
	assert.Equal(t, "Maize", doc.Find("input[name=cropName]").AttrOr("value", ""))
	assert.Equal(t, "tons", doc.Find("select[name=unit] option[selected]").AttrOr("value", ""))
	assert.Equal(t, 2, doc.Find("select[name=unit] option").Length())
	assert.Equal(t, "Update", strings.TrimSpace(doc.Find(".form-actions button").Text()))
}
