// Package view renders the HTML pages. Templates are compiled once at
// startup from the embedded filesystem; every page shares the layout.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"roomdesk/internal/models"
	"roomdesk/internal/session"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Static is the embedded asset tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page carries the fields every template needs: who is looking and what
// notifications are pending.
type Page struct {
	Title   string
	User    *models.User
	Flashes []session.Flash
}

// IsAdmin reports whether the viewer gets the admin controls.
func (p Page) IsAdmin() bool {
	return p.User.IsAdmin()
}

var funcs = template.FuncMap{
	"fmtTime": func(t time.Time) string {
		return t.Local().Format("Jan 2, 2006 15:04")
	},
	"fmtDay": func(t time.Time) string {
		return t.Local().Format("Jan 2, 2006")
	},
	"inputTime": func(t time.Time) string {
		return t.Local().Format("2006-01-02T15:04")
	},
	"join": strings.Join,
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer compiles layout + every page under templates/pages.
func NewRenderer() (*Renderer, error) {
	pages, err := fs.Glob(templatesFS, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, page := range pages {
		name := path.Base(page)
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Render writes the named page. Unknown names are a programming error.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}
