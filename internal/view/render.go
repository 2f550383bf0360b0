package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin/render"
)

//go:embed all:templates
var templatesFS embed.FS

const layoutName = "layout"

var functions = template.FuncMap{
	"indent": func(depth int) string {
		return strings.Repeat("— ", depth)
	},
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04")
	},
	"categoryURL": CategoryURL,
}

// Renderer holds one template set per page: the shared layout, panel widget
// and partials plus the page's own content block.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	base, err := template.New(layoutName).Funcs(functions).ParseFS(templatesFS,
		"templates/layout.html",
		"templates/panel.html",
		"templates/*/_*.html",
	)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pageFiles, err := fs.Glob(templatesFS, "templates/*/[^_]*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(pageFiles))}
	for _, file := range pageFiles {
		name := strings.TrimSuffix(strings.TrimPrefix(file, "templates/"), path.Ext(file))
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templatesFS, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page through the layout.
func (r *Renderer) Render(w io.Writer, page Page) error {
	t, ok := r.pages[page.Name]
	if !ok {
		return fmt.Errorf("unknown view %q", page.Name)
	}
	return t.ExecuteTemplate(w, layoutName, page)
}

// Instance implements gin's render.HTMLRender so handlers can call c.HTML
// with the page name.
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		return render.Data{
			ContentType: "text/plain; charset=utf-8",
			Data:        []byte(http.StatusText(http.StatusInternalServerError)),
		}
	}
	return render.HTML{Template: t, Name: layoutName, Data: data}
}
