// Package web holds the embedded HTML templates and the gin renderer that
// serves them.
package web

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin/render"

	"expensetracker/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Renderer.Instance.
const (
	PageLogin      = "login"
	PageRegister   = "register"
	PageHome       = "home"
	PageGraphs     = "graphs"
	PageCategories = "categories"
	PageExpenses   = "expenses"
	PageProfile    = "profile"
	PageHelp       = "help"
	PageAbout      = "about"
	PageError      = "error"
)

var pages = []string{
	PageLogin, PageRegister, PageHome, PageGraphs, PageCategories,
	PageExpenses, PageProfile, PageHelp, PageAbout, PageError,
}

const layoutFile = "templates/layout.html"

// Renderer implements gin's render.HTMLRender. Every page is parsed into
// its own template set together with the shared layout so pages can each
// define "content" and "scripts".
type Renderer struct {
	templates map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

// NewRenderer parses all embedded pages.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New(page).
			Funcs(Funcs()).
			ParseFS(templateFS, layoutFile, "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

// Instance returns the render for the named page. Unknown names fall back
// to the error page.
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.templates[name]
	if !ok {
		logger.Get().Errorw("unknown page template", "page", name)
		t = r.templates[PageError]
	}
	return render.HTML{Template: t, Name: "layout", Data: data}
}
