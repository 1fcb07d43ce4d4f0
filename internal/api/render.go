package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"reservewise/internal/entities"
	"reservewise/internal/table"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"login.html", "dashboard.html", "customers.html", "reservations.html"}

// Toast is a transient notice shown at the top of a page.
type Toast struct {
	Title       string
	Description string
	Error       bool
}

type NavItem struct {
	Label  string
	Href   string
	Active bool
}

var navItems = []NavItem{
	{Label: "Dashboard", Href: "/dashboard"},
	{Label: "Clientes", Href: "/clientes"},
	{Label: "Reservas", Href: "/reservas"},
}

// Nav marks the section owning path as active. Sub-paths belong to their
// section.
func Nav(path string) []NavItem {
	out := make([]NavItem, len(navItems))
	for i, it := range navItems {
		it.Active = path == it.Href || strings.HasPrefix(path, it.Href+"/")
		out[i] = it
	}
	return out
}

// Page is what every template receives.
type Page struct {
	Title string
	Nav   []NavItem
	User  *entities.User
	Toast *Toast
	// Alert is a blocking message the browser shows before anything else.
	Alert string
	Data  any
}

type Renderer struct {
	pages  map[string]*template.Template
	logger *slog.Logger
}

var funcs = template.FuncMap{
	// q marks an encoded query string as safe so "&" and "=" survive.
	"q":          func(s string) template.URL { return template.URL(s) },
	"checkState": func(s table.CheckState) string { return s.String() },
	"percent": func(n, top int) int {
		if top <= 0 {
			return 0
		}
		return n * 100 / top
	},
}

func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pages)), logger: logger}
	for _, p := range pages {
		t, err := template.New(p).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/partials.html", "templates/"+p)
		if err != nil {
			return nil, fmt.Errorf("error parsing template %s: %w", p, err)
		}
		r.pages[p] = t
	}
	return r, nil
}

// Render executes page into a buffer first so a template failure never
// leaves a half-written response.
func (rd *Renderer) Render(w http.ResponseWriter, status int, page string, data Page) {
	t, ok := rd.pages[page]
	if !ok {
		rd.logger.Error("unknown page", "page", page)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		rd.logger.Error("error rendering page", "page", page, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
