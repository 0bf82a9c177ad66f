// internal/adapters/http_server/views.go
package httpserver

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"ushuaia_experiences/internal/domain"
	"ushuaia_experiences/internal/format"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.New("").Funcs(template.FuncMap{
	"ars": format.ARS,
	"first": func(xs []string) string {
		if len(xs) > 0 {
			return xs[0]
		}
		return ""
	},
	"rest": func(xs []string) []string {
		if len(xs) > 1 {
			return xs[1:]
		}
		return nil
	},
	"num": func(f *float64) string {
		if f == nil {
			return ""
		}
		return strconv.FormatFloat(*f, 'f', -1, 64)
	},
	"or2": func(s, fallback string) string {
		if s != "" {
			return s
		}
		return fallback
	},
}).ParseFS(templateFS, "templates/*.html"))

type listingData struct {
	Items      []domain.Experience
	Query      string
	Category   string
	Season     string
	Contact    string
	Categories []string
	Seasons    []string
}

type detailData struct {
	Item *domain.Experience
	CTA  cta
}

// select options match the sheet's category/season vocabulary
var (
	categoryOptions = []string{"Aventura", "Navegación", "Naturaleza", "Cultura", "Nieve"}
	seasonOptions   = []string{"Todo el año", "Verano", "Invierno", "Otoño", "Primavera"}
)

func renderPage(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render failed")
	}
}

func renderListing(w http.ResponseWriter, d listingData) {
	d.Categories = categoryOptions
	d.Seasons = seasonOptions
	renderPage(w, http.StatusOK, "listing.html", d)
}

func renderDetail(w http.ResponseWriter, d detailData) {
	renderPage(w, http.StatusOK, "detail.html", d)
}

func renderNotFound(w http.ResponseWriter) {
	renderPage(w, http.StatusNotFound, "notfound.html", nil)
}

func renderError(w http.ResponseWriter) {
	renderPage(w, http.StatusInternalServerError, "error.html", nil)
}
