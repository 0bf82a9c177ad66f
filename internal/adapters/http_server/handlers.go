// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"ushuaia_experiences/internal/app"
	"ushuaia_experiences/internal/domain"
)

type Handlers struct {
	Catalog       domain.Catalog
	ContactEmail  string
	WhatsAppPhone string
}

type experiencesResponse struct {
	Count  int                 `json:"count"`
	Items  []domain.Experience `json:"items"`
	Cached bool                `json:"cached"`
}

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/api/experiences", h.listExperiences)
	s.mux.Get("/", h.listingPage)
	s.mux.Get("/experience/{id}", h.detailPage)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(apiError{Error: code, Message: message}); err != nil {
		log.Error().Err(err).Msg("write JSON error response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) listExperiences(w http.ResponseWriter, r *http.Request) {
	items, cached, err := h.Catalog.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("sheet fetch failed")
		writeAPIError(w, http.StatusInternalServerError, "SHEETS_READ_ERROR", err.Error())
		return
	}
	if items == nil {
		items = []domain.Experience{}
	}
	resp := experiencesResponse{Count: len(items), Items: items, Cached: cached}

	etag, body := calcETagAndBody(resp)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write listExperiences body")
	}
}

func (h *Handlers) listingPage(w http.ResponseWriter, r *http.Request) {
	items, _, err := h.Catalog.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("sheet fetch failed")
		renderError(w)
		return
	}

	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")
	season := r.URL.Query().Get("season")

	renderListing(w, listingData{
		Items:    app.Filter(items, q, category, season),
		Query:    q,
		Category: category,
		Season:   season,
		Contact:  h.ContactEmail,
	})
}

func (h *Handlers) detailPage(w http.ResponseWriter, r *http.Request) {
	items, _, err := h.Catalog.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("sheet fetch failed")
		renderError(w)
		return
	}

	id := chi.URLParam(r, "id")
	item := app.FindByID(items, id)
	if item == nil {
		renderNotFound(w)
		return
	}
	renderDetail(w, detailData{Item: item, CTA: h.buildCTA(item)})
}

// cta is the purchase/consult affordance on the detail page.
type cta struct {
	Label     string
	URL       string
	Secondary bool
}

// buildCTA picks the flow: direct checkout for instant bookings with a
// link, email fallback for instant without one, WhatsApp for consult.
func (h *Handlers) buildCTA(e *domain.Experience) cta {
	switch {
	case e.BookingType == "instant" && e.CheckoutURL != "":
		return cta{Label: "Comprar ahora", URL: e.CheckoutURL}
	case e.BookingType == "instant":
		subject := strings.ReplaceAll(url.QueryEscape("Compra "+e.Title), "+", "%20")
		return cta{Label: "Comprar (por email)", URL: "mailto:" + h.ContactEmail + "?subject=" + subject}
	default:
		msg := url.QueryEscape(fmt.Sprintf("Hola! Quiero información sobre: %s (%s).", e.Title, e.ID))
		return cta{Label: "Consultar por WhatsApp", URL: "https://wa.me/" + h.WhatsAppPhone + "?text=" + msg, Secondary: true}
	}
}
