package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	server "ushuaia_experiences/internal/adapters/http_server"
	"ushuaia_experiences/internal/app"
	"ushuaia_experiences/internal/domain"
)

// ---- fakes ----

type fakeCatalog struct {
	items  []domain.Experience
	cached bool
	err    error
}

func (f *fakeCatalog) List(ctx context.Context) ([]domain.Experience, bool, error) {
	return f.items, f.cached, f.err
}

func active(b bool) *bool { return &b }

func newTestServer(c domain.Catalog) *httptest.Server {
	srv := server.New()
	srv.MountHandlers(&server.Handlers{
		Catalog:       c,
		ContactEmail:  "hola@example.com",
		WhatsAppPhone: "5492901000000",
	})
	return httptest.NewServer(srv.Mux())
}

func catalogRows() []domain.Experience {
	// what Normalize produces for the reference sheet rows
	return app.Normalize(
		[]string{"id", "title", "isActive", "category", "season", "bookingType", "checkoutUrl", "description", "priceAdultARS"},
		[][]any{
			{"x1", "Beagle Channel", "true", "Navegación", "Todo el año", "instant", "https://pay.example.com/x1", "Faro y lobos marinos", float64(15000)},
			{"x2", "", "true"},
			{"x3", "Trek", "false"},
			{"x4", "Laguna Esmeralda", "true", "Aventura", "Verano", "consult", "", "Caminata guiada", nil},
			{"x5", "City Tour", "true", "Cultura", "Todo el año", "instant", "", "Recorrido urbano", float64(8000)},
		},
	)
}

// ---- /api/experiences ----

func TestAPIExperiences_OK(t *testing.T) {
	ts := newTestServer(&fakeCatalog{items: catalogRows(), cached: false})
	defer ts.Close()

	res, err := http.Get(ts.URL + "/api/experiences")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var body struct {
		Count  int                 `json:"count"`
		Items  []domain.Experience `json:"items"`
		Cached bool                `json:"cached"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 3 || len(body.Items) != 3 {
		t.Fatalf("expected the three includable rows, got %+v", body)
	}
	if body.Items[0].ID != "x1" || body.Items[1].ID != "x4" || body.Items[2].ID != "x5" {
		t.Fatalf("row order: %+v", body.Items)
	}
	if body.Items[0].IsActive == nil || !*body.Items[0].IsActive {
		t.Fatalf("isActive lost in transit: %+v", body.Items[0])
	}
	if body.Cached {
		t.Fatalf("cached flag should be false")
	}
}

func TestAPIExperiences_CachedFlagAndEmptyItems(t *testing.T) {
	ts := newTestServer(&fakeCatalog{items: nil, cached: true})
	defer ts.Close()

	res, err := http.Get(ts.URL + "/api/experiences")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()

	var body map[string]json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(body["items"]) != "[]" {
		t.Fatalf(`items must serialize as [], got %s`, body["items"])
	}
	if string(body["cached"]) != "true" {
		t.Fatalf("cached flag: %s", body["cached"])
	}
	if string(body["count"]) != "0" {
		t.Fatalf("count: %s", body["count"])
	}
}

func TestAPIExperiences_SheetsReadError(t *testing.T) {
	ts := newTestServer(&fakeCatalog{err: errors.New("googleapi: Error 403: permission denied")})
	defer ts.Close()

	res, err := http.Get(ts.URL + "/api/experiences")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status %d", res.StatusCode)
	}

	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "SHEETS_READ_ERROR" {
		t.Fatalf("error code: %q", body.Error)
	}
	if !strings.Contains(body.Message, "permission denied") {
		t.Fatalf("upstream message lost: %q", body.Message)
	}
}

func TestAPIExperiences_ETagRevalidation(t *testing.T) {
	ts := newTestServer(&fakeCatalog{items: catalogRows()})
	defer ts.Close()

	res, err := http.Get(ts.URL + "/api/experiences")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	etag := res.Header.Get("ETag")
	if etag == "" {
		t.Fatalf("expected an ETag")
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/experiences", nil)
	req.Header.Set("If-None-Match", etag)
	res2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res2.Body.Close()
	if res2.StatusCode != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", res2.StatusCode)
	}
}

// ---- pages ----

func TestListingPage_FiltersViaQueryParams(t *testing.T) {
	ts := newTestServer(&fakeCatalog{items: catalogRows()})
	defer ts.Close()

	res, err := http.Get(ts.URL + "/?q=beagle")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	html := readAll(t, res)
	if !strings.Contains(html, "Beagle Channel") {
		t.Fatalf("matching card missing")
	}
	if strings.Contains(html, "Laguna Esmeralda") {
		t.Fatalf("filtered-out card rendered")
	}
	if !strings.Contains(html, "15.000") {
		t.Fatalf("formatted price missing")
	}
}

func TestListingPage_WildcardShowsEverything(t *testing.T) {
	ts := newTestServer(&fakeCatalog{items: catalogRows()})
	defer ts.Close()

	res, err := http.Get(ts.URL + "/?category=Todas&season=Todas")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	html := readAll(t, res)
	if !strings.Contains(html, "Beagle Channel") || !strings.Contains(html, "Laguna Esmeralda") {
		t.Fatalf("wildcard listing incomplete")
	}
	// consult-type gets the secondary button, instant gets the buy one
	if !strings.Contains(html, "Comprar ahora") || !strings.Contains(html, "Consultar") {
		t.Fatalf("booking buttons missing")
	}
}

func TestDetailPage_InstantCheckout(t *testing.T) {
	ts := newTestServer(&fakeCatalog{items: catalogRows()})
	defer ts.Close()

	res, err := http.Get(ts.URL + "/experience/x1")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	html := readAll(t, res)
	if !strings.Contains(html, "Beagle Channel") {
		t.Fatalf("title missing")
	}
	if !strings.Contains(html, "https://pay.example.com/x1") {
		t.Fatalf("instant booking must link the checkout URL")
	}
}

func TestDetailPage_ConsultGoesToWhatsApp(t *testing.T) {
	ts := newTestServer(&fakeCatalog{items: catalogRows()})
	defer ts.Close()

	res, err := http.Get(ts.URL + "/experience/x4")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	html := readAll(t, res)
	if !strings.Contains(html, "wa.me/5492901000000") {
		t.Fatalf("consult CTA must be a WhatsApp link")
	}
	if !strings.Contains(html, "A consultar") {
		t.Fatalf("nil price must render the fallback text")
	}
}

func TestDetailPage_InstantWithoutCheckoutFallsBackToEmail(t *testing.T) {
	ts := newTestServer(&fakeCatalog{items: catalogRows()})
	defer ts.Close()

	res, err := http.Get(ts.URL + "/experience/x5")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if html := readAll(t, res); !strings.Contains(html, "mailto:hola@example.com") {
		t.Fatalf("instant booking without a checkout URL must fall back to email")
	}
}

func TestDetailPage_NotFound(t *testing.T) {
	ts := newTestServer(&fakeCatalog{items: catalogRows()})
	defer ts.Close()

	res, err := http.Get(ts.URL + "/experience/zzz")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d", res.StatusCode)
	}
	if html := readAll(t, res); !strings.Contains(html, "Volver") {
		t.Fatalf("not-found state needs a way back to the listing")
	}
}

func TestListingPage_FetchFailureRendersErrorState(t *testing.T) {
	ts := newTestServer(&fakeCatalog{err: errors.New("backend down")})
	defer ts.Close()

	res, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status %d", res.StatusCode)
	}
	if html := readAll(t, res); !strings.Contains(html, "Algo salió mal") {
		t.Fatalf("error page not rendered")
	}
}

func readAll(t *testing.T, res *http.Response) string {
	t.Helper()
	var sb strings.Builder
	if _, err := io.Copy(&sb, res.Body); err != nil {
		t.Fatalf("read body: %v", err)
	}
	return sb.String()
}
