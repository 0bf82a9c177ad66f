// internal/adapters/sheets/client.go
package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"ushuaia_experiences/internal/adapters/observability"
)

var (
	ErrMissingSheetID     = errors.New("sheets: sheet id is required")
	ErrMissingCredentials = errors.New("sheets: no service account credentials configured")
)

// Credentials carries the service-account material. JSON is the single-blob
// form and takes precedence; Email/PrivateKey is the discrete-pair fallback.
type Credentials struct {
	JSON       string
	Email      string
	PrivateKey string
}

// config resolves the two configuration variants into one JWT config with
// read-only spreadsheet scope.
func (c Credentials) config() (*jwt.Config, error) {
	if c.JSON != "" {
		return google.JWTConfigFromJSON([]byte(c.JSON), gsheets.SpreadsheetsReadonlyScope)
	}
	if c.Email == "" || c.PrivateKey == "" {
		return nil, ErrMissingCredentials
	}
	// env vars often carry the key with literal \n escapes
	key := strings.ReplaceAll(c.PrivateKey, `\n`, "\n")
	return &jwt.Config{
		Email:      c.Email,
		PrivateKey: []byte(key),
		Scopes:     []string{gsheets.SpreadsheetsReadonlyScope},
		TokenURL:   google.JWTTokenURL,
	}, nil
}

// Client reads one configured range from one configured spreadsheet.
type Client struct {
	svc       *gsheets.Service
	sheetID   string
	readRange string
	rl        *rate.Limiter
}

func New(ctx context.Context, sheetID, readRange string, creds Credentials, rps int) (*Client, error) {
	if sheetID == "" {
		return nil, ErrMissingSheetID
	}
	conf, err := creds.config()
	if err != nil {
		return nil, err
	}
	svc, err := gsheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return NewWithService(svc, sheetID, readRange, rps), nil
}

// NewWithService wires a prebuilt Sheets service; tests use it to point the
// client at a fake backend.
func NewWithService(svc *gsheets.Service, sheetID, readRange string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		svc:       svc,
		sheetID:   sheetID,
		readRange: readRange,
		rl:        rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// ReadRows performs the range query and splits off the header row.
// Cells come back unformatted (numbers as numbers, dates as strings).
// A sheet with no rows at all yields nil headers and rows with no error.
func (c *Client) ReadRows(ctx context.Context) ([]string, [][]any, error) {
	// client-side rate limiting to stay under the Sheets read quota
	if err := c.rl.Wait(ctx); err != nil {
		return nil, nil, err
	}

	start := time.Now()
	resp, err := c.svc.Spreadsheets.Values.Get(c.sheetID, c.readRange).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	observability.ObserveExternal("sheets", "values.get", statusOf(err), time.Since(start))
	if err != nil {
		return nil, nil, fmt.Errorf("sheets read: %w", err)
	}

	if len(resp.Values) == 0 {
		return nil, nil, nil
	}
	headers := make([]string, 0, len(resp.Values[0]))
	for _, h := range resp.Values[0] {
		headers = append(headers, strings.TrimSpace(fmt.Sprint(h)))
	}
	return headers, resp.Values[1:], nil
}

func statusOf(err error) int {
	if err == nil {
		return 200
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	return 0
}
