// sheetcheck fetches the sheet once and reports which rows would be
// excluded from the catalog and why. Run it after editing the sheet.
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"ushuaia_experiences/internal/adapters/observability"
	"ushuaia_experiences/internal/adapters/sheets"
	"ushuaia_experiences/internal/app"
	"ushuaia_experiences/internal/shared"
)

func main() {
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	client, err := sheets.New(ctx, cfg.SheetID, cfg.SheetRange, sheets.Credentials{
		JSON:       cfg.SAJSON,
		Email:      cfg.SAEmail,
		PrivateKey: cfg.SAPrivateKey,
	}, cfg.SheetsRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("sheets client init failed")
	}

	headers, rows, err := client.ReadRows(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("sheet read failed")
	}

	rep := app.Audit(headers, rows)
	for _, d := range rep.Dropped {
		log.Warn().
			Int("row", d.Index).
			Str("id", d.ID).
			Str("title", d.Title).
			Str("reason", d.Reason).
			Msg("row excluded")
	}
	log.Info().
		Int("kept", len(rep.Kept)).
		Int("dropped", len(rep.Dropped)).
		Str("range", cfg.SheetRange).
		Msg("sheet check done")
}
