package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	server "ushuaia_experiences/internal/adapters/http_server"
	"ushuaia_experiences/internal/adapters/observability"
	"ushuaia_experiences/internal/adapters/sheets"
	"ushuaia_experiences/internal/app"
	"ushuaia_experiences/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// sheets client
	client, err := sheets.New(context.Background(), cfg.SheetID, cfg.SheetRange, sheets.Credentials{
		JSON:       cfg.SAJSON,
		Email:      cfg.SAEmail,
		PrivateKey: cfg.SAPrivateKey,
	}, cfg.SheetsRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("sheets client init failed")
	}

	// deps
	catalog := app.NewCatalogService(client, cfg.CacheTTL)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Catalog:       catalog,
		ContactEmail:  cfg.ContactEmail,
		WhatsAppPhone: cfg.WhatsAppPhone,
	})

	log.Info().Str("addr", cfg.HTTPAddr).Str("range", cfg.SheetRange).Msg("catalog listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
