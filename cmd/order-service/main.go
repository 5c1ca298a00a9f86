// Package main boots the farm co-op order service HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farmcoop/order-service/internal/config"
	httpapi "github.com/farmcoop/order-service/internal/http"
	"github.com/farmcoop/order-service/internal/obs"
	"github.com/farmcoop/order-service/internal/sheets"
)

func main() {
	cfg := config.Load()
	obs.InitLogger()
	obs.Logger.Info("service_starting")

	if cfg.SpreadsheetID == "" || cfg.ClientEmail == "" || cfg.PrivateKey == "" {
		obs.Logger.Error("missing_credentials",
			"hint", "set GOOGLE_SPREADSHEET_ID, GOOGLE_CLIENT_EMAIL and GOOGLE_CLIENT_PRIVATE_KEY")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := sheets.NewClient(ctx, cfg.ClientEmail, cfg.PrivateKey)
	if err != nil {
		obs.Logger.Error("sheets_client_error", "error", err)
		os.Exit(1)
	}
	spreadsheet := sheets.New(client, cfg.SpreadsheetID, cfg.LockRetryInterval, cfg.LockWaitBudget)

	app := httpapi.NewApp(spreadsheet)
	mux := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	// In-flight order writes get the shutdown budget to finish and release
	// the spreadsheet lock before the listener is torn down.
	ctxSrv, cancelSrv := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelSrv()
	if err := srv.Shutdown(ctxSrv); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	obs.Logger.Info("service_stopped")
}
