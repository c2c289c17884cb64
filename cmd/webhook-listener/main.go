// Command webhook-listener is a minimal receiver for coinpay webhook
// notifications: it verifies each inbound request against the shared
// secret and logs the accepted events. Intended as a deployable example
// of wiring the SDK's verifier into an HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/coinpay/coinpay-go/internal/config"
	"github.com/coinpay/coinpay-go/pkg/gateway"
	"github.com/coinpay/coinpay-go/pkg/logging"
	"github.com/coinpay/coinpay-go/pkg/signing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger, err := logging.NewZapLogger(logging.LogConfig{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Prefix: "webhook-listener",
	})
	if err != nil {
		os.Stderr.WriteString("failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}

	verifier := signing.NewVerifier(cfg.Secret,
		signing.WithReplayWindow(cfg.ReplayWindow),
		signing.WithVerifierLogger(logger),
	)

	router := mux.NewRouter()
	router.Handle("/webhooks/coinpay", gateway.WebhookHandler(verifier, func(event *signing.WebhookEvent) {
		logger.Info("notification received",
			logging.String("notify_type", event.NotifyType),
			logging.String("nonce", event.Nonce),
		)
	}, logger)).Methods(http.MethodPost)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("webhook listener starting", logging.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", err)
	}
}
