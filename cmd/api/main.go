package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/rcs-richcard-demo/internal/api/router"
	appconfig "github.com/wolfman30/rcs-richcard-demo/internal/config"
	"github.com/wolfman30/rcs-richcard-demo/internal/http/handlers"
	"github.com/wolfman30/rcs-richcard-demo/internal/messaging/vonageclient"
	observemetrics "github.com/wolfman30/rcs-richcard-demo/internal/observability/metrics"
	"github.com/wolfman30/rcs-richcard-demo/pkg/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting rcs rich card demo",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	srv, err := buildServer(cfg, logger, prometheus.NewRegistry())
	if err != nil {
		logger.Error("failed to initialise server", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// buildServer validates configuration, reads the private key and wires the
// Vonage client, handlers and router into an http.Server.
func buildServer(cfg *appconfig.Config, logger *logging.Logger, reg *prometheus.Registry) (*http.Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	privateKey, err := cfg.ReadPrivateKey()
	if err != nil {
		return nil, err
	}
	client, err := vonageclient.New(vonageclient.Config{
		BaseURL:       cfg.VonageBaseURL,
		ApplicationID: cfg.VonageApplicationID,
		PrivateKey:    privateKey,
		Logger:        logger.Logger,
	})
	if err != nil {
		return nil, err
	}

	metricsHandler, metrics := setupMessagingMetrics(reg)

	richCard := handlers.NewRichCardHandler(handlers.RichCardConfig{
		Messenger: client,
		SenderID:  cfg.RCSSenderID,
		Logger:    logger,
		Metrics:   metrics,
	})
	inbound := handlers.NewInboundRCSHandler(handlers.InboundRCSConfig{
		Messenger:         client,
		Verifier:          vonageclient.JWTVerifier{},
		SignatureSecret:   cfg.VonageSignatureSecret,
		VerifyPayloadHash: cfg.VerifyPayloadHash,
		SenderID:          cfg.RCSSenderID,
		Logger:            logger,
		Metrics:           metrics,
	})

	r := router.New(&router.Config{
		Logger:             logger,
		RichCardHandler:    richCard,
		InboundHandler:     inbound,
		MetricsHandler:     metricsHandler,
		SendRateLimitRPS:   cfg.SendRateLimitRPS,
		SendRateLimitBurst: cfg.SendRateLimitBurst,
	})

	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, nil
}

func setupMessagingMetrics(reg *prometheus.Registry) (http.Handler, *observemetrics.MessagingMetrics) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observemetrics.NewMessagingMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics
}
