package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rue-joseph-bens/tramboard/internal/app"
	"github.com/rue-joseph-bens/tramboard/internal/appconf"
	"github.com/rue-joseph-bens/tramboard/internal/departures"
	"github.com/rue-joseph-bens/tramboard/internal/gtfsrt"
	"github.com/rue-joseph-bens/tramboard/internal/logging"
	"github.com/rue-joseph-bens/tramboard/internal/restapi"
	"github.com/rue-joseph-bens/tramboard/internal/stib"
	"github.com/rue-joseph-bens/tramboard/internal/utils"
	"github.com/rue-joseph-bens/tramboard/internal/webui"
)

func main() {
	cfg := appconf.Default()
	var envFlag, logLevel, configPath string

	flag.StringVar(&cfg.Host, "host", envOr("HOST", cfg.Host), "Listen host")
	flag.IntVar(&cfg.Port, "port", envIntOr("PORT", cfg.Port), "Listen port")
	flag.StringVar(&envFlag, "env", envOr("TRAMBOARD_ENV", "development"), "Environment (development|test|production)")
	flag.StringVar(&cfg.APIKey, "api-key", os.Getenv("STIB_API_KEY"), "STIB open data API key")
	flag.StringVar(&configPath, "config", os.Getenv("TRAMBOARD_CONFIG"), "Optional YAML config file")
	flag.StringVar(&logLevel, "log-level", envOr("LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")
	flag.Parse()

	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)

	level, err := logging.ParseLevel(logLevel)
	logger := logging.NewStructuredLogger(os.Stdout, level)
	if err != nil {
		logger.Warn("falling back to info level", "error", err)
	}
	slog.SetDefault(logger)

	if configPath != "" {
		if err := appconf.LoadFile(configPath, &cfg); err != nil {
			logging.LogError(logger, "failed to load config file", err, slog.String("path", configPath))
			os.Exit(1)
		}
	}

	application, err := buildApplication(cfg, logger)
	if err != nil {
		logging.LogError(logger, "failed to initialize application", err)
		os.Exit(1)
	}

	api, err := restapi.NewRestAPI(application)
	if err != nil {
		logging.LogError(logger, "failed to initialize API", err)
		os.Exit(1)
	}
	defer api.Shutdown()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      routes(api, webui.NewWebUI(application)),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: time.Duration(len(cfg.Stops)+1) * cfg.UpstreamTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, srv, logger, cfg.Env); err != nil {
		logging.LogError(logger, "server stopped", err)
		os.Exit(1)
	}
}

// buildApplication validates cfg and wires the departures board to the
// configured upstream source.
func buildApplication(cfg appconf.Config, logger *slog.Logger) (*app.Application, error) {
	if len(cfg.Stops) == 0 {
		return nil, errors.New("no stops configured")
	}
	for _, stop := range cfg.Stops {
		if err := utils.ValidateID(stop.PointID); err != nil {
			return nil, fmt.Errorf("stop %q: %w", stop.Name, err)
		}
	}
	if err := utils.ValidateID(cfg.LineID); err != nil {
		return nil, fmt.Errorf("line: %w", err)
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	fetcher, err := newFetcher(cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Source == appconf.SourceSTIB && cfg.APIKey == "" {
		logger.Warn("STIB_API_KEY is not set; upstream requests will be anonymous")
	}

	normalizer := departures.NewNormalizer(fetcher, location, cfg.UpstreamTimeout, logger)

	return &app.Application{
		Config:   cfg,
		Logger:   logger,
		Location: location,
		Board:    departures.NewBoard(normalizer, cfg.Stops, cfg.Limit, logger),
	}, nil
}

func newFetcher(cfg appconf.Config, logger *slog.Logger) (departures.PassageFetcher, error) {
	switch cfg.Source {
	case appconf.SourceSTIB:
		return stib.NewClient(cfg.UpstreamURL, cfg.APIKey, cfg.LineID, cfg.UpstreamTimeout, logger), nil
	case appconf.SourceGTFSRT:
		if cfg.GtfsRtURL == "" {
			return nil, errors.New("a GTFS-realtime feed URL is required")
		}
		fetcher := gtfsrt.NewFetcher(cfg.GtfsRtURL, cfg.LineID, cfg.UpstreamTimeout, logger)
		for key, value := range cfg.GtfsRtHeaders {
			fetcher.Headers[key] = value
		}
		return fetcher, nil
	default:
		return nil, fmt.Errorf("unknown upstream source %q", cfg.Source)
	}
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, logger *slog.Logger, env appconf.Environment) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", env.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
