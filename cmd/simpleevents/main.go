package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/lib/pq"

	"simpleevents/config"
	_ "simpleevents/docs"
	"simpleevents/internal/adapters/ics"
	"simpleevents/internal/adapters/render"
	httpdelivery "simpleevents/internal/delivery/http"
	"simpleevents/internal/delivery/http/controllers"
	"simpleevents/internal/delivery/http/helpers"
	"simpleevents/internal/delivery/http/middleware"
	"simpleevents/internal/domain"
	"simpleevents/internal/repository/memory"
	"simpleevents/internal/repository/postgres"
	"simpleevents/internal/services"
)

// eventPath prefixes an event id to form its page link.
const eventPath = "/events/"

// @title Simple Events API
// @version 1.0
// @description Event listings, month calendars and iCalendar feeds.
// @BasePath /
func main() {
	var (
		siteConfig = flag.String("site", "", "Path to the site settings YAML (overrides SITE_CONFIG)")
		store      = flag.String("store", "", "Record store: postgres or memory (overrides STORE)")
	)
	flag.Parse()

	logger := config.NewLogger()
	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}
	if *siteConfig != "" {
		cfg.SiteConfig = *siteConfig
	}
	if *store != "" {
		cfg.Store = *store
	}

	site, err := config.LoadSite(cfg.SiteConfig)
	if err != nil {
		logger.Error("load site settings", "path", cfg.SiteConfig, "err", err)
		os.Exit(1)
	}
	logger.Info("effective config",
		"env", cfg.Environment,
		"port", cfg.Port,
		"store", cfg.Store,
		"site", site.Name,
		"timezone", site.Location().String(),
		"event_types", len(site.EventTypes),
		"request_timeout", cfg.RequestTimeout.String(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eventRepo, termRepo, closeStore, err := openStore(ctx, logger, cfg, site)
	if err != nil {
		logger.Error("open store", "store", cfg.Store, "err", err)
		os.Exit(1)
	}
	defer closeStore()

	eventService := services.NewEventService(eventRepo, termRepo, cfg.RequestTimeout)
	calendarService := services.NewCalendarService(eventRepo, termRepo, cfg.RequestTimeout)

	renderer := render.NewRenderer(eventPath)
	scope := helpers.NewScopeFunc(time.Now, site.Location(), site)
	feed := newFeed(site)

	router := httpdelivery.NewRouter(
		controllers.NewEventController(logger, eventService, renderer, feed, scope),
		controllers.NewCalendarController(logger, calendarService, renderer, scope),
		controllers.NewTypeController(logger, eventService),
	)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.AllowedOrigins, router))

	server := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server failed", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
	logger.Info("simpleevents exiting")
}

// newFeed links each feed entry to the same event page the HTML blocks link to.
func newFeed(site *config.SiteSettings) ics.Feed {
	return ics.Feed{
		Name: site.Name,
		EventURL: func(e *domain.Event) string {
			return site.BaseURL + eventPath + e.ID
		},
	}
}

// openStore returns the record store and taxonomy provider selected by cfg,
// seeded with the site's event types.
func openStore(ctx context.Context, logger *slog.Logger, cfg *config.Config, site *config.SiteSettings) (domain.EventRepository, domain.TermRepository, func(), error) {
	if cfg.Store == config.StoreMemory {
		terms := memory.NewTermRepository(domain.Taxonomy, site.Terms())
		return memory.NewEventRepository(terms), terms, func() {}, nil
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return nil, nil, nil, err
	}
	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error("close database", "err", err)
		}
	}
	if err := db.PingContext(ctx); err != nil {
		closeDB()
		return nil, nil, nil, err
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		closeDB()
		return nil, nil, nil, err
	}
	seed := make([]postgres.SeedTerm, 0, len(site.EventTypes))
	for _, t := range site.EventTypes {
		seed = append(seed, postgres.SeedTerm{Slug: t.Slug, Name: t.Name})
	}
	if err := postgres.SeedTerms(ctx, db, domain.Taxonomy, seed); err != nil {
		closeDB()
		return nil, nil, nil, err
	}
	return postgres.NewEventRepository(db), postgres.NewTermRepository(db), closeDB, nil
}
