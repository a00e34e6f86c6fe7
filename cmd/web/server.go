package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gndzkrkc.com/site/internal/config"
	"gndzkrkc.com/site/internal/content"
	"gndzkrkc.com/site/internal/handlers"
	"gndzkrkc.com/site/internal/i18n"
	mw "gndzkrkc.com/site/internal/middleware"
	"gndzkrkc.com/site/internal/routing"
	"gndzkrkc.com/site/internal/sitemap"
)

// server wires the route table, messages, content and templates together.
type server struct {
	cfg     config.Config
	logger  *slog.Logger
	neg     *routing.Negotiator
	msgs    *i18n.Bundle
	pages   *content.Store
	views   *handlers.Views
	sitemap *sitemap.Builder
	tmpl    *renderer
}

func newServer(cfg config.Config, logger *slog.Logger) (*server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	table, err := loadTable(cfg.RoutesFile, logger)
	if err != nil {
		return nil, err
	}
	neg, err := routing.NewNegotiator(table, cfg.Policy)
	if err != nil {
		return nil, err
	}
	msgs, err := i18n.Load(cfg.LocalesDir, table.DefaultLocale(), table.Locales())
	if err != nil {
		return nil, fmt.Errorf("load messages: %w", err)
	}
	tmpl, err := newRenderer(cfg.TemplatesDir, cfg.Dev(), msgs)
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &server{
		cfg:     cfg,
		logger:  logger,
		neg:     neg,
		msgs:    msgs,
		pages:   content.NewStore(cfg.ContentDir, table.DefaultLocale(), cfg.ContentTTL),
		views:   handlers.NewViews(neg, msgs, handlers.DefaultSite(cfg.Origin)),
		sitemap: sitemap.NewBuilder(table, cfg.Origin),
		tmpl:    tmpl,
	}, nil
}

// loadTable reads the route table file; without one the built-in table is used.
func loadTable(path string, logger *slog.Logger) (*routing.Table, error) {
	if path == "" {
		return routing.DefaultTable(), nil
	}
	table, err := routing.LoadTable(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warn("route table file missing, using built-in table", "path", path)
		return routing.DefaultTable(), nil
	}
	return table, err
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.SecurityHeaders)
	r.Use(middleware.Compress(5))
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Static assets under /assets/
	r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(s.cfg.PublicDir, "assets"))))

	r.Get("/sitemap.xml", s.handleSitemap)
	r.Get("/robots.txt", s.handleRobots)
	r.Post("/theme", s.handleTheme)

	// HTML documents: negotiated locale, per-request CSP nonce
	r.Group(func(r chi.Router) {
		r.Use(mw.VaryLocale)
		r.Use(mw.Locale(s.neg))
		r.Use(mw.ContentSecurityPolicy(s.cfg.Dev()))
		r.Get("/*", s.handlePage)
	})
	return r
}

func (s *server) httpServer() *http.Server {
	return &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
