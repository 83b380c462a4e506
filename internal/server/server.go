// Package server hosts the project page over HTTP with echo. The page is a
// single shared element tree, so every request is serialised.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/html"

	"github.com/goliatone/go-projectform/internal/config"
	"github.com/goliatone/go-projectform/pkg/dom"
	"github.com/goliatone/go-projectform/pkg/form"
	"github.com/goliatone/go-projectform/pkg/model"
	"github.com/goliatone/go-projectform/pkg/orchestrator"
	"github.com/goliatone/go-projectform/pkg/render"
	"github.com/goliatone/go-projectform/pkg/renderers/vanilla"
)

const (
	// CSRFField is the form field carrying the CSRF token.
	CSRFField = "_csrf"
	// AppRootID is the id of the element the controller mounts into.
	AppRootID = "app"

	shutdownTimeout = 5 * time.Second
)

// Server owns the page state and the echo instance serving it.
type Server struct {
	mu      sync.Mutex
	echo    *echo.Echo
	orch    *orchestrator.Orchestrator
	ctrl    *form.Controller
	root    *html.Node
	pending []string

	cfg    config.ServerConfig
	theme  config.ThemeConfig
	logger *log.Logger
}

// New mounts a controller for fm into a fresh page and registers the routes.
func New(cfg *config.Config, orch *orchestrator.Orchestrator, fm model.FormModel, logger *log.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("server: config is required")
	}
	if orch == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	if logger == nil {
		return nil, errors.New("server: logger is required")
	}

	s := &Server{
		orch:   orch,
		root:   dom.Element("div", []html.Attribute{dom.Attr("id", AppRootID)}),
		cfg:    cfg.Server,
		theme:  cfg.Theme,
		logger: logger,
	}

	ctrl, err := form.New(s.root,
		form.WithForm(fm),
		form.WithAlerter(form.AlerterFunc(s.collectAlert)),
		form.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("server: mount form: %w", err)
	}
	s.ctrl = ctrl

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))
	if cfg.Server.CSRF {
		e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
			TokenLookup:    "form:" + CSRFField,
			CookiePath:     "/",
			CookieHTTPOnly: true,
			CookieSameSite: http.SameSiteStrictMode,
		}))
	}
	Register(e, s)
	s.echo = e

	return s, nil
}

// Handler exposes the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Controller returns the mounted form controller.
func (s *Server) Controller() *form.Controller {
	return s.ctrl
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.cfg.Addr()).Info("serving project form")
		errCh <- s.echo.Start(s.cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

// collectAlert queues alert messages for the page being rendered. The caller
// holds s.mu.
func (s *Server) collectAlert(_ context.Context, message string) {
	s.pending = append(s.pending, message)
}

// page snapshots the current state. The caller holds s.mu.
func (s *Server) page() render.Page {
	return s.ctrl.Page()
}

func (s *Server) renderOptions(c echo.Context, alerts []string) render.RenderOptions {
	opts := render.RenderOptions{Alerts: alerts}
	if token, ok := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string); ok && token != "" {
		opts = opts.WithHidden(CSRFField, token)
	}
	return opts
}

func assetsHandler() echo.HandlerFunc {
	return echo.WrapHandler(http.StripPrefix("/assets/", http.FileServer(http.FS(vanilla.AssetsFS()))))
}
