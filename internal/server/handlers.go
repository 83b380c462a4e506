package server

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/goliatone/go-projectform/pkg/form"
	"github.com/goliatone/go-projectform/pkg/orchestrator"
	"github.com/goliatone/go-projectform/pkg/render"
)

// Register wires the page routes on e.
func Register(e *echo.Echo, s *Server) {
	endpoint := s.ctrl.Form().Endpoint
	if endpoint == "" {
		endpoint = "/projects"
	}

	e.GET("/", getPage(s))
	e.POST(endpoint, postProject(s))
	e.GET(endpoint, getProjects(s))
	e.GET("/assets/*", assetsHandler())
	e.GET("/healthz", healthz())
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func getPage(s *Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.writePage(c, http.StatusOK, nil)
	}
}

func postProject(s *Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		values := make(map[string]string, 3)
		for _, name := range []string{form.FieldTitle, form.FieldDescription, form.FieldPeople} {
			values[name] = c.FormValue(name)
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		s.pending = nil
		_, err := s.ctrl.Submit(c.Request().Context(), values)
		alerts := s.pending
		s.pending = nil

		switch {
		case errors.Is(err, form.ErrValidation):
			// the rejected input is echoed back to this client only
			defer s.ctrl.Clear()
			return s.writePage(c, http.StatusUnprocessableEntity, alerts)
		case err != nil:
			s.ctrl.Clear()
			s.logger.WithError(err).Error("submit failed")
			return echo.NewHTTPError(http.StatusInternalServerError, "submit failed")
		}
		return c.Redirect(http.StatusSeeOther, "/")
	}
}

func getProjects(s *Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()

		return s.write(c, http.StatusOK, echo.MIMEApplicationJSON, render.RenderOptions{})
	}
}

// writePage renders the HTML page. The caller holds s.mu.
func (s *Server) writePage(c echo.Context, status int, alerts []string) error {
	return s.write(c, status, echo.MIMETextHTML, s.renderOptions(c, alerts))
}

// write renders the page with the renderer producing mediaType. The caller
// holds s.mu.
func (s *Server) write(c echo.Context, status int, mediaType string, opts render.RenderOptions) error {
	renderer, err := s.orch.RendererFor(mediaType)
	if err != nil {
		s.logger.WithError(err).WithField("media_type", mediaType).Error("no renderer")
		return echo.NewHTTPError(http.StatusInternalServerError, "render failed")
	}
	out, err := s.orch.Render(c.Request().Context(), orchestrator.RenderRequest{
		Renderer:     renderer.Name(),
		Page:         s.page(),
		Options:      opts,
		ThemeName:    s.theme.Name,
		ThemeVariant: s.theme.Variant,
	})
	if err != nil {
		s.logger.WithError(err).WithField("renderer", renderer.Name()).Error("render page")
		return echo.NewHTTPError(http.StatusInternalServerError, "render failed")
	}
	return c.Blob(status, renderer.ContentType(), out)
}
