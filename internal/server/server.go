package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/recruitkit/crmbridge/config"
	"github.com/recruitkit/crmbridge/internal/activity"
	"github.com/recruitkit/crmbridge/internal/crm"
	"github.com/recruitkit/crmbridge/internal/filter"
	"github.com/recruitkit/crmbridge/internal/localstore"
)

// Run wires the whole proxy together and serves until the process is
// stopped. No request-level fault ever escapes: the recover middleware
// and the central error handler turn everything into JSON.
func Run(cfg *config.Config, addr string) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))

	// Unified HTTP error handler with structured JSON and logging
	httpLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		httpLogger.Printf("%d %s %s rid=%s from %s: %v",
			code, req.Method, req.URL.Path, c.Response().Header().Get(echo.HeaderXRequestID), c.RealIP(), err)
		if !c.Response().Committed {
			body := map[string]interface{}{"error": msg}
			if code == http.StatusInternalServerError {
				body["detail"] = err.Error()
			}
			_ = c.JSON(code, body)
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	if cfg.General.WellKnown != "" {
		e.Static("/.well-known", cfg.General.WellKnown)
	}

	// Shared dependencies (top-level DI): upstream client, snapshot,
	// resolver, poster.
	client := crm.NewClient(cfg.Crelate.APIKey, cfg.Crelate.BaseURL, cfg.Crelate.Timeout)

	storeLogger := log.New(log.Writer(), "[STORE] ", log.LstdFlags)
	local, err := localstore.Load(cfg.Contacts.SnapshotPath)
	if err != nil {
		// the proxy still serves upstream-backed traffic without it
		storeLogger.Printf("contact snapshot unavailable: %v", err)
	} else {
		storeLogger.Printf("loaded %d fallback contacts from %s", local.Len(), cfg.Contacts.SnapshotPath)
	}

	resolver := filter.NewResolver(client, local, log.New(log.Writer(), "[FILTER] ", log.LstdFlags))
	poster := activity.NewPoster(client, resolver)

	(&JobsHandler{Resolver: resolver}).Register(e)
	(&ContactsHandler{Resolver: resolver, CRM: client}).Register(e)
	(&ActivitiesHandler{Poster: poster}).Register(e)

	if addr == "" {
		addr = cfg.General.Listen
		if addr == "" {
			addr = ":8000"
		}
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}
