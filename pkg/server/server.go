package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/DLICWCPA/monday-report-app/pkg/handlers/report"
	"github.com/DLICWCPA/monday-report-app/pkg/render/xlsx"
	"github.com/DLICWCPA/monday-report-app/pkg/services/pipeline"

	reportmiddleware "github.com/DLICWCPA/monday-report-app/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Reports  pipeline.Service
	Renderer *xlsx.Renderer
	Logger   zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	Title           string
	UTCOffsetHours  int
	Dependencies    Dependencies
}

// ConfigureRouter mounts the form, download and JSON endpoints.
func ConfigureRouter(config Config) http.Handler {
	logger := config.Dependencies.Logger
	renderer := config.Dependencies.Renderer
	if renderer == nil {
		renderer = xlsx.NewRenderer()
	}
	reportHandler := handlers.NewHandler(config.Dependencies.Reports, renderer, handlers.Options{
		Title:          config.Title,
		UTCOffsetHours: config.UTCOffsetHours,
	})

	router := chi.NewRouter()

	router.Use(reportmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", handlers.Healthz)

	router.Group(func(r chi.Router) {
		if config.RequestTimeout > 0 {
			r.Use(middleware.Timeout(config.RequestTimeout))
		}

		r.Get("/", reportHandler.Index)
		r.Post("/generate_report", reportHandler.GenerateReport)

		r.Route("/api/v1", func(r chi.Router) {
			r.Get("/reports/summary", reportHandler.GetSummary)
		})
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
