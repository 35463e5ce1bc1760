package rest

import (
	"context"
	"net/http"
	"path/filepath"
	core_port "real-estate-catalog/internal/core/port"
	"real-estate-catalog/internal/core/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewServer создает и настраивает роутер и HTTP-сервер каталога.
// staticRoot - корень, под которым лежат фронтенд и папка с картинками.
func NewServer(port string,
	staticRoot string,
	propertyHandlers *PropertyHandler,
	baseLogger core_port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	// CORS полностью открыт: каталог публичный, аутентификации нет.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Trace-ID"},
		MaxAge:         300, // 5 минут
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/properties", propertyHandlers.ListProperties)
		r.Get("/properties/{propertyID}", propertyHandlers.GetProperty)
		r.Post("/properties", propertyHandlers.CreateProperty)
		r.Delete("/properties/{propertyID}", propertyHandlers.DeleteProperty)
	})

	// Загруженные картинки отдаются как статика из той же папки,
	// куда их кладет файловое хранилище.
	imagesDir := http.Dir(filepath.Join(staticRoot, usecase.ImagesFolder))
	r.Handle("/"+usecase.ImagesFolder+"/*", http.StripPrefix("/"+usecase.ImagesFolder+"/", http.FileServer(imagesDir)))

	// SPA каталога.
	r.Handle("/*", http.FileServer(http.Dir(staticRoot)))

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
