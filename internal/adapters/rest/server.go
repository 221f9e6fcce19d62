package rest

import (
	"context"
	"fmt"
	"marketplace-service/internal/core/domain"
	core_port "marketplace-service/internal/core/port"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handlers - все обработчики API, собираются в app.go
type Handlers struct {
	Auth       *AuthHandlers
	Properties *PropertyHandlers
	Favorites  *FavoritesHandlers
	Inquiries  *InquiryHandlers
	Estimates  *EstimateHandlers
	Assistant  *AssistantHandlers
	Admin      *AdminHandlers
}

// Server - наш REST API сервер.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// NewRouter настраивает middleware и маршруты /api.
func NewRouter(h Handlers, auth *AuthMiddleware, allowedOrigins []string, baseLogger core_port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.SetHeader("Content-Type", "application/json"))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// --- Публичные маршруты ---
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)
		r.Get("/search", h.Properties.Search)
		r.Get("/properties", h.Properties.List)
		r.Get("/properties/{propertyID}", h.Properties.Get)

		// --- Приватные маршруты (для всех авторизованных) ---
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Get("/auth/me", h.Auth.Me)

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", h.Favorites.GetUserFavorites)
				r.Get("/check/{propertyID}", h.Favorites.CheckFavorite)
				r.Post("/{propertyID}", h.Favorites.AddToFavorites)
				r.Delete("/{propertyID}", h.Favorites.RemoveFromFavorites)
			})

			r.Get("/inquiries/seller", h.Inquiries.Received)
			r.Get("/inquiries/buyer", h.Inquiries.Sent)

			r.Post("/valuation/property", h.Estimates.EstimateValue)
			r.Post("/valuation/loan", h.Estimates.EstimateLoan)

			r.Post("/ai/chat", h.Assistant.Chat)

			// Продавец (владелец) или администратор
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(domain.UserTypeSeller, domain.UserTypeAdmin))
				r.Put("/properties/{propertyID}", h.Properties.Update)
				r.Delete("/properties/{propertyID}", h.Properties.Delete)
			})

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(domain.UserTypeSeller))
				r.Post("/properties", h.Properties.Create)
				r.Get("/properties/seller/my-properties", h.Properties.MyProperties)
			})

			r.With(auth.RequireRole(domain.UserTypeBuyer)).Post("/inquiries", h.Inquiries.Create)

			// --- Только для администраторов ---
			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.RequireRole(domain.UserTypeAdmin))
				r.Get("/properties", h.Admin.ListProperties)
				r.Delete("/properties/{propertyID}", h.Admin.DeleteProperty)
				r.Get("/stats", h.Admin.Stats)
			})
		})
	})

	return r
}

// NewServer создает новый экземпляр сервера.
func NewServer(port string, handler http.Handler, baseLogger core_port.LoggerPort) *Server {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     baseLogger.WithFields(core_port.Fields{"component": "rest_server"}),
	}
}

// Start запускает HTTP-сервер. Блокируется до остановки.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
