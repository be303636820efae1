// Package api wires the HTTP surface: routing, middleware and handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ipotracker/IPO-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/ipotracker/IPO-Tracker-Backend/internal/api/middleware"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/apperrors"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/config"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/model"
	"github.com/ipotracker/IPO-Tracker-Backend/internal/service"
)

// Services bundles the service dependencies the router needs.
type Services struct {
	System    *service.SystemService
	Auth      *service.AuthService
	IPO       *service.IPOService
	Broker    *service.BrokerService
	Investor  *service.InvestorService
	User      *service.UserService
	Portfolio *service.PortfolioService
	Sync      *service.SyncService
}

// NewRouter creates and configures the HTTP router. The websocket endpoint
// is mounted separately so the hub can be shut down with the server.
func NewRouter(svcs Services, cfg *config.Config, ws http.Handler) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(custommiddleware.NewCORS(cfg.CORS.AllowedOrigins))

	requireAuth := custommiddleware.RequireAuth(svcs.Auth)
	requireAdmin := custommiddleware.RequireRole(model.RoleAdmin)

	// API routes
	r.Route("/api", func(r chi.Router) {
		systemHandler := handlers.NewSystemHandler(svcs.System)
		r.Get("/health", systemHandler.Health)

		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(svcs.Auth)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(requireAuth).Get("/me", authHandler.Me)
		})

		r.Route("/ipos", func(r chi.Router) {
			ipoHandler := handlers.NewIPOHandler(svcs.IPO)
			syncHandler := handlers.NewSyncHandler(svcs.Sync)

			r.Get("/", ipoHandler.IPOs)
			r.Get("/upcoming", ipoHandler.UpcomingIPOs)
			r.With(requireAuth, requireAdmin).Post("/", ipoHandler.CreateIPO)

			r.Route("/sync", func(r chi.Router) {
				r.Use(requireAuth, requireAdmin)
				r.Post("/", syncHandler.Sync)
				r.Get("/status", syncHandler.Status)
				r.Get("/config", syncHandler.Config)
				r.Put("/config", syncHandler.UpdateConfig)
			})

			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateResourceID("id", apperrors.ErrIPONotFound.Error()))
				r.Get("/", ipoHandler.GetIPO)
				r.With(requireAuth, requireAdmin).Put("/", ipoHandler.UpdateIPO)
				r.With(requireAuth, requireAdmin).Delete("/", ipoHandler.DeleteIPO)
			})
		})

		r.Route("/brokers", func(r chi.Router) {
			brokerHandler := handlers.NewBrokerHandler(svcs.Broker)

			r.Get("/", brokerHandler.Brokers)
			r.Get("/compare", brokerHandler.CompareBrokers)
			r.With(requireAuth, requireAdmin).Post("/", brokerHandler.CreateBroker)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateResourceID("id", apperrors.ErrBrokerNotFound.Error()))
				r.Get("/", brokerHandler.GetBroker)
				r.With(requireAuth, requireAdmin).Put("/", brokerHandler.UpdateBroker)
				r.With(requireAuth, requireAdmin).Delete("/", brokerHandler.DeleteBroker)
			})
		})

		r.Route("/investors", func(r chi.Router) {
			investorHandler := handlers.NewInvestorHandler(svcs.Investor)

			r.Get("/", investorHandler.Investors)
			r.With(requireAuth, requireAdmin).Post("/", investorHandler.CreateInvestor)

			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateResourceID("id", apperrors.ErrInvestorNotFound.Error()))
				r.Get("/", investorHandler.GetInvestor)
				r.With(requireAuth, requireAdmin).Put("/", investorHandler.UpdateInvestor)
				r.With(requireAuth, requireAdmin).Delete("/", investorHandler.DeleteInvestor)
			})
		})

		r.Route("/users", func(r chi.Router) {
			userHandler := handlers.NewUserHandler(svcs.User)
			r.Use(requireAuth, requireAdmin)

			r.Get("/", userHandler.Users)
			r.Route("/{id}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateResourceID("id", apperrors.ErrUserNotFound.Error()))
				r.Get("/", userHandler.GetUser)
			})
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(svcs.Portfolio)
			r.Use(requireAuth)

			r.Get("/", portfolioHandler.Portfolio)
			r.With(custommiddleware.ValidateResourceID("ipoId", apperrors.ErrIPONotFound.Error())).
				Post("/buy/{ipoId}", portfolioHandler.Buy)
			r.With(custommiddleware.ValidateResourceID("holdingId", apperrors.ErrHoldingNotFound.Error())).
				Post("/sell/{holdingId}", portfolioHandler.Sell)
		})
	})

	if ws != nil {
		r.Handle("/ws", ws)
	}

	return r
}
