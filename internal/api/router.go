package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/handlers"
	custommiddleware "github.com/ndewijer/Investment-Tracker-Backend/internal/api/middleware"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/config"
	"github.com/ndewijer/Investment-Tracker-Backend/internal/service"
)

// Services are the dependencies of the HTTP handlers.
type Services struct {
	System     *service.SystemService
	Auth       *service.AuthService
	Investment *service.InvestmentService
	Chart      *service.ChartService
	Indices    *service.IndicesService
}

// NewRouter creates and configures the HTTP router
func NewRouter(s Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	// RealIP rewrites RemoteAddr, which the auth rate limiter keys on.
	if cfg.Server.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(custommiddleware.NewCORS(cfg.CORS.AllowedOrigins))

	cookie := custommiddleware.SessionCookie{
		Name:   cfg.Auth.CookieName,
		Secure: cfg.Auth.CookieSecure,
	}
	requireAuth := custommiddleware.RequireAuth(s.Auth, cookie)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(s.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/auth", func(r chi.Router) {
			authHandler := handlers.NewAuthHandler(s.Auth, cookie)

			r.Group(func(r chi.Router) {
				r.Use(custommiddleware.NewRateLimit(cfg.RateLimit.AuthRequests, cfg.RateLimit.AuthWindow))
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
			})
			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/me", authHandler.Me)
				r.Put("/profile", authHandler.UpdateProfile)
				r.Put("/password", authHandler.UpdatePassword)
			})
		})

		r.Route("/investments", func(r chi.Router) {
			investmentHandler := handlers.NewInvestmentHandler(s.Investment, s.Chart)
			r.Use(requireAuth)

			r.Get("/", investmentHandler.ListInvestments)
			r.Post("/", investmentHandler.CreateInvestment)
			r.Get("/summary", investmentHandler.Summary)
			r.Get("/projection", investmentHandler.Projection)
			r.Get("/distribution", investmentHandler.Distribution)
			r.Get("/preview", investmentHandler.Preview)
			r.Get("/charts/projection.png", investmentHandler.ProjectionChart)
			r.Get("/charts/distribution.png", investmentHandler.DistributionChart)

			r.Route("/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/", investmentHandler.GetInvestment)
				r.Put("/", investmentHandler.UpdateInvestment)
				r.Delete("/", investmentHandler.DeleteInvestment)
			})
		})

		r.Route("/indices", func(r chi.Router) {
			indicesHandler := handlers.NewIndicesHandler(s.Indices)
			r.Get("/summary", indicesHandler.Summary)
			r.Get("/{index}", indicesHandler.Series)
			r.Get("/{index}/yearly", indicesHandler.Yearly)
		})
	})

	return r
}
