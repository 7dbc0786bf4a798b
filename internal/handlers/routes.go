package handlers

import (
	"net/http"

	"github.com/cruiseline/cruise-booking-api/internal/auth"
	"github.com/cruiseline/cruise-booking-api/internal/config"
	"github.com/cruiseline/cruise-booking-api/internal/notifier"
	"github.com/cruiseline/cruise-booking-api/internal/ratelimit"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

type Handlers struct {
	Auth    *auth.AuthHandler
	Cruise  *CruiseHandler
	Package *PackageHandler
	Booking *BookingHandler
	Review  *ReviewHandler
	User    *UserHandler
	Limiter *ratelimit.RateLimiter
}

func NewHandlers(cfg *config.Config, db *gorm.DB, n notifier.Notifier) *Handlers {
	return &Handlers{
		Auth:    auth.NewAuthHandler(cfg, db),
		Cruise:  NewCruiseHandler(db),
		Package: NewPackageHandler(db),
		Booking: NewBookingHandler(db, n, cfg.TicketSecret),
		Review:  NewReviewHandler(db),
		User:    NewUserHandler(db),
		Limiter: ratelimit.NewRateLimiter(cfg.LoginRatePerMinute, cfg.LoginRateBurst),
	}
}

func created(o *huma.Operation) {
	o.DefaultStatus = http.StatusCreated
}

func cookieAuth(o *huma.Operation) {
	o.Security = []map[string][]string{{"cookieAuth": {}}}
}

// RegisterRoutes mounts the middleware stack and every API operation on r.
// chi middleware has to be installed before the huma API attaches its routes.
func RegisterRoutes(r *chi.Mux, cfg *config.Config, h *Handlers) huma.API {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.EnableCORS {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		}).Handler)
	}
	r.Use(h.Auth.SessionMiddleware)

	// Initialize Huma API
	humaConfig := huma.DefaultConfig("Cruise Booking API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
	}
	api := humachi.New(r, humaConfig)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Auth routes
	throttled := func(o *huma.Operation) {
		o.Middlewares = append(o.Middlewares, h.Limiter.Middleware(api))
	}
	huma.Post(api, "/api/auth/signup", h.Auth.HandleSignup, created, throttled)
	huma.Post(api, "/api/auth/login", h.Auth.HandleLogin, throttled)
	huma.Post(api, "/api/auth/admin-login", h.Auth.HandleAdminLogin, throttled)
	huma.Post(api, "/api/auth/logout", h.Auth.HandleLogout)
	huma.Get(api, "/api/auth/me", h.Auth.HandleMe, cookieAuth)

	huma.Get(api, "/api/cruise", h.Cruise.HandleList)
	huma.Get(api, "/api/cruise/{id}", h.Cruise.HandleGet)
	huma.Post(api, "/api/cruise", h.Cruise.HandleCreate, created)
	huma.Put(api, "/api/cruise/{id}", h.Cruise.HandleUpdate)
	huma.Delete(api, "/api/cruise/{id}", h.Cruise.HandleDelete)

	huma.Get(api, "/api/package", h.Package.HandleList)
	huma.Get(api, "/api/package/{id}", h.Package.HandleGet)
	huma.Post(api, "/api/package", h.Package.HandleCreate, created)
	huma.Put(api, "/api/package/{id}", h.Package.HandleUpdate)
	huma.Delete(api, "/api/package/{id}", h.Package.HandleDelete)

	huma.Get(api, "/api/booking", h.Booking.HandleList)
	huma.Get(api, "/api/booking/{id}", h.Booking.HandleGet)
	huma.Post(api, "/api/booking", h.Booking.HandleCreate, created)
	huma.Put(api, "/api/booking/{id}", h.Booking.HandleUpdate)
	huma.Delete(api, "/api/booking/{id}", h.Booking.HandleDelete)
	huma.Get(api, "/api/booking/{id}/ticket", h.Booking.HandleTicket)
	huma.Post(api, "/api/ticket/verify", h.Booking.HandleVerifyTicket)

	huma.Get(api, "/api/review", h.Review.HandleList)
	huma.Get(api, "/api/review/{id}", h.Review.HandleGet)
	huma.Post(api, "/api/review", h.Review.HandleCreate, created)
	huma.Put(api, "/api/review/{id}", h.Review.HandleUpdate)
	huma.Delete(api, "/api/review/{id}", h.Review.HandleDelete)

	huma.Get(api, "/api/user", h.User.HandleList)
	huma.Get(api, "/api/user/{id}", h.User.HandleGet)
	huma.Post(api, "/api/user", h.User.HandleCreate, created)
	huma.Put(api, "/api/user/{id}", h.User.HandleUpdate)
	huma.Delete(api, "/api/user/{id}", h.User.HandleDelete)

	return api
}
