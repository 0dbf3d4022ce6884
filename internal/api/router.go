package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/mindmate-be/internal/api/handlers"
	"github.com/isdelr/mindmate-be/internal/auth"
	"github.com/isdelr/mindmate-be/internal/monitoring"
	"github.com/isdelr/mindmate-be/internal/services"
	"github.com/isdelr/mindmate-be/internal/websocket"
)

// Dependencies are the services the router wires into handlers.
type Dependencies struct {
	Hub            *websocket.Hub
	Tokens         *auth.TokenManager
	SecureCookies  bool
	AllowedOrigins []string
	Sessions       services.SessionServiceProvider
	Auth           services.AuthServiceProvider
	Progress       services.ProgressServiceProvider
	Advice         services.AdviceServiceProvider
	Events         services.EventServiceProvider
	Health         *monitoring.HealthChecker
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	origins := deps.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(deps.Sessions)
	accountHandler := handlers.NewAccountHandler(deps.Auth)
	progressHandler := handlers.NewProgressHandler(deps.Progress)
	adviceHandler := handlers.NewAdviceHandler(deps.Advice)
	eventHandler := handlers.NewEventHandler(deps.Events)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub, deps.Sessions)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		if deps.Health != nil {
			r.Get("/health", handlers.NewHealthHandler(deps.Health).Get)
		}

		r.Group(func(r chi.Router) {
			r.Use(deps.Tokens.SessionMiddleware(deps.Sessions, deps.SecureCookies))

			r.Get("/session", sessionHandler.Get)
			r.Post("/navigate", sessionHandler.Navigate)
			r.Post("/signup", accountHandler.SignUp)
			r.Post("/login", accountHandler.LogIn)

			// Dashboard pages
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireLogin(deps.Sessions))

				r.Get("/dashboard", progressHandler.Dashboard)
				r.Get("/help", handlers.Help)
				r.Get("/events", eventHandler.GetRecent)
				r.Get("/ws", wsHandler.Serve)

				r.Route("/challenges", func(r chi.Router) {
					r.Get("/", progressHandler.ListChallenges)
					r.Post("/{id}/complete", progressHandler.CompleteChallenge)
				})
				r.Route("/shop", func(r chi.Router) {
					r.Get("/", progressHandler.ListShop)
					r.Post("/{id}/purchase", progressHandler.Purchase)
				})

				r.Post("/therapist", adviceHandler.Therapist)
				r.Post("/playlist", adviceHandler.Playlist)
				r.Post("/books", adviceHandler.Books)

				r.Route("/settings", func(r chi.Router) {
					r.Put("/password", accountHandler.ChangePassword)
					r.Post("/logout", accountHandler.LogOut)
				})
			})
		})
	})

	return r
}
