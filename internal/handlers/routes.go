package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"learnpath-web/internal/auth"
	customMiddleware "learnpath-web/internal/middleware"
	"learnpath-web/internal/routepath"
)

// ServiceName is reported by the health check.
const ServiceName = "learnpath-web"

type RouterConfig struct {
	Auth        *AuthHandler
	Onboarding  *OnboardingHandler
	Pages       *PageHandler
	Sessions    *auth.Service
	Log         *logrus.Logger
	CORSOrigins []string
}

func NewRouter(c RouterConfig) http.Handler {
	origins := c.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.RequestLogger(c.Log))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get(routepath.Health, Health(ServiceName))

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.LoadSession(c.Sessions, c.Log))

		// Public pages
		r.Get(routepath.Root, c.Pages.Landing)
		r.Get(routepath.Login, c.Pages.Login)
		r.Get(routepath.Learn, c.Pages.Learn)
		r.Get(routepath.LearnSubject, c.Pages.Subject)
		r.Get(routepath.LearnSubjectTopic, c.Pages.Topic)

		// Sign-in flow
		r.Get(routepath.SignIn, c.Auth.SignIn)
		r.Post(routepath.SignIn, c.Auth.SignIn)
		r.Get(routepath.AuthCallback, c.Auth.Callback)
		r.Post(routepath.AuthCallback, c.Auth.CallbackFragment)
		r.Post(routepath.Logout, c.Auth.Logout)

		// Onboarding resolves a missing session itself by restarting sign-in
		r.Get(routepath.Onboarding, c.Onboarding.Show)
		r.Post(routepath.Onboarding, c.Onboarding.Submit)

		// Signed-in pages
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.RequireSession)

			r.Get(routepath.Home, c.Pages.Home)
			r.Get(routepath.Dashboard, c.Pages.Home)
		})

		r.NotFound(c.Pages.NotFound)
	})

	return r
}
