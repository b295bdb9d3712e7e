package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"learnpath-web/internal/auth"
	"learnpath-web/internal/bootstrap"
	"learnpath-web/internal/config"
	"learnpath-web/internal/database"
	"learnpath-web/internal/flash"
	"learnpath-web/internal/handlers"
	"learnpath-web/internal/logger"
	"learnpath-web/internal/notify"
	"learnpath-web/internal/oauthstate"
	"learnpath-web/internal/repository"
	"learnpath-web/internal/session"
	"learnpath-web/internal/supabase"
	"learnpath-web/internal/views"
)

func main() {
	// Load .env (ignored when absent) and the process environment
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Hosted auth + PostgREST
	client := supabase.NewClient(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.SupabaseTimeout)

	// Session store
	var store session.Store
	switch cfg.SessionBackend {
	case config.SessionRedis:
		rdb, err := database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer rdb.Close()
		store = session.NewRedisStore(rdb)
	default:
		store = session.NewMemoryStore()
	}

	// Profile repository
	var profiles repository.ProfileRepo
	switch cfg.ProfileBackend {
	case config.ProfileMongo:
		db, err := database.ConnectMongo(cfg.MongoURI, cfg.DBName)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to MongoDB")
		}
		defer database.DisconnectMongo(context.Background(), db)

		repo := repository.NewMongoProfileRepo(db)
		idxCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		if err := repo.EnsureIndexes(idxCtx); err != nil {
			log.WithError(err).Warn("failed to create profile indexes")
		}
		cancel()
		profiles = repo
	case config.ProfileMemory:
		profiles = repository.NewMemoryProfileRepo()
	default:
		profiles = repository.NewSupabaseProfileRepo(client)
	}

	// Services
	authSvc := auth.NewService(client, store, auth.Options{Mode: cfg.CallbackMode, SessionTTL: cfg.SessionTTL}, log)
	stateCodec := oauthstate.NewCodec(cfg.StateSecret, 0)
	decider := bootstrap.NewDecider(profiles, log)
	notifier := notify.New(cfg.ResendAPIKey, cfg.FromEmail, log)
	renderer := views.MustNew()
	notices := flash.NewCodec(cfg.StateSecret)

	// Handlers
	authHandler := handlers.NewAuthHandler(authSvc, stateCodec, decider, renderer, notices, cfg, log)
	onboardingHandler := handlers.NewOnboardingHandler(authHandler, profiles, notifier, renderer, notices, log)
	pageHandler := handlers.NewPageHandler(profiles, renderer, notices, log)

	router := handlers.NewRouter(handlers.RouterConfig{
		Auth:        authHandler,
		Onboarding:  onboardingHandler,
		Pages:       pageHandler,
		Sessions:    authSvc,
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("shutdown")
		}
	}()

	log.WithFields(logrus.Fields{
		"port":            cfg.Port,
		"callback_mode":   cfg.CallbackMode,
		"session_backend": cfg.SessionBackend,
		"profile_backend": cfg.ProfileBackend,
	}).Info("learnpath-web starting")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("Server failed")
	}
}
