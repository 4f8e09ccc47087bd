package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"globetrotter/autosave"
	"globetrotter/config"
	"globetrotter/core"
	"globetrotter/handlers/api/drafts"
	"globetrotter/handlers/api/wishlists"
	"globetrotter/handlers/auth"
	appMiddleware "globetrotter/middleware"
	"globetrotter/stores"
	"globetrotter/wishlist"
)

func setupRouter(cfg *config.Config, store stores.Store) *chi.Mux {
	draftStore := autosave.New[any](store)
	wishlistStore := wishlist.NewStore(store)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(appMiddleware.Metrics)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Content-Length", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(appMiddleware.Identify)

		r.Route("/drafts/{tripId}/{scope}", func(r chi.Router) {
			r.Get("/", drafts.HandleGet(draftStore))
			r.Put("/", drafts.HandleSave(draftStore))
			r.Delete("/", drafts.HandleClear(draftStore))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlists.HandleList(wishlistStore))
			r.Get("/map", wishlists.HandleGetMap(wishlistStore))
			r.Put("/map", wishlists.HandleSaveMap(wishlistStore))
			r.Post("/toggle", wishlists.HandleToggle(wishlistStore))
			r.Get("/items/{itemId}", wishlists.HandleStatus(wishlistStore))
		})
	})

	return r
}

func waitForShutdown(srv *http.Server, store stores.Store) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	<-ctx.Done()

	logrus.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("HTTP server shutdown")
	}
	if err := store.Close(); err != nil {
		logrus.WithError(err).Error("Closing storage")
	}
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	listenAddress := flag.String("listen", cfg.ListenAddr, "The address to listen on.")
	logLevel := flag.String("loglevel", cfg.LogLevel, "The log level (debug, info, warn, error).")
	tokenFor := flag.String("token-for", "", "Print a bearer token for the given user id and exit.")
	flag.Parse()

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	auth.Init(cfg.JWTSecret)

	if *tokenFor != "" {
		token, err := auth.IssueToken(&core.User{Subject: *tokenFor}, auth.DefaultTokenTTL)
		if err != nil {
			logrus.Fatalf("Cannot issue token: %v", err)
		}
		fmt.Println(token)
		return
	}

	store, err := stores.GetStore(context.Background(), cfg)
	if err != nil {
		logrus.Fatalf("Cannot open storage: %v", err)
	}

	srv := &http.Server{
		Addr:              *listenAddress,
		Handler:           setupRouter(cfg, store),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logrus.WithField("addr", *listenAddress).Info("starting server")
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithField("event", "start server").Fatal(err)
		}
	}()

	logrus.Debug("Server is running in the background")
	waitForShutdown(srv, store)
}
