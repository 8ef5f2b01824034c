package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"coursedeck/internal/config"
	"coursedeck/internal/db"
	"coursedeck/internal/handlers"
	"coursedeck/internal/middleware"
	"coursedeck/internal/storage"
	"coursedeck/internal/store"
	"coursedeck/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer dbConn.Close()

	if err := db.Migrate(context.Background(), dbConn); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	uploader, err := storage.NewS3Uploader(context.Background(), cfg)
	if err != nil {
		logger.Fatal("s3 client", zap.Error(err))
	}

	h := handlers.New(
		store.NewPgUserStore(dbConn),
		store.NewPgCourseStore(dbConn),
		store.NewPgVideoStore(dbConn),
		uploader,
		cfg.JWTSecret,
		logger,
	)

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))
	r.Use(middleware.RequestLogger(logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		r.Route("/courses", func(r chi.Router) {
			// Public
			r.Get("/", h.Courses.List)
			r.Get("/{id}", h.Courses.GetByID)

			// Protected
			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(cfg.JWTSecret))

				r.With(middleware.RequireAdmin).Post("/", h.Courses.Create)
				r.Put("/{id}", h.Courses.Update)
				r.Delete("/{id}", h.Courses.Delete)
			})
		})

		r.Route("/videos", func(r chi.Router) {
			// Public
			r.Get("/course/{courseId}", h.Videos.ListByCourse)
			r.Get("/{id}", h.Videos.GetByID)

			// Protected
			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(cfg.JWTSecret))

				r.Post("/upload", h.Videos.Upload)
				r.Post("/", h.Videos.Create)
				r.Put("/{id}", h.Videos.Update)
				r.Delete("/{id}", h.Videos.Delete)
			})
		})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
