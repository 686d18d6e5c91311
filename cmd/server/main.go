package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"purchasing-backend/internal/config"
	"purchasing-backend/internal/db"
	"purchasing-backend/internal/geo"
	httpapi "purchasing-backend/internal/http"
	"purchasing-backend/internal/repository"
	"purchasing-backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database error: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	var geocoder geo.Geocoder
	if cfg.GeocodeURL != "" {
		geocoder = geo.NewClient(cfg.GeocodeURL)
	}

	repo := repository.New(pool)
	svc := service.New(repo, geocoder)
	if err := svc.EnsureDefaultUser(ctx); err != nil {
		log.Fatalf("default user init error: %v", err)
	}
	handler := httpapi.NewHandler(svc, cfg.JWTSecret)
	router := httpapi.NewRouter(handler, cfg.JWTSecret)

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Printf("backend listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		if closeErr := server.Close(); closeErr != nil {
			log.Printf("force close failed: %v", closeErr)
		}
	}
}
