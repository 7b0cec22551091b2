package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hospital-backend/internal/config"
	"hospital-backend/internal/hospital"
	"hospital-backend/internal/routes"
	"hospital-backend/internal/storage"
	"hospital-backend/internal/storage/gormstore"
	"hospital-backend/internal/storage/mongostore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store := selectStore(cfg)
	defer store.Close(context.Background())

	svc := hospital.New(store)
	r := routes.SetupRouter(svc, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ListenPort,
		Handler: r,
	}

	go func() {
		log.Printf("server listening on :%s", cfg.ListenPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
}

// selectStore picks the storage backend once for the process lifetime: the
// document store when MONGODB_URI is set and answers a bounded ping, the
// relational store otherwise. Probe failure falls back deterministically —
// it is not an error.
func selectStore(cfg *config.Config) storage.Store {
	if cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if st, err := mongostore.Open(ctx, cfg.MongoURI); err == nil {
			log.Println("using mongodb storage backend")
			return st
		} else {
			log.Printf("mongodb unreachable, falling back to relational: %v", err)
		}
	}

	st, err := gormstore.Open(cfg.PostgresURI, cfg.SQLitePath)
	if err != nil {
		log.Fatalf("relational storage: %v", err)
	}
	if cfg.PostgresURI != "" {
		log.Println("using postgres storage backend")
	} else {
		log.Printf("using sqlite storage backend at %s", cfg.SQLitePath)
	}
	return st
}
