package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spunky-sabin/clash-clone/internal/api"
	"github.com/spunky-sabin/clash-clone/internal/loader"
)

func main() {
	port := flag.String("port", getEnv("PORT", "8080"), "Server port")
	dataDir := flag.String("data", getEnv("DATA_DIR", "data"), "Path to the static catalog directory")
	origins := flag.String("origins", getEnv("ALLOWED_ORIGINS", "http://localhost:*"), "Comma-separated CORS origins")
	flag.Parse()

	handler, err := newHandler(*dataDir, splitOrigins(*origins))
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	srv := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // websocket streams stay open
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("🚀 Progress API starting on http://localhost:%s", *port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown: %v", err)
	}
}

// newHandler loads the catalog and builds the API router
func newHandler(dataDir string, origins []string) (http.Handler, error) {
	cat, err := loader.LoadCatalog(dataDir)
	if err != nil {
		return nil, err
	}
	log.Printf("📦 Loaded %d catalog entities from %s", cat.Size(), dataDir)
	return api.New(cat, origins), nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
