package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/harshanas/peopledesk/internal/config"
	"github.com/harshanas/peopledesk/internal/db"
	"github.com/harshanas/peopledesk/internal/identity"
	"github.com/harshanas/peopledesk/internal/server"
	"github.com/harshanas/peopledesk/view"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedOnlyFlag    = flag.Bool("seed-only", false, "Run DB seed and exit")
)

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()

	dbConn, err := db.ConnectAndMigrate()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if *migrateOnlyFlag {
		log.Println("Migrations completed successfully")
		return
	}
	if *seedOnlyFlag {
		db.Seed(dbConn)
		log.Println("Seeding completed successfully")
		return
	}

	// Templates branch their nav on the viewer's role.
	resolver := identity.NewResolver(dbConn)
	view.SetRoleResolver(func(r *http.Request) string {
		if p := resolver.ResolveProfile(r.Context()); p != nil {
			return p.Role
		}
		return ""
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.New(dbConn),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %s (env=%s)", cfg.Port, cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	log.Println("Server stopped gracefully")
}
