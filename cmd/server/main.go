package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"roster-routing-service/internal/adapters/instances"
	"roster-routing-service/internal/adapters/repositories"
	"roster-routing-service/internal/adapters/sat"
	"roster-routing-service/internal/api"
	"roster-routing-service/internal/config"
	"roster-routing-service/internal/platform/db"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, YAML, SAT engine) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	instanceDir := config.Get("INSTANCE_DIR", "data/instances")
	port := config.Get("PORT", "8080")

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Ensure the solve_runs table exists on startup for local runs.
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatal(err)
	}

	repo := instances.NewYamlInstanceRepository(instanceDir)
	runs := repositories.NewPostgresPlanRepository(conn)
	router := api.NewRouter(repo, sat.Engine{}, runs)

	// The write timeout leaves headroom over the per-request solve cap.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      360 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
