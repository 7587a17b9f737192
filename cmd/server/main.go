package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/rishav-ranjan/healthlocker/internal/api"
	"github.com/rishav-ranjan/healthlocker/internal/config"
	"github.com/rishav-ranjan/healthlocker/internal/repositories"
)

func main() {
	// Connect to database
	repositories.ConnectDatabase()

	if config.Envs.Environment == "development" {
		if err := repositories.SeedDevData(context.Background()); err != nil {
			log.Println("Seeding failed:", err)
		}
	}

	s3 := config.Envs.S3
	if s3.AccessKeyID != "" {
		if err := repositories.InitObjectStore(s3.AccessKeyID, s3.SecretAccessKey, s3.AccountID, s3.BucketName, s3.Region); err != nil {
			log.Fatalf("Object store init failed: %v", err)
		}
	}

	mux := api.SetupRouter()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Envs.Port),
		Handler: mux,
		// Timeouts prevent resource exhaustion from slow clients
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Starting HealthLocker server on port: %s", config.Envs.Port)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on port %s: %v", config.Envs.Port, err)
	}
}
