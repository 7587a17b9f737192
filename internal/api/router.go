package api

import (
	"fmt"
	"log"
	"net/http"

	_ "github.com/rishav-ranjan/healthlocker/docs"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/rishav-ranjan/healthlocker/internal/api/handlers"
	"github.com/rishav-ranjan/healthlocker/internal/api/middleware"
	"github.com/rishav-ranjan/healthlocker/internal/config"
	"github.com/rs/cors"
)

func SetupRouter() http.Handler {
	mainMux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	mainMux.HandleFunc("POST /api/register", handlers.RegisterUser)
	mainMux.HandleFunc("POST /api/login", handlers.LoginUser)
	mainMux.HandleFunc("GET /api/auth/google/login", handlers.HandleGoogleLogin)
	mainMux.HandleFunc("GET /api/auth/google/callback", handlers.HandleGoogleCallback)

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()

	protectedMux.HandleFunc("POST /logout", handlers.Logout)
	protectedMux.HandleFunc("GET /user", handlers.CurrentUser)

	protectedMux.HandleFunc("GET /reports", handlers.ListReports)
	protectedMux.HandleFunc("POST /reports", handlers.CreateReport)
	protectedMux.HandleFunc("GET /reports/{id}", handlers.GetReport)
	protectedMux.HandleFunc("DELETE /reports/{id}", handlers.DeleteReport)
	protectedMux.HandleFunc("GET /reports/{id}/download", handlers.DownloadReport)

	protectedMux.HandleFunc("GET /vitals", handlers.ListVitals)
	protectedMux.HandleFunc("POST /vitals", handlers.CreateVital)
	protectedMux.HandleFunc("GET /vitals/latest", handlers.LatestVitals)

	protectedMux.HandleFunc("POST /shares", handlers.CreateShare)
	protectedMux.HandleFunc("GET /shares", handlers.ListShares)

	protectedMux.HandleFunc("GET /dashboard", handlers.Dashboard)

	mainMux.Handle("/api/",
		http.StripPrefix(
			"/api",
			middleware.AuthMiddleware(protectedMux),
		),
	)

	log.Println("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}
