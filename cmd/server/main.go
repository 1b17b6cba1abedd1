package main

import (
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"slotchecker/internal/api"
	"slotchecker/internal/browser"
	"slotchecker/pkg/config"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
)

func init() {
	// Create logs directory if it doesn't exist
	logsDir := "logs"
	if err := os.MkdirAll(logsDir, 0750); err != nil {
		log.Printf("Error creating logs directory: %v", err)
		return
	}

	// Set up logging with timestamp
	log.SetFlags(log.Ltime | log.LUTC)

	// Create daily log file
	today := time.Now().Format("2006-01-02")
	logFile := filepath.Join(logsDir, today+".log")

	f, err := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		log.Printf("Error opening log file: %v", err)
		return
	}

	// Write to both file and stdout
	multiWriter := io.MultiWriter(os.Stdout, f)
	log.SetOutput(multiWriter)

	log.Printf("=== Starting new session ===")
}

func main() {
	godotenv.Load()
	cfg := config.Load()

	checker := browser.NewChecker(cfg)
	router := api.NewRouter(cfg, checker)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
		handlers.AllowedMethods([]string{"GET", "POST", "OPTIONS"}),
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           cors(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("Visa slot checker server running on port %s", cfg.Port)
	log.Fatal(srv.ListenAndServe())
}
