package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/akehoe/bracketlab/internal/app"
	"github.com/akehoe/bracketlab/internal/auth"
	"github.com/akehoe/bracketlab/internal/logger"
	"github.com/akehoe/bracketlab/pkg/sportsfeed"
	"github.com/akehoe/bracketlab/web"
)

var (
	version = "dev"
)

func main() {
	// .env is optional; environment variables win over defaults either way
	godotenv.Load()

	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "bracketlab.db", "SQLite database path")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `BracketLab - Tournament Bracket Pool

Usage:
  bracketlab [options]

Options:
  -port int      HTTP server port (default 8080)
  -db string     SQLite database path (default "bracketlab.db")
  -loglevel str  Log level: debug, info, warn, error (default "info")
  -version       Show version and exit
  -help          Show this help message

Environment (or .env file):
  ESPN_BASE_URL  Override the ESPN scoreboard base URL
  NCAA_BASE_URL  Override the NCAA scoreboard base URL

Examples:
  bracketlab                         # Run on port 8080 with bracketlab.db
  bracketlab -port 80                # Run on port 80
  bracketlab -db /data/pool.db       # Use custom database path
  bracketlab -loglevel debug         # Verbose logging

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("bracketlab %s\n", version)
		os.Exit(0)
	}

	// Create logger with specified level
	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))

	// Score feeds, in fallback order: ESPN first, NCAA second
	espnURL := os.Getenv("ESPN_BASE_URL")
	if espnURL == "" {
		espnURL = sportsfeed.DefaultESPNBaseURL
	}
	ncaaURL := os.Getenv("NCAA_BASE_URL")
	if ncaaURL == "" {
		ncaaURL = sportsfeed.DefaultNCAABaseURL
	}
	feeds := []sportsfeed.Client{
		sportsfeed.NewESPNClient(espnURL, appLog),
		sportsfeed.NewNCAAClient(ncaaURL, appLog),
	}

	sessions := auth.New()

	a, err := app.New(appLog, *dbPath, feeds, web.GetTemplatesFS(), web.GetStaticFS(), sessions)
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	addr := fmt.Sprintf(":%d", *port)
	if err := a.Run(addr); err != nil {
		log.Fatal(err)
	}
}
