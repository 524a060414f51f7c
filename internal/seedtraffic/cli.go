package seedtraffic

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/quaylabs/frisk/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "seed_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the traffic seeder.
func ShowHelp() {
	os.Stdout.WriteString(`Frisk Traffic Seeder
====================

A concurrent tool for seeding the decision service with realistic
stop-and-search observations and reported outcomes.

Usage:
  go run cmd/seed/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9090")
  -observations int
        Number of observations to generate and submit (default 1000)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -outcomes float
        Fraction of observations that get a reported outcome (default 0.5)
  -log string
        Log file for seeder output (default: seed_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed with default settings
  go run cmd/seed/main.go

  # Seed with custom parameters
  go run cmd/seed/main.go -observations 5000 -workers 16 -url http://localhost:8080

  # Report outcomes for every observation
  go run cmd/seed/main.go -observations 1000 -outcomes 1.0
`)
}
