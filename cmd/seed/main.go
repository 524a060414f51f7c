package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/quaylabs/frisk/internal/seedtraffic"
)

// Default configuration constants.
const (
	defaultObservations = 1000
	defaultWorkers      = 2 // multiplier for runtime.NumCPU()
	defaultTimeout      = 30 * time.Second
	defaultOutcomeRatio = 0.5
	defaultSeedTimeout  = 10 * time.Minute
)

func main() {
	var (
		baseURL      = flag.String("url", "http://localhost:9090", "Base URL of the service")
		observations = flag.Int("observations", defaultObservations, "Number of observations to generate and submit")
		workers      = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout      = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outcomeRatio = flag.Float64("outcomes", defaultOutcomeRatio, "Fraction of observations that get a reported outcome")
		logFile      = flag.String("log", "", "Log file for seeder output (default: seed_log_TIMESTAMP.log)")
		verbose      = flag.Bool("verbose", false, "Enable verbose logging")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seedtraffic.ShowHelp()
		return
	}

	if err := seedtraffic.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultSeedTimeout)
	defer cancel()

	config := &seedtraffic.Config{
		BaseURL:         *baseURL,
		NumObservations: *observations,
		Workers:         *workers,
		Timeout:         *timeout,
		OutcomeRatio:    *outcomeRatio,
		LogFile:         *logFile,
		Verbose:         *verbose,
	}

	if err := seedtraffic.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seeding failed: " + err.Error() + "\n")
		return
	}
}
