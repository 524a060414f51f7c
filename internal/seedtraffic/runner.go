package seedtraffic

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/quaylabs/frisk/pkg/logger"
)

// Run executes the complete seeding pass.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting traffic seeder",
		logger.String("baseURL", config.BaseURL),
		logger.Int("observations", config.NumObservations),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Float64("outcomeRatio", config.OutcomeRatio))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate observations
	observations, err := generateObservations(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("observation generation failed: %w", err)
	}

	// Step 3: Submit observations concurrently
	decisions, err := submitObservations(ctx, config, observations, stats)
	if err != nil {
		return fmt.Errorf("observation submission failed: %w", err)
	}

	// Step 4: Report outcomes for a fraction of them
	if err := reportOutcomes(ctx, config, decisions, stats); err != nil {
		return fmt.Errorf("outcome reporting failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "seeding completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Any 200 response counts as healthy (the body carries Prometheus metrics)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// displayFinalStats prints the final seeding statistics.
func displayFinalStats(stats *Stats) {
	var successRate, perSecond float64

	if stats.Submitted > 0 {
		successRate = float64(stats.Successful) / float64(stats.Submitted) * 100
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("failed", stats.Failed),
		logger.Int("outcomesReported", stats.OutcomesReported),
		logger.Int("outcomesMatched", stats.OutcomesMatched),
		logger.Int("outcomesFailed", stats.OutcomesFailed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("observationsPerSecond", perSecond))
}
