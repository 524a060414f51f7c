package seedtraffic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/quaylabs/frisk/pkg/logger"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitObservations submits observations concurrently using a worker pool
// and records each returned decision by observation id.
func submitObservations(ctx context.Context, config *Config, observations []Observation, stats *Stats) (map[string]bool, error) {
	logger.Get().Info(ctx, "submitting observations",
		logger.Int("count", len(observations)),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/should_search/"

	var (
		successful int64
		duplicate  int64
		failed     int64
		submitted  int64
	)

	decisions := make(map[string]bool, len(observations))
	var decisionsMu sync.Mutex

	obsChan := make(chan Observation, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for obs := range obsChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				decision, result := submitSingleObservation(ctx, client, url, obs)
				atomic.AddInt64(&submitted, 1)
				switch result {
				case "success":
					atomic.AddInt64(&successful, 1)
					decisionsMu.Lock()
					decisions[obs.ObservationID] = decision
					decisionsMu.Unlock()
				case "duplicate":
					atomic.AddInt64(&duplicate, 1)
				case "failed":
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(obsChan)
		for _, obs := range observations {
			select {
			case <-ctx.Done():
				return
			case obsChan <- obs:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Successful = int(atomic.LoadInt64(&successful))
	stats.Duplicate = int(atomic.LoadInt64(&duplicate))
	stats.Failed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "observation submission completed",
		logger.Int("successful", stats.Successful),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("failed", stats.Failed))

	return decisions, nil
}

// submitSingleObservation submits one observation and classifies the result.
func submitSingleObservation(ctx context.Context, client *HTTPClient, url string, obs Observation) (bool, string) {
	resp, err := client.Post(ctx, url, obs)
	if err != nil {
		return false, "failed"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return false, "failed"
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var decision DecisionResponse
		if err := json.Unmarshal(body, &decision); err != nil {
			return false, "failed"
		}
		return decision.Outcome, "success"
	case http.StatusConflict:
		return false, "duplicate"
	default:
		return false, "failed"
	}
}

// reportOutcomes attaches a ground-truth outcome to a fraction of the
// recorded observations and checks the echoed prediction against the
// decision received at submission time.
func reportOutcomes(ctx context.Context, config *Config, decisions map[string]bool, stats *Stats) error {
	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/search_result/"

	target := int(float64(len(decisions)) * config.OutcomeRatio)
	logger.Get().Info(ctx, "reporting outcomes", logger.Int("count", target))

	reported := 0
	for id, predicted := range decisions {
		if reported >= target {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		// Real outcomes agree with the prediction most of the time
		outcome := predicted
		if randomFloat() < 0.3 {
			outcome = !outcome
		}

		resp, err := client.Post(ctx, url, OutcomeReport{ObservationID: id, Outcome: outcome})
		if err != nil {
			stats.OutcomesFailed++
			continue
		}

		body, err := readResponseBody(resp)
		if err != nil || resp.StatusCode != http.StatusOK {
			stats.OutcomesFailed++
			continue
		}

		var result OutcomeResponse
		if err := json.Unmarshal(body, &result); err != nil {
			stats.OutcomesFailed++
			continue
		}

		stats.OutcomesReported++
		if result.PredictedOutcome == predicted {
			stats.OutcomesMatched++
		} else if config.Verbose {
			logger.Get().Warn(ctx, "echoed prediction disagrees with submission decision",
				logger.String("id", id),
				logger.Bool("submitted", predicted),
				logger.Bool("echoed", result.PredictedOutcome))
		}
		reported++
	}

	return nil
}
