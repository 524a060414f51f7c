package seedtraffic

import "time"

// Config holds configuration for the traffic seeder
type Config struct {
	BaseURL         string        // Base URL of the service
	NumObservations int           // Number of observations to generate
	Workers         int           // Number of concurrent workers
	Timeout         time.Duration // HTTP request timeout
	OutcomeRatio    float64       // Fraction of observations that get a reported outcome
	LogFile         string        // Log file for seeder output
	Verbose         bool          // Enable verbose logging
}

// Observation mirrors the wire shape accepted by POST /should_search/.
type Observation struct {
	ObservationID  string  `json:"observation_id"`
	Type           string  `json:"Type"`
	Date           string  `json:"Date"`
	PolicingOp     string  `json:"Part of a policing operation"`
	Latitude       float64 `json:"Latitude"`
	Longitude      float64 `json:"Longitude"`
	Gender         string  `json:"Gender"`
	AgeRange       string  `json:"Age range"`
	Ethnicity      string  `json:"Officer-defined ethnicity"`
	Legislation    string  `json:"Legislation"`
	ObjectOfSearch string  `json:"Object of search"`
	Station        string  `json:"station"`
}

// DecisionResponse represents the response from observation submission
type DecisionResponse struct {
	Outcome bool `json:"outcome"`
}

// OutcomeReport mirrors the wire shape accepted by POST /search_result/.
type OutcomeReport struct {
	ObservationID string `json:"observation_id"`
	Outcome       bool   `json:"outcome"`
}

// OutcomeResponse represents the response after attaching an outcome
type OutcomeResponse struct {
	ObservationID    string `json:"observation_id"`
	Outcome          bool   `json:"outcome"`
	PredictedOutcome bool   `json:"predicted_outcome"`
}

// Stats holds seeder statistics
type Stats struct {
	Generated        int
	Submitted        int
	Successful       int
	Duplicate        int
	Failed           int
	OutcomesReported int
	OutcomesMatched  int
	OutcomesFailed   int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}
