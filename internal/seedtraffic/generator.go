package seedtraffic

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/quaylabs/frisk/pkg/logger"
)

const randomFloatDivisor = 1000000

// Value pools matching the categories the model was trained on.
var (
	searchTypes = []string{
		"Person search",
		"Person and Vehicle search",
		"Vehicle search",
	}
	policingOps  = []string{"True", "False"}
	genders      = []string{"Male", "Female", "Other"}
	ageRanges    = []string{"under 10", "10-17", "18-24", "25-34", "over 34"}
	ethnicities  = []string{"White", "Black", "Asian", "Other", "Mixed"}
	legislations = []string{
		"Misuse of Drugs Act 1971 (section 23)",
		"Police and Criminal Evidence Act 1984 (section 1)",
		"Criminal Justice and Public Order Act 1994 (section 60)",
		"Firearms Act 1968 (section 47)",
	}
	searchObjects = []string{
		"Controlled drugs",
		"Offensive weapons",
		"Stolen goods",
		"Article for use in theft",
		"Firearms",
	}
	stations = []string{
		"metropolitan",
		"merseyside",
		"cleveland",
		"thames-valley",
		"west-yorkshire",
	}
)

// Rough bounding box for Great Britain.
const (
	latitudeMin    = 49.9
	latitudeRange  = 8.7
	longitudeMin   = -7.5
	longitudeRange = 9.2
)

// randomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// pick returns a random element of values.
func pick(values []string) string {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(values))))
	return values[n.Int64()]
}

// generateObservations creates the specified number of observations with
// unique ids.
func generateObservations(ctx context.Context, config *Config, stats *Stats) ([]Observation, error) {
	logger.Get().Info(ctx, "generating observations", logger.Int("count", config.NumObservations))

	observations := make([]Observation, config.NumObservations)
	for i := range observations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		observations[i] = generateSingleObservation()
	}

	stats.Generated = len(observations)
	logger.Get().Info(ctx, "generated observations successfully", logger.Int("count", len(observations)))

	return observations, nil
}

// generateSingleObservation creates one observation with realistic values.
func generateSingleObservation() Observation {
	// Spread timestamps over the last 30 days
	daysBack, _ := rand.Int(rand.Reader, big.NewInt(30))
	when := time.Now().UTC().
		Add(-time.Duration(daysBack.Int64()) * 24 * time.Hour).
		Add(-time.Duration(randomFloat()*86400) * time.Second)

	return Observation{
		ObservationID:  uuid.New().String(),
		Type:           pick(searchTypes),
		Date:           when.Format(time.RFC3339),
		PolicingOp:     pick(policingOps),
		Latitude:       latitudeMin + randomFloat()*latitudeRange,
		Longitude:      longitudeMin + randomFloat()*longitudeRange,
		Gender:         pick(genders),
		AgeRange:       pick(ageRanges),
		Ethnicity:      pick(ethnicities),
		Legislation:    pick(legislations),
		ObjectOfSearch: pick(searchObjects),
		Station:        pick(stations),
	}
}
