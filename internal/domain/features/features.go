// Package features turns a validated observation into the feature map
// handed to the classifier.
package features

import (
	"fmt"
	"time"

	"github.com/quaylabs/frisk/internal/domain/observation"
)

// Derived column names added to the feature map.
const (
	ColumnHour  = "hour"
	ColumnDay   = "day"
	ColumnMonth = "month"
)

// timestampLayouts cover the ISO-8601 forms accepted by validation; the
// parser tolerates fractional seconds on both. The zoneless layout keeps
// the timestamp's own clock reading; no normalization to UTC happens here.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseError reports a Date value that could not be parsed as an instant.
// Validation runs before derivation, so this surfaces only for timestamps
// that match the ISO-8601 grammar but name an impossible date.
type ParseError struct {
	Value any
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Date '%v' is not a valid instant", e.Value)
}

// Derive builds the classifier feature map from a validated observation:
// the observation minus observation_id and Date, plus integer hour, day and
// month extracted in the timestamp's own offset. The input map is left
// untouched.
func Derive(obs map[string]any) (map[string]any, error) {
	raw, _ := obs[observation.ColumnDate].(string)
	ts, err := parseTimestamp(raw)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(obs)+1)
	for k, v := range obs {
		if k == observation.ColumnID || k == observation.ColumnDate {
			continue
		}
		out[k] = v
	}
	out[ColumnHour] = ts.Hour()
	out[ColumnDay] = ts.Day()
	out[ColumnMonth] = int(ts.Month())
	return out, nil
}

func parseTimestamp(raw string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, &ParseError{Value: raw}
}
