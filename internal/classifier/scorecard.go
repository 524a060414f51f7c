package classifier

import (
	"context"
	"fmt"
)

// Scorecard is the concrete gateway: a linear model re-expressed as a JSON
// artifact with per-category weights for object columns and coefficients
// for numeric columns. It is stateless; Predict never mutates it.
type Scorecard struct {
	Intercept    float64                       `json:"intercept"`
	Threshold    float64                       `json:"threshold"`
	Weights      map[string]map[string]float64 `json:"weights"`
	Coefficients map[string]float64            `json:"coefficients"`
}

// LoadScorecard reads a scorecard artifact from disk.
func LoadScorecard(path string) (*Scorecard, error) {
	var sc Scorecard
	if err := readJSON(path, &sc); err != nil {
		return nil, fmt.Errorf("load scorecard: %w", err)
	}
	if sc.Weights == nil && sc.Coefficients == nil {
		return nil, fmt.Errorf("load scorecard: no weights or coefficients in %s", path)
	}
	return &sc, nil
}

// Predict sums the row's category weights and numeric contributions and
// compares against the threshold. Categories absent from the scorecard
// contribute zero; a column that is neither weighted nor numeric is a
// model/manifest mismatch and wraps ErrPredict.
func (sc *Scorecard) Predict(_ context.Context, row Row) (bool, error) {
	score := sc.Intercept
	for i, col := range row.Columns {
		switch v := row.Values[i].(type) {
		case string:
			weights, ok := sc.Weights[col]
			if !ok {
				return false, fmt.Errorf("%w: no weights for column %q", ErrPredict, col)
			}
			score += weights[v]
		case int64:
			coeff, ok := sc.Coefficients[col]
			if !ok {
				return false, fmt.Errorf("%w: no coefficient for column %q", ErrPredict, col)
			}
			score += coeff * float64(v)
		case float64:
			coeff, ok := sc.Coefficients[col]
			if !ok {
				return false, fmt.Errorf("%w: no coefficient for column %q", ErrPredict, col)
			}
			score += coeff * v
		default:
			return false, fmt.Errorf("%w: column %q has unexpected type %T", ErrPredict, col, row.Values[i])
		}
	}
	return score >= sc.Threshold, nil
}
