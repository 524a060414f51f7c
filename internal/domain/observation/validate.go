package observation

import (
	"regexp"
	"sort"
)

// iso8601 matches strict ISO-8601 timestamps: YYYY-MM-DDTHH:MM:SS with
// optional fractional seconds and optional Z or ±HH:MM offset. The year may
// be signed and extended beyond four digits.
var iso8601 = regexp.MustCompile(
	`^(-?(?:[1-9][0-9]*)?[0-9]{4})-(1[0-2]|0[1-9])-(3[01]|0[1-9]|[12][0-9])` +
		`T(2[0-3]|[01][0-9]):([0-5][0-9]):([0-5][0-9])(\.[0-9]+)?` +
		`(Z|[+-](?:2[0-3]|[01][0-9]):[0-5][0-9])?$`)

// Validate checks a decoded observation payload against the closed schema.
// Checks run in order and stop at the first failure: column completeness,
// typed columns, timestamp format, latitude, longitude. Validate never
// mutates obs.
//
// A Latitude or Longitude of exactly 0 is rejected as missing. That keeps
// the historical truthiness rule; true equatorial or prime-meridian
// coordinates are not accepted.
func Validate(obs map[string]any) error {
	if err := checkColumns(obs); err != nil {
		return err
	}
	if err := checkColumnTypes(obs); err != nil {
		return err
	}
	if err := checkDate(obs); err != nil {
		return err
	}
	if err := checkCoordinate(obs, ColumnLatitude); err != nil {
		return err
	}
	return checkCoordinate(obs, ColumnLongitude)
}

// checkColumns verifies the payload key set equals the schema. Missing and
// unrecognized columns are computed independently by set difference.
func checkColumns(obs map[string]any) error {
	var missing []string
	for col := range schema {
		if _, ok := obs[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MissingColumnsError{Columns: missing}
	}

	var extra []string
	for key := range obs {
		if _, ok := schema[key]; !ok {
			extra = append(extra, key)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return &UnrecognizedColumnsError{Columns: extra}
	}
	return nil
}

// stringColumns must decode as JSON strings.
var stringColumns = []string{ColumnID, ColumnPolicingOp}

func checkColumnTypes(obs map[string]any) error {
	for _, col := range stringColumns {
		if _, ok := obs[col].(string); !ok {
			return &TypeMismatchError{
				Column:   col,
				Expected: "string",
				Actual:   jsonTypeName(obs[col]),
			}
		}
	}
	return nil
}

func checkDate(obs map[string]any) error {
	date, ok := obs[ColumnDate].(string)
	if !ok || !iso8601.MatchString(date) {
		return &InvalidTimestampError{Value: obs[ColumnDate]}
	}
	return nil
}

func checkCoordinate(obs map[string]any, col string) error {
	v := obs[col]
	switch n := v.(type) {
	case float64:
		if n == 0 {
			return &CoordinateError{Column: col, Value: v, Missing: true}
		}
		return nil
	case int:
		if n == 0 {
			return &CoordinateError{Column: col, Value: v, Missing: true}
		}
		return nil
	case nil:
		return &CoordinateError{Column: col, Value: v, Missing: true}
	default:
		return &CoordinateError{Column: col, Value: v}
	}
}

// jsonTypeName renders a decoded JSON value's type the way callers see it
// in their payloads.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, int:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
