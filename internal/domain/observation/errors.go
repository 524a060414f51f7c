package observation

import (
	"fmt"
	"strings"
)

// Check names used to label validation failures (e.g. in metrics).
const (
	CheckColumnsMissing      = "columns_missing"
	CheckColumnsUnrecognized = "columns_unrecognized"
	CheckColumnType          = "column_type"
	CheckTimestamp           = "timestamp"
	CheckLatitude            = "latitude"
	CheckLongitude           = "longitude"
)

// MissingColumnsError reports schema columns absent from the payload.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("Missing columns: %s", strings.Join(e.Columns, ", "))
}

// UnrecognizedColumnsError reports payload keys outside the closed schema.
type UnrecognizedColumnsError struct {
	Columns []string
}

func (e *UnrecognizedColumnsError) Error() string {
	return fmt.Sprintf("Unrecognized columns provided: %s", strings.Join(e.Columns, ", "))
}

// TypeMismatchError reports a column whose value has the wrong JSON type.
type TypeMismatchError struct {
	Column   string
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("Field %s is %s, while it should be %s", e.Column, e.Actual, e.Expected)
}

// InvalidTimestampError reports a Date value that is not strict ISO-8601.
type InvalidTimestampError struct {
	Value any
}

func (e *InvalidTimestampError) Error() string {
	return fmt.Sprintf("Date '%v' is not in correct ISO8601String format", e.Value)
}

// CoordinateError reports a missing or non-numeric Latitude/Longitude.
// Missing covers absent, null, and falsy-zero values (see Validate).
type CoordinateError struct {
	Column  string
	Value   any
	Missing bool
}

func (e *CoordinateError) Error() string {
	if e.Missing {
		return fmt.Sprintf("Field `%s` missing", e.Column)
	}
	return fmt.Sprintf("%v must be a number", e.Value)
}

// CheckName maps a validation error to the check that produced it.
// Returns the empty string for non-validation errors.
func CheckName(err error) string {
	switch e := err.(type) {
	case *MissingColumnsError:
		return CheckColumnsMissing
	case *UnrecognizedColumnsError:
		return CheckColumnsUnrecognized
	case *TypeMismatchError:
		return CheckColumnType
	case *InvalidTimestampError:
		return CheckTimestamp
	case *CoordinateError:
		if e.Column == ColumnLongitude {
			return CheckLongitude
		}
		return CheckLatitude
	default:
		return ""
	}
}

// IsValidationError reports whether err was produced by Validate.
func IsValidationError(err error) bool {
	return CheckName(err) != ""
}
