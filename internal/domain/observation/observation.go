// Package observation defines the closed stop-and-search observation schema
// and validation of incoming observation payloads.
package observation

// Column names of the closed observation schema, exactly as they appear on
// the wire. The set is case-sensitive and closed: a payload must carry all
// of them and nothing else.
const (
	ColumnID          = "observation_id"
	ColumnType        = "Type"
	ColumnDate        = "Date"
	ColumnPolicingOp  = "Part of a policing operation"
	ColumnLatitude    = "Latitude"
	ColumnLongitude   = "Longitude"
	ColumnGender      = "Gender"
	ColumnAgeRange    = "Age range"
	ColumnEthnicity   = "Officer-defined ethnicity"
	ColumnLegislation = "Legislation"
	ColumnObject      = "Object of search"
	ColumnStation     = "station"
)

// schema is the closed column set used for completeness checks.
var schema = map[string]struct{}{
	ColumnID:          {},
	ColumnType:        {},
	ColumnDate:        {},
	ColumnPolicingOp:  {},
	ColumnLatitude:    {},
	ColumnLongitude:   {},
	ColumnGender:      {},
	ColumnAgeRange:    {},
	ColumnEthnicity:   {},
	ColumnLegislation: {},
	ColumnObject:      {},
	ColumnStation:     {},
}

// Columns returns the closed schema as a fresh slice in declaration order.
func Columns() []string {
	return []string{
		ColumnID,
		ColumnType,
		ColumnDate,
		ColumnPolicingOp,
		ColumnLatitude,
		ColumnLongitude,
		ColumnGender,
		ColumnAgeRange,
		ColumnEthnicity,
		ColumnLegislation,
		ColumnObject,
		ColumnStation,
	}
}
