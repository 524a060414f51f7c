package observation_test

import (
	"testing"

	"github.com/quaylabs/frisk/internal/domain/observation"
	. "github.com/smartystreets/goconvey/convey"
)

// validObservation returns a payload that passes every check.
func validObservation() map[string]any {
	return map[string]any{
		"observation_id":               "A1",
		"Type":                         "Person search",
		"Date":                         "2021-06-01T14:30:00",
		"Part of a policing operation": "False",
		"Latitude":                     51.5,
		"Longitude":                    -0.12,
		"Gender":                       "Male",
		"Age range":                    "25-34",
		"Officer-defined ethnicity":    "White",
		"Legislation":                  "Misuse of Drugs Act 1971 (section 23)",
		"Object of search":             "Controlled drugs",
		"station":                      "metropolitan",
	}
}

func TestValidate(t *testing.T) {
	Convey("Given a fully populated observation", t, func() {
		obs := validObservation()

		Convey("Then validation succeeds", func() {
			So(observation.Validate(obs), ShouldBeNil)
		})

		Convey("And the payload is not mutated", func() {
			So(observation.Validate(obs), ShouldBeNil)
			So(len(obs), ShouldEqual, len(observation.Columns()))
		})
	})

	Convey("Given observations with missing columns", t, func() {
		Convey("When one column is absent", func() {
			obs := validObservation()
			delete(obs, "Longitude")

			err := observation.Validate(obs)

			Convey("Then a MissingColumnsError names exactly that column", func() {
				var missing *observation.MissingColumnsError
				So(err, ShouldNotBeNil)
				So(err, ShouldHaveSameTypeAs, missing)
				So(err.(*observation.MissingColumnsError).Columns, ShouldResemble, []string{"Longitude"})
			})
		})

		Convey("When several columns are absent", func() {
			obs := validObservation()
			delete(obs, "Gender")
			delete(obs, "station")

			err := observation.Validate(obs)

			Convey("Then all of them are reported, sorted", func() {
				So(err, ShouldNotBeNil)
				So(err.(*observation.MissingColumnsError).Columns, ShouldResemble, []string{"Gender", "station"})
			})
		})
	})

	Convey("Given an observation with extra columns", t, func() {
		obs := validObservation()
		obs["Vehicle"] = "none"

		err := observation.Validate(obs)

		Convey("Then an UnrecognizedColumnsError names exactly the extras", func() {
			var extra *observation.UnrecognizedColumnsError
			So(err, ShouldNotBeNil)
			So(err, ShouldHaveSameTypeAs, extra)
			So(err.(*observation.UnrecognizedColumnsError).Columns, ShouldResemble, []string{"Vehicle"})
		})
	})

	Convey("Given mistyped string columns", t, func() {
		Convey("When observation_id is a number", func() {
			obs := validObservation()
			obs["observation_id"] = 42.0

			err := observation.Validate(obs)

			Convey("Then a TypeMismatchError reports the column and types", func() {
				var mismatch *observation.TypeMismatchError
				So(err, ShouldHaveSameTypeAs, mismatch)
				e := err.(*observation.TypeMismatchError)
				So(e.Column, ShouldEqual, "observation_id")
				So(e.Expected, ShouldEqual, "string")
				So(e.Actual, ShouldEqual, "number")
			})
		})

		Convey("When the policing-operation flag is a boolean", func() {
			obs := validObservation()
			obs["Part of a policing operation"] = false

			err := observation.Validate(obs)

			Convey("Then the mismatch is reported for that column", func() {
				e, ok := err.(*observation.TypeMismatchError)
				So(ok, ShouldBeTrue)
				So(e.Column, ShouldEqual, "Part of a policing operation")
				So(e.Actual, ShouldEqual, "boolean")
			})
		})
	})

	Convey("Given timestamps", t, func() {
		valid := []string{
			"2021-06-01T14:30:00",
			"2021-06-01T14:30:00.123",
			"2021-06-01T14:30:00Z",
			"2021-06-01T14:30:00+01:00",
			"2021-12-31T23:59:59.999999-05:30",
			"12021-06-01T14:30:00",
			"-0500-01-01T00:00:00",
		}
		invalid := []string{
			"2021-13-01T00:00:00",
			"2021-00-01T00:00:00",
			"2021-06-32T00:00:00",
			"2021-06-01T24:00:00",
			"2021-06-01 14:30:00",
			"2021-06-01",
			"not a date",
			"",
		}

		Convey("Then well-formed ISO-8601 values are accepted", func() {
			for _, ts := range valid {
				obs := validObservation()
				obs["Date"] = ts
				So(observation.Validate(obs), ShouldBeNil)
			}
		})

		Convey("Then malformed values are rejected", func() {
			for _, ts := range invalid {
				obs := validObservation()
				obs["Date"] = ts
				err := observation.Validate(obs)
				var bad *observation.InvalidTimestampError
				So(err, ShouldHaveSameTypeAs, bad)
			}
		})

		Convey("Then a non-string Date is rejected", func() {
			obs := validObservation()
			obs["Date"] = 20210601.0
			var bad *observation.InvalidTimestampError
			So(observation.Validate(obs), ShouldHaveSameTypeAs, bad)
		})
	})

	Convey("Given coordinate values", t, func() {
		Convey("When Latitude is null", func() {
			obs := validObservation()
			obs["Latitude"] = nil

			err := observation.Validate(obs)

			Convey("Then it is reported as missing", func() {
				e, ok := err.(*observation.CoordinateError)
				So(ok, ShouldBeTrue)
				So(e.Missing, ShouldBeTrue)
				So(e.Error(), ShouldEqual, "Field `Latitude` missing")
			})
		})

		Convey("When Longitude is exactly zero", func() {
			obs := validObservation()
			obs["Longitude"] = 0.0

			err := observation.Validate(obs)

			Convey("Then the falsy-zero rule rejects it as missing", func() {
				e, ok := err.(*observation.CoordinateError)
				So(ok, ShouldBeTrue)
				So(e.Column, ShouldEqual, "Longitude")
				So(e.Missing, ShouldBeTrue)
			})
		})

		Convey("When Latitude is a string", func() {
			obs := validObservation()
			obs["Latitude"] = "51.5"

			err := observation.Validate(obs)

			Convey("Then it must be a number", func() {
				e, ok := err.(*observation.CoordinateError)
				So(ok, ShouldBeTrue)
				So(e.Missing, ShouldBeFalse)
				So(e.Error(), ShouldEqual, "51.5 must be a number")
			})
		})

		Convey("When coordinates arrive as Go ints", func() {
			obs := validObservation()
			obs["Latitude"] = 51
			obs["Longitude"] = -1

			Convey("Then they are accepted", func() {
				So(observation.Validate(obs), ShouldBeNil)
			})
		})
	})

	Convey("Given the check ordering", t, func() {
		Convey("When a payload is both incomplete and mistyped", func() {
			obs := validObservation()
			delete(obs, "station")
			obs["observation_id"] = 1.0

			err := observation.Validate(obs)

			Convey("Then the column check wins", func() {
				var missing *observation.MissingColumnsError
				So(err, ShouldHaveSameTypeAs, missing)
			})
		})
	})
}

func TestCheckName(t *testing.T) {
	Convey("Given each validation error", t, func() {
		cases := map[string]error{
			observation.CheckColumnsMissing:      &observation.MissingColumnsError{Columns: []string{"x"}},
			observation.CheckColumnsUnrecognized: &observation.UnrecognizedColumnsError{Columns: []string{"x"}},
			observation.CheckColumnType:          &observation.TypeMismatchError{Column: "x"},
			observation.CheckTimestamp:           &observation.InvalidTimestampError{Value: "x"},
			observation.CheckLatitude:            &observation.CoordinateError{Column: observation.ColumnLatitude},
			observation.CheckLongitude:           &observation.CoordinateError{Column: observation.ColumnLongitude},
		}

		Convey("Then CheckName labels it", func() {
			for want, err := range cases {
				So(observation.CheckName(err), ShouldEqual, want)
				So(observation.IsValidationError(err), ShouldBeTrue)
			}
		})

		Convey("And unrelated errors are not validation errors", func() {
			So(observation.IsValidationError(nil), ShouldBeFalse)
		})
	})
}
