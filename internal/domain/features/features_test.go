package features_test

import (
	"testing"

	"github.com/quaylabs/frisk/internal/domain/features"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleObservation(date string) map[string]any {
	return map[string]any{
		"observation_id":               "A1",
		"Type":                         "Person search",
		"Date":                         date,
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

func TestDerive(t *testing.T) {
	Convey("Given a validated observation", t, func() {
		obs := sampleObservation("2021-06-01T14:30:00")

		Convey("When deriving features", func() {
			got, err := features.Derive(obs)
			So(err, ShouldBeNil)

			Convey("Then hour, day and month come from the timestamp", func() {
				So(got["hour"], ShouldEqual, 14)
				So(got["day"], ShouldEqual, 1)
				So(got["month"], ShouldEqual, 6)
			})

			Convey("And the id and timestamp columns are dropped", func() {
				_, hasID := got["observation_id"]
				_, hasDate := got["Date"]
				So(hasID, ShouldBeFalse)
				So(hasDate, ShouldBeFalse)
			})

			Convey("And the remaining attributes carry over unchanged", func() {
				So(got["station"], ShouldEqual, "metropolitan")
				So(got["Latitude"], ShouldEqual, 51.5)
				So(len(got), ShouldEqual, 13)
			})

			Convey("And the input map is not mutated", func() {
				So(obs["Date"], ShouldEqual, "2021-06-01T14:30:00")
				So(len(obs), ShouldEqual, 12)
			})
		})
	})

	Convey("Given offset timestamps", t, func() {
		Convey("When the timestamp carries a zone offset", func() {
			got, err := features.Derive(sampleObservation("2021-06-01T23:30:00-05:00"))
			So(err, ShouldBeNil)

			Convey("Then fields reflect the timestamp's own clock, not UTC", func() {
				So(got["hour"], ShouldEqual, 23)
				So(got["day"], ShouldEqual, 1)
			})
		})

		Convey("When the timestamp ends in Z", func() {
			got, err := features.Derive(sampleObservation("2021-12-31T00:15:30Z"))
			So(err, ShouldBeNil)
			So(got["hour"], ShouldEqual, 0)
			So(got["day"], ShouldEqual, 31)
			So(got["month"], ShouldEqual, 12)
		})

		Convey("When the timestamp has fractional seconds", func() {
			got, err := features.Derive(sampleObservation("2021-06-01T14:30:00.250+01:00"))
			So(err, ShouldBeNil)
			So(got["hour"], ShouldEqual, 14)
		})
	})

	Convey("Given a grammatical but impossible date", t, func() {
		_, err := features.Derive(sampleObservation("2021-02-30T12:00:00"))

		Convey("Then derivation fails with a parse error", func() {
			var parseErr *features.ParseError
			So(err, ShouldNotBeNil)
			So(err, ShouldHaveSameTypeAs, parseErr)
		})
	})
}
