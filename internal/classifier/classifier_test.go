package classifier_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/quaylabs/frisk/internal/classifier"
	. "github.com/smartystreets/goconvey/convey"
)

func testManifest(t *testing.T) *classifier.Manifest {
	t.Helper()
	m, err := classifier.LoadManifest(
		filepath.Join("testdata", "columns.json"),
		filepath.Join("testdata", "dtypes.json"),
	)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	return m
}

func sampleFeatures() map[string]any {
	return map[string]any{
		"Type":                         "Person search",
		"Part of a policing operation": "False",
		"Latitude":                     51.5,
		"Longitude":                    -0.12,
		"Gender":                       "Male",
		"Age range":                    "25-34",
		"Officer-defined ethnicity":    "White",
		"Legislation":                  "Misuse of Drugs Act 1971 (section 23)",
		"Object of search":             "Controlled drugs",
		"station":                      "metropolitan",
		"hour":                         14,
		"month":                        6,
		"day":                          1,
	}
}

func TestManifest(t *testing.T) {
	Convey("Given the manifest artifacts", t, func() {
		m := testManifest(t)

		Convey("Then the column order is preserved", func() {
			cols := m.Columns()
			So(len(cols), ShouldEqual, 13)
			So(cols[0], ShouldEqual, "Type")
			So(cols[len(cols)-1], ShouldEqual, "day")
		})

		Convey("When encoding a complete feature map", func() {
			row, err := m.Encode(sampleFeatures())
			So(err, ShouldBeNil)

			Convey("Then values are typed and ordered per the manifest", func() {
				So(len(row.Values), ShouldEqual, 13)
				So(row.Values[0], ShouldEqual, "Person search")
				So(row.Values[2], ShouldEqual, 51.5)
				hourIdx := len(row.Columns) - 3
				So(row.Columns[hourIdx], ShouldEqual, "hour")
				So(row.Values[hourIdx], ShouldEqual, int64(14))
			})
		})

		Convey("When a column is absent", func() {
			f := sampleFeatures()
			delete(f, "station")
			_, err := m.Encode(f)

			Convey("Then the error wraps ErrEncode", func() {
				So(errors.Is(err, classifier.ErrEncode), ShouldBeTrue)
			})
		})

		Convey("When an unknown column sneaks in", func() {
			f := sampleFeatures()
			f["Vehicle"] = "none"
			_, err := m.Encode(f)
			So(errors.Is(err, classifier.ErrEncode), ShouldBeTrue)
		})

		Convey("When a value cannot be coerced", func() {
			f := sampleFeatures()
			f["hour"] = "fourteen"
			_, err := m.Encode(f)
			So(errors.Is(err, classifier.ErrEncode), ShouldBeTrue)
		})

		Convey("When an integer column carries a fractional value", func() {
			f := sampleFeatures()
			f["hour"] = 14.5
			_, err := m.Encode(f)
			So(errors.Is(err, classifier.ErrEncode), ShouldBeTrue)
		})

		Convey("When integer columns arrive as whole floats", func() {
			f := sampleFeatures()
			f["hour"] = 14.0
			row, err := m.Encode(f)
			So(err, ShouldBeNil)
			So(row.Values[len(row.Values)-3], ShouldEqual, int64(14))
		})
	})

	Convey("Given inconsistent manifest artifacts", t, func() {
		Convey("When a column has no dtype", func() {
			_, err := classifier.NewManifest([]string{"a", "b"}, map[string]string{"a": "object"})
			So(err, ShouldNotBeNil)
		})

		Convey("When a dtype names an unknown column", func() {
			_, err := classifier.NewManifest([]string{"a"}, map[string]string{"a": "object", "b": "int64"})
			So(err, ShouldNotBeNil)
		})

		Convey("When a dtype is unknown", func() {
			_, err := classifier.NewManifest([]string{"a"}, map[string]string{"a": "datetime64"})
			So(err, ShouldNotBeNil)
		})

		Convey("When a column is duplicated", func() {
			_, err := classifier.NewManifest([]string{"a", "a"}, map[string]string{"a": "object"})
			So(err, ShouldNotBeNil)
		})
	})
}

func TestScorecard(t *testing.T) {
	Convey("Given the scorecard artifact", t, func() {
		sc, err := classifier.LoadScorecard(filepath.Join("testdata", "scorecard.json"))
		So(err, ShouldBeNil)
		m := testManifest(t)
		ctx := context.Background()

		Convey("When predicting on a drugs search row", func() {
			row, err := m.Encode(sampleFeatures())
			So(err, ShouldBeNil)

			first, err := sc.Predict(ctx, row)
			So(err, ShouldBeNil)

			Convey("Then repeated calls are deterministic", func() {
				for i := 0; i < 5; i++ {
					again, err := sc.Predict(ctx, row)
					So(err, ShouldBeNil)
					So(again, ShouldEqual, first)
				}
			})
		})

		Convey("When the row strongly indicates a search", func() {
			f := sampleFeatures()
			f["Object of search"] = "Controlled drugs"
			f["Legislation"] = "Misuse of Drugs Act 1971 (section 23)"
			f["Part of a policing operation"] = "True"
			f["hour"] = 23
			row, err := m.Encode(f)
			So(err, ShouldBeNil)

			got, err := sc.Predict(ctx, row)
			So(err, ShouldBeNil)
			So(got, ShouldBeTrue)
		})

		Convey("When the row carries no signal", func() {
			f := sampleFeatures()
			f["Object of search"] = "Article for use in theft"
			f["Legislation"] = "Criminal Justice and Public Order Act 1994 (section 60)"
			f["Age range"] = "under 10"
			f["Gender"] = "Female"
			f["hour"] = 0
			row, err := m.Encode(f)
			So(err, ShouldBeNil)

			got, err := sc.Predict(ctx, row)
			So(err, ShouldBeNil)
			So(got, ShouldBeFalse)
		})

		Convey("When an unseen category appears", func() {
			f := sampleFeatures()
			f["station"] = "cleveland"
			row, err := m.Encode(f)
			So(err, ShouldBeNil)

			Convey("Then it contributes zero instead of failing", func() {
				_, err := sc.Predict(ctx, row)
				So(err, ShouldBeNil)
			})
		})

		Convey("When the model and manifest disagree on a column", func() {
			bare := &classifier.Scorecard{Coefficients: map[string]float64{"hour": 1}}
			row, err := m.Encode(sampleFeatures())
			So(err, ShouldBeNil)

			_, err = bare.Predict(ctx, row)

			Convey("Then the error wraps ErrPredict", func() {
				So(errors.Is(err, classifier.ErrPredict), ShouldBeTrue)
			})
		})
	})

	Convey("Given a missing artifact", t, func() {
		_, err := classifier.LoadScorecard(filepath.Join("testdata", "nope.json"))
		So(err, ShouldNotBeNil)
	})
}

func TestGatewayFunc(t *testing.T) {
	Convey("Given a plain function", t, func() {
		called := false
		gw := classifier.GatewayFunc(func(ctx context.Context, row classifier.Row) (bool, error) {
			called = true
			return true, nil
		})

		got, err := gw.Predict(context.Background(), classifier.Row{})

		Convey("Then it satisfies the Gateway interface", func() {
			So(err, ShouldBeNil)
			So(got, ShouldBeTrue)
			So(called, ShouldBeTrue)
		})
	})
}
