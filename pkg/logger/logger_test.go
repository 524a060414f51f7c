package logger_test

import (
	"context"
	"testing"

	"github.com/quaylabs/frisk/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		So(logger.Init(), ShouldBeNil)
		l := logger.Get()
		ctx := context.Background()

		Convey("Then logging at every level does not panic", func() {
			So(func() {
				l.Debug(ctx, "debug", logger.String("k", "v"))
				l.Info(ctx, "info", logger.Int("n", 1))
				l.Warn(ctx, "warn", logger.Float64("f", 1.5))
				l.Error(ctx, "error", logger.Error(nil), logger.Bool("ok", true))
			}, ShouldNotPanic)
		})

		Convey("And named loggers derive from the global one", func() {
			named := logger.Named("store")
			So(named, ShouldNotBeNil)
			So(func() { named.Info(ctx, "hello", logger.Any("v", 42)) }, ShouldNotPanic)
		})
	})

	Convey("Given level strings", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then known levels are accepted", func() {
			for _, lvl := range []string{"debug", "info", "warn", "warning", "error", "INFO"} {
				So(logger.SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("And unknown levels are rejected", func() {
			So(logger.SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}
