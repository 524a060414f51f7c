package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/quaylabs/frisk/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no environment or file", t, func() {
		os.Unsetenv("FRISK_CONFIG")

		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then defaults apply", func() {
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.Store, ShouldEqual, config.StoreSQLite)
			So(cfg.DBPath, ShouldEqual, "predictions.db")
			So(cfg.ModelDir, ShouldEqual, "artifacts")
			So(cfg.StoreTimeoutMS, ShouldEqual, 2000)
		})
	})
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("FRISK_ADDR", ":7001")
	t.Setenv("FRISK_STORE", "memory")
	t.Setenv("FRISK_LOG_LEVEL", "debug")

	Convey("Given FRISK_ environment variables", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then env values override defaults", func() {
			So(cfg.Addr, ShouldEqual, ":7001")
			So(cfg.Store, ShouldEqual, config.StoreMemory)
			So(cfg.LogLevel, ShouldEqual, "debug")
		})
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frisk.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7002\"\ndb_path: /tmp/p.db\nstore_timeout_ms: 500\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FRISK_CONFIG", path)

	Convey("Given a YAML config file", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then file values override defaults", func() {
			So(cfg.Addr, ShouldEqual, ":7002")
			So(cfg.DBPath, ShouldEqual, "/tmp/p.db")
			So(cfg.StoreTimeoutMS, ShouldEqual, 500)
		})
	})
}

func TestLoadFileEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frisk.yaml")
	if err := os.WriteFile(path, []byte("addr: \":7002\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FRISK_CONFIG", path)
	t.Setenv("FRISK_ADDR", ":7003")

	Convey("Given both a file and env", t, func() {
		cfg, err := config.Load(context.Background())
		So(err, ShouldBeNil)

		Convey("Then env wins over the file", func() {
			So(cfg.Addr, ShouldEqual, ":7003")
		})
	})
}

func TestLoadInvalidStore(t *testing.T) {
	t.Setenv("FRISK_STORE", "redis")

	Convey("Given an unknown store backend", t, func() {
		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
	})
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("FRISK_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	Convey("Given a config path that does not exist", t, func() {
		_, err := config.Load(context.Background())
		So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
	})
}
