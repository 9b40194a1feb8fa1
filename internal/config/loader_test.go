package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DetroitRed03/chatnil-engine/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no overrides", t, func() {
		cfg, err := config.Load(context.Background())

		So(err, ShouldBeNil)
		So(cfg.Addr, ShouldEqual, ":9080")
		So(cfg.LogLevel, ShouldEqual, "info")
		So(cfg.MaxTopLimit, ShouldEqual, 100)
		So(cfg.BatchMaxItems, ShouldEqual, 2000)
		So(cfg.BatchSubBatchSize, ShouldEqual, 50)
		So(cfg.Weights.Validate(), ShouldBeNil)
		So(cfg.PostgresDSN, ShouldBeEmpty)
		So(len(cfg.KafkaBrokers), ShouldEqual, 0)
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("CHATNIL_ADDR", ":7070")
		t.Setenv("CHATNIL_LOG_LEVEL", "debug")
		t.Setenv("CHATNIL_BATCH_MAX_ITEMS", "100")

		cfg, err := config.Load(context.Background())

		So(err, ShouldBeNil)
		So(cfg.Addr, ShouldEqual, ":7070")
		So(cfg.LogLevel, ShouldEqual, "debug")
		So(cfg.BatchMaxItems, ShouldEqual, 100)
		// Untouched fields keep their defaults.
		So(cfg.MaxTopLimit, ShouldEqual, 100)
	})
}

func TestLoadFromFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "chatnil.yaml")
		yaml := []byte("addr: \":6060\"\nmax_top_limit: 25\nkafka_brokers:\n  - broker-1:9092\n  - broker-2:9092\n")
		So(os.WriteFile(path, yaml, 0o600), ShouldBeNil)
		t.Setenv("CHATNIL_CONFIG", path)

		Convey("Then file values layer over defaults", func() {
			cfg, err := config.Load(context.Background())

			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":6060")
			So(cfg.MaxTopLimit, ShouldEqual, 25)
			So(cfg.KafkaBrokers, ShouldResemble, []string{"broker-1:9092", "broker-2:9092"})
		})

		Convey("And environment values win over the file", func() {
			t.Setenv("CHATNIL_ADDR", ":5050")

			cfg, err := config.Load(context.Background())

			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":5050")
			So(cfg.MaxTopLimit, ShouldEqual, 25)
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given an invalid override", t, func() {
		Convey("When the top limit is zero", func() {
			t.Setenv("CHATNIL_MAX_TOP_LIMIT", "0")

			_, err := config.Load(context.Background())
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})

		Convey("When the weights do not sum to one", func() {
			dir := t.TempDir()
			path := filepath.Join(dir, "chatnil.yaml")
			yaml := []byte("weights:\n  policy_fit: 0.9\n  fmv_verification: 0.9\n")
			So(os.WriteFile(path, yaml, 0o600), ShouldBeNil)
			t.Setenv("CHATNIL_CONFIG", path)

			_, err := config.Load(context.Background())
			So(err, ShouldWrap, config.ErrInvalidConfig)
		})

		Convey("When the config file is missing", func() {
			t.Setenv("CHATNIL_CONFIG", "/nonexistent/chatnil.yaml")

			_, err := config.Load(context.Background())
			So(err, ShouldWrap, config.ErrLoadConfig)
		})
	})
}
