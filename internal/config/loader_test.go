package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/titanic/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.PassengersAddr, convey.ShouldEqual, ":3000")
				convey.So(cfg.DataPath, convey.ShouldEqual, "data/passengers.json")
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"*"})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("TITANIC_PASSENGERS_ADDR", ":8080")
			_ = os.Setenv("TITANIC_DATA_PATH", "/srv/titanic.csv")
			_ = os.Setenv("TITANIC_DEFAULT_PAGE_LIMIT", "50")
			_ = os.Setenv("TITANIC_RATE_LIMIT_RPS", "2.5")
			_ = os.Setenv("TITANIC_CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.PassengersAddr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DataPath, convey.ShouldEqual, "/srv/titanic.csv")
				convey.So(cfg.DefaultPageLimit, convey.ShouldEqual, 50)
				convey.So(cfg.RateLimitRPS, convey.ShouldEqual, 2.5)
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://a.example", "https://b.example"})
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			tmpFile := createTempConfigFile("*.yaml", `
# comment
predictor_addr: ":9090"
path_prefix: "/v1/passengers"
log_format: console
cors_allowed_origins:
  - "https://titanic.example"
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("TITANIC_CONFIG", tmpFile)
			_ = os.Setenv("TITANIC_PREDICTOR_ADDR", ":7070")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values apply and env wins over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.PredictorAddr, convey.ShouldEqual, ":7070")
				convey.So(cfg.PathPrefix, convey.ShouldEqual, "/v1/passengers")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "console")
				convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"https://titanic.example"})
				convey.So(cfg.DefaultPageLimit, convey.ShouldEqual, 20)
			})
		})

		convey.Convey("When loading config with a TOML file", func() {
			tmpFile := createTempConfigFile("*.toml", `
data_path = "fixtures/titanic.csv"
default_page_limit = 10
placeholder_accuracy = "n/a"
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("TITANIC_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should parse TOML", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.DataPath, convey.ShouldEqual, "fixtures/titanic.csv")
				convey.So(cfg.DefaultPageLimit, convey.ShouldEqual, 10)
				convey.So(cfg.PlaceholderAccuracy, convey.ShouldEqual, "n/a")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile("*.yaml", `invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("TITANIC_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the config file has an unknown extension", func() {
			_ = os.Setenv("TITANIC_CONFIG", "/etc/titanic.ini")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("TITANIC_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an invalid numeric env var", func() {
			_ = os.Setenv("TITANIC_DEFAULT_PAGE_LIMIT", "lots")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When validation fails after loading", func() {
			_ = os.Setenv("TITANIC_PATH_PREFIX", "passengers")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "path_prefix")
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"TITANIC_CONFIG",
		"TITANIC_PASSENGERS_ADDR",
		"TITANIC_PREDICTOR_ADDR",
		"TITANIC_DATA_PATH",
		"TITANIC_PATH_PREFIX",
		"TITANIC_DEFAULT_PAGE_LIMIT",
		"TITANIC_RATE_LIMIT_RPS",
		"TITANIC_CORS_ALLOWED_ORIGINS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(pattern, content string) string {
	tmpFile, err := os.CreateTemp("", "titanic-config-"+pattern)
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
