package config_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/okian/coinfront/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.APIBaseURL, convey.ShouldEqual, "http://localhost:8088/api")
				convey.So(cfg.BasePath, convey.ShouldEqual, "/")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("COINFRONT_ADDR", ":9000")
			_ = os.Setenv("COINFRONT_API_BASE_URL", "http://coins.internal/api")
			_ = os.Setenv("COINFRONT_REQUEST_TIMEOUT_MS", "2500")
			_ = os.Setenv("COINFRONT_LOG_LEVEL", "debug")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9000")
				convey.So(cfg.APIBaseURL, convey.ShouldEqual, "http://coins.internal/api")
				convey.So(cfg.RequestTimeoutMS, convey.ShouldEqual, 2500)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When BASE_URL is set", func() {
			_ = os.Setenv("BASE_URL", "/coins/")
			_ = os.Setenv("BASE_URL_UNRELATED", "ignored")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it becomes the base path verbatim", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BasePath, convey.ShouldEqual, "/coins/")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			tmpFile := createTempConfigFile(`
addr: ":9090"
api_base_url: "http://file.example/api"
base_path: "/from-file"
log_format: json
`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("COINFRONT_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.APIBaseURL, convey.ShouldEqual, "http://file.example/api")
				convey.So(cfg.BasePath, convey.ShouldEqual, "/from-file")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			})

			convey.Convey("And env vars take precedence over the file", func() {
				_ = os.Setenv("COINFRONT_ADDR", ":7070")
				_ = os.Setenv("BASE_URL", "/from-env")

				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.APIBaseURL, convey.ShouldEqual, "http://file.example/api")
				convey.So(cfg.BasePath, convey.ShouldEqual, "/from-env")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempConfigFile(`invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("COINFRONT_CONFIG", tmpFile)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("COINFRONT_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			convey.So(cfg, convey.ShouldBeNil)
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("COINFRONT_ADDR", "")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with an invalid numeric value", func() {
			_ = os.Setenv("COINFRONT_REQUEST_TIMEOUT_MS", "soon")

			cfg, err := config.Load(ctx)

			convey.So(err, convey.ShouldNotBeNil)
			convey.So(cfg, convey.ShouldBeNil)
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"COINFRONT_CONFIG",
		"COINFRONT_ADDR",
		"COINFRONT_API_BASE_URL",
		"COINFRONT_REQUEST_TIMEOUT_MS",
		"COINFRONT_LOG_LEVEL",
		"COINFRONT_LOG_FORMAT",
		"COINFRONT_BASE_PATH",
		"BASE_URL",
		"BASE_URL_UNRELATED",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(content string) string {
	f, err := os.CreateTemp("", "coinfront-config-*.yaml")
	if err != nil {
		panic(err)
	}
	defer func() { _ = f.Close() }()
	if _, err := f.WriteString(content); err != nil {
		panic(err)
	}
	return f.Name()
}
