// Demo application: resolves a small schema from .env files plus the
// process environment, watches for changes, and exposes the maintenance
// CLI (example | docs | check).
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/envgrove/config"
)

func appSchema() *config.Schema {
	db := config.NewSchema("DbConfig").
		String("HOST", config.Default("localhost")).
		Int("PORT", config.Default(5432), config.Min(1), config.Max(65535)).
		String("PASSWORD", config.Secret())

	s := config.NewSchema("AppConfig").
		String("APP_NAME", config.Default("demo")).
		String("ENV", config.Default("dev"), config.Choices("dev", "staging", "prod")).
		Path("DATA_DIR", config.Default(config.Path("/var/lib/demo"))).
		Floats("SAMPLE_RATES", config.Default([]float64{1})).
		Nested("DB", db, config.Prefix("DB_"))

	s.Computed("DSN", func(c *config.Config) any {
		host, _ := c.StringValue("DB.HOST")
		port, _ := c.Int64("DB.PORT")
		return fmt.Sprintf("%s:%d", host, port)
	})
	return s
}

func main() {
	schema := appSchema()

	if len(os.Args) > 1 {
		cli := &config.CLI{Schema: schema}
		if err := cli.Run(os.Args[1:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(schema)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	// Route all logging through the redaction filter so secret values
	// never appear in output.
	logger := slog.New(config.NewRedactHandler(
		slog.NewTextHandler(os.Stderr, nil), cfg.SecretValues()...))
	slog.SetDefault(logger)

	logger.Info("configuration loaded", "values", fmt.Sprint(cfg.ToMap(config.ShowComputed())))

	err = cfg.Watch(func(c *config.Config) {
		logger.Info("configuration reloaded", "values", fmt.Sprint(c.ToMap()))
	})
	if err != nil {
		logger.Warn("watching disabled", "reason", err)
	} else {
		defer cfg.Stop()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
