// Command fleximart runs the FlexiMart ETL pipeline: it extracts the raw
// customer, product and sales CSV exports, cleans them, loads them into the
// relational schema and writes a data quality report.
//
// Usage:
//
//	fleximart -config pipeline.json
//	fleximart -config pipeline.json -validate
//	fleximart -config pipeline.json -metrics-backend pushgateway -pushgateway-url http://localhost:9091
//
// The database DSN may also come from the FLEXIMART_DB_DSN environment
// variable; a .env file in the working directory is loaded first if present.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fleximart/internal/config"
	"fleximart/internal/etl"
	"fleximart/internal/metrics"
	"fleximart/internal/metrics/datadog"
	"fleximart/internal/metrics/prompush"
	_ "fleximart/internal/storage/all"
)

func main() {
	configPath := flag.String("config", "pipeline.json", "path to the pipeline config file")
	metricsBackend := flag.String("metrics-backend", "none", "metrics backend: none, pushgateway or datadog")
	pushgatewayURL := flag.String("pushgateway-url", "", "Pushgateway base URL (falls back to PUSHGATEWAY_URL)")
	validateOnly := flag.Bool("validate", false, "validate the config and exit")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	// Missing .env is fine, explicit env still applies.
	_ = godotenv.Load()

	log := newLogger(*verbose)
	defer log.Sync()

	p, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", zap.String("path", *configPath), zap.Error(err))
		os.Exit(1)
	}

	fatal := false
	for _, issue := range config.Validate(p) {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", issue.Severity, issue.Path, issue.Message)
		if issue.Severity == config.SeverityError {
			fatal = true
		}
	}
	if fatal {
		os.Exit(1)
	}
	if *validateOnly {
		fmt.Println("config ok")
		return
	}

	if err := setupMetrics(*metricsBackend, *pushgatewayURL); err != nil {
		log.Error("failed to set up metrics backend", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Warn("failed to flush metrics", zap.Error(err))
		}
	}()

	if err := etl.Run(context.Background(), p, log); err != nil {
		log.Error("pipeline failed", zap.Error(err))
		metrics.Flush()
		os.Exit(1)
	}
}

// newLogger builds the process logger. LOG_FORMAT=console switches off JSON
// output; -v or LOG_LEVEL=debug lowers the level.
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if os.Getenv("LOG_FORMAT") == "console" {
		cfg = zap.NewDevelopmentConfig()
	}
	if verbose || os.Getenv("LOG_LEVEL") == "debug" {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	return log
}

func setupMetrics(backend, pushgatewayURL string) error {
	switch backend {
	case "", "none":
		return nil
	case "pushgateway":
		url := pushgatewayURL
		if url == "" {
			url = os.Getenv("PUSHGATEWAY_URL")
		}
		if url == "" {
			return fmt.Errorf("pushgateway backend requires -pushgateway-url or PUSHGATEWAY_URL")
		}
		b, err := prompush.NewBackend("", url)
		if err != nil {
			return err
		}
		metrics.SetBackend(b)
		return nil
	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{Addr: os.Getenv("DD_AGENT_ADDR")})
		if err != nil {
			return err
		}
		metrics.SetBackend(b)
		return nil
	default:
		return fmt.Errorf("unknown metrics backend %q", backend)
	}
}
