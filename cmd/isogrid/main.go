// Package main is the entry point for the isogrid probe.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/isogrid/internal/probe"
	"github.com/samdwyer/isogrid/internal/telemetry"
	"github.com/samdwyer/isogrid/internal/ui"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	setupOTelEnv()

	cfg, err := probe.ConfigFromEnv()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log.Printf("Grid %dx%d (%s), scene %q", cfg.Width, cfg.Height, cfg.Transform, sceneLabel(cfg.Scene))

	ctx := context.Background()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
		log.Printf("Probe will run without observability")
		telemetry.InstallNoop()
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	screen, err := ui.NewScreen()
	if err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}

	p := probe.New(cfg, screen)
	if err := p.Run(ctx); err != nil {
		p.Close()
		log.Fatalf("Probe error: %v", err)
	}
}

func sceneLabel(s string) string {
	if s == "" {
		return "embedded default"
	}
	return s
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// The .env file may hold an unexpanded variable reference, so the
	// headers are built here.
	apiKey := os.Getenv("HONEYCOMB_ISOGRID_API_KEY")
	dataset := os.Getenv("HONEYCOMB_ISOGRID_DATASET")
	if dataset == "" {
		dataset = "isogrid"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
