package main

import (
	"fmt"
	"os"
	"strconv"
)

const (
	envPort         = "PORT"
	envPostgresDSN  = "POSTGRES_DSN"
	envOrdersTable  = "ORDERS_DYNAMODB_TABLE"
	envAWSRegion    = "AWS_REGION"
	envOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envSeedDemoData = "SEED_DEMO_DATA"
	serviceName     = "marketplace"
	defaultPort     = "8080"
)

// config holds the settings of main. The lib packages pick their own backend settings
// (GOOGLE_CLOUD_PROJECT, LOCATION_ID, QUEUE_NAME and KAFKA_BROKERS) from the environment.
type config struct {
	Port         string
	PostgresDSN  string
	OrdersTable  string
	AWSRegion    string
	OTLPEndpoint string
	SeedDemoData bool
}

func loadConfig() (config, error) {
	cfg := config{
		Port:         os.Getenv(envPort),
		PostgresDSN:  os.Getenv(envPostgresDSN),
		OrdersTable:  os.Getenv(envOrdersTable),
		AWSRegion:    os.Getenv(envAWSRegion),
		OTLPEndpoint: os.Getenv(envOTLPEndpoint),
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	if seed := os.Getenv(envSeedDemoData); seed != "" {
		enabled, err := strconv.ParseBool(seed)
		if err != nil {
			return config{}, fmt.Errorf("invalid value %q for %s: %w", seed, envSeedDemoData, err)
		}
		cfg.SeedDemoData = enabled
	}

	return cfg, nil
}
