// Package config reads the storefront configuration from the environment,
// with sensible local-dev defaults.
package config

import (
	"os"
	"strconv"
)

type Config struct {
	// HTTPAddr is the listen address of the storefront API.
	HTTPAddr string

	// DBPath is the SQLite database file backing the key-value store and the
	// checkout audit log.
	DBPath string

	// RedisAddr enables the invoice cache when non-empty.
	RedisAddr string

	// TracingEnabled turns on the OTLP exporter. Off by default so the binary
	// runs standalone without a collector.
	TracingEnabled bool

	// Pricing knobs. Defaults match the storefront's historical policy:
	// free shipping at or above 50.00, otherwise a flat 9.99 fee, 14% tax.
	FreeShippingThreshold float64
	FlatShippingFee       float64
	TaxRate               float64
}

func Load() Config {
	return Config{
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		DBPath:                getEnv("STORE_DB_PATH", "./data/store.db"),
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		TracingEnabled:        getBool("TRACING_ENABLED", false),
		FreeShippingThreshold: getFloat("FREE_SHIPPING_THRESHOLD", 50.00),
		FlatShippingFee:       getFloat("FLAT_SHIPPING_FEE", 9.99),
		TaxRate:               getFloat("TAX_RATE", 0.14),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
