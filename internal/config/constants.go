package config

import "time"

// Application constants
const (
	// Application Info
	AppName   = "bikeshare"
	EnvPrefix = "BIKESHARE"

	// Data sources, relative to the data directory
	DefaultDataDir         = "data"
	DefaultChicagoFile     = "chicago.csv"
	DefaultNewYorkCityFile = "new_york_city.csv"
	DefaultWashingtonFile  = "washington.csv"

	// Raw data paging
	DefaultPageSize = 5
	MaxPageSize     = 500

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Network Timeouts
	DefaultRequestTimeout  = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// API Endpoints
	APIBasePath     = "/api"
	HealthEndpoint  = "/api/health"
	MetricsEndpoint = "/metrics"
)
