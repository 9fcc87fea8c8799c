// Package config provides centralized configuration management for the
// bikeshare tools. It loads configuration from multiple sources, validates it,
// and resolves the city to dataset mapping used by the loader.
//
// # Configuration Sources
//
// Configuration is built in the following order, later sources winning:
//
//	1. Default values (Default())
//	2. A YAML file (config.yaml or configs/config.yaml)
//	3. Environment variables
//
// # Environment Variables
//
// All environment variables follow the pattern BIKESHARE_<SECTION>_<FIELD>:
//
//	BIKESHARE_SERVER_PORT=8080
//	BIKESHARE_LOGGING_LEVEL=debug
//	BIKESHARE_DATA_DIR=/srv/bikeshare/data
//	BIKESHARE_DATA_SOURCES="chicago:chicago.csv,washington:washington.xlsx"
//	BIKESHARE_TELEMETRY_TRACING=true
//
// # Data Sources
//
// Data.Sources maps a city name to a CSV or XLSX file. Relative paths are
// resolved against Data.Dir by DataSources():
//
//	sources := cfg.DataSources()
//	path := sources[domain.CityChicago] // data/chicago.csv
//
// # Testing
//
// Tests use Default() and overwrite Data.Sources with fixture paths, so no
// environment variables or files are needed.
package config
