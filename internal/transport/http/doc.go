// Package http implements the HTTP handlers of the bikeshare web service.
// Handlers stay thin: they read query parameters, call a service and
// render JSON. Failures go through the shared ErrorHandler so every error
// response is an RFC 7807 problem.
//
// # Endpoints
//
//	GET /api/analysis?city=&month=&day=                 statistics for a selection
//	GET /api/analysis/rows?city=&month=&day=&offset=&limit=  one page of raw rows
//	GET /api/cities                                      configured cities and their sources
//	GET /api/health, /api/health/ready, /api/health/live
//	GET /api/version
//	GET /metrics                                         Prometheus scrape endpoint
//
// month and day are optional and default to "all". Row pages default to
// the configured page size.
package http
