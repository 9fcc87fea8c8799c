// Package services implements the business logic layer of the bikeshare
// application. It sits between the outer surfaces (the CLI and HTTP
// handlers) and the data processing pipeline.
//
// # Available Services
//
//	- AnalysisService: validates a city/month/day request and runs
//	  load, filter and statistics, returning a PipelineResult
//	- HealthService: liveness, readiness and version information
//
// # Common Service Pattern
//
// Services take their collaborators as interfaces and a *slog.Logger:
//
//	loader := dataprocessing.NewLoader(cfg.DataSources(), logger)
//	engine := dataprocessing.NewEngine(logger)
//	svc := services.NewAnalysisService(loader, engine, metrics, logger)
//
//	result, err := svc.RunAnalysis(ctx, services.AnalysisRequest{
//	    City:  "chicago",
//	    Month: "march",
//	    Day:   "all",
//	})
//
// # Error Handling
//
// Errors are internal/errors AppErrors. Invalid requests come back as
// VALIDATION errors listing each bad field; load failures keep their
// SOURCE_NOT_FOUND or PARSING type so handlers can map them to a status.
//
// # Testing
//
// Services are tested by mocking their collaborators with testify/mock:
//
//	loader := new(mockLoader)
//	loader.On("Load", mock.Anything, domain.CityChicago).Return(table, nil)
package services
